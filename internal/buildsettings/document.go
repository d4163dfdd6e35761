// Package buildsettings carries the user facing Emscripten settings record
// into the JSON settings document consumed by the toolchain configuration
// step, and applies that document on top of a resolved linker configuration.
package buildsettings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Document keys written by Emscripten.Modify.
const (
	KeyCmdLine            = "EmscriptenCmdLine"
	KeySingleFile         = "SingleFile"
	KeyExportWebPFallback = "ExportWebPFallback"
	KeyLinkerSettings     = "EmscriptenSettings"
)

// Document is a JSON settings object shared by the build modifiers.
type Document map[string]any

// Parse decodes a JSON settings document. Numbers keep their literal form
// so large integers are not rendered in exponent notation.
func Parse(data []byte) (Document, error) {
	doc := Document{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings document: %w", err)
	}
	return doc, nil
}

// Marshal encodes the document with stable key order.
func (d Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// GetString returns the string stored under key, or "" if absent or not a string.
func (d Document) GetString(key string) string {
	s, _ := d[key].(string)
	return s
}

// GetBool returns the boolean stored under key, or false.
func (d Document) GetBool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// GetObject returns the string-valued object stored under key. Non-string
// members are rendered with fmt.
func (d Document) GetObject(key string) map[string]string {
	switch v := d[key].(type) {
	case map[string]string:
		return v
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, val := range v {
			switch tv := val.(type) {
			case string:
				out[k] = tv
			case bool:
				if tv {
					out[k] = "1"
				} else {
					out[k] = "0"
				}
			case json.Number:
				out[k] = tv.String()
			case float64:
				out[k] = strconv.FormatFloat(tv, 'f', -1, 64)
			default:
				out[k] = fmt.Sprint(tv)
			}
		}
		return out
	}
	return nil
}
