package buildsettings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedSetting is returned for a linker setting that is not KEY=VALUE.
var ErrMalformedSetting = errors.New("linker setting must be KEY=VALUE")

// Emscripten is the settings record surfaced to the build pipeline.
type Emscripten struct {
	// EmccCmdLine is appended verbatim to the emcc command line.
	EmccCmdLine      string
	SingleFileOutput bool
	// LinkerSettings are KEY=VALUE pairs written as -s settings. They win
	// over resolved settings of the same name.
	LinkerSettings     []string
	ExportWebPFallback bool
}

// SplitSetting splits a KEY=VALUE pair on its first '='.
func SplitSetting(kv string) (string, string, error) {
	key, value, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedSetting, kv)
	}
	return key, strings.TrimSpace(value), nil
}

// Modify writes the record into doc. A malformed linker setting leaves doc
// untouched.
func (e Emscripten) Modify(doc Document) error {
	settings := make(map[string]any, len(e.LinkerSettings))
	for _, kv := range e.LinkerSettings {
		key, value, err := SplitSetting(kv)
		if err != nil {
			return err
		}
		settings[key] = value
	}

	doc[KeyCmdLine] = e.EmccCmdLine
	doc[KeySingleFile] = e.SingleFileOutput
	doc[KeyExportWebPFallback] = e.ExportWebPFallback
	doc[KeyLinkerSettings] = settings
	return nil
}
