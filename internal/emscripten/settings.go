package emscripten

import "strconv"

// Setting is a single `-s NAME=VALUE` linker setting.
type Setting struct {
	Name  string
	Value string
}

// Settings is an insertion-ordered mapping of linker setting names to their
// rendered values. Setting an existing name replaces its value but keeps its
// original position.
type Settings struct {
	names  []string
	values map[string]string
}

// NewSettings returns an empty Settings.
func NewSettings() *Settings {
	return &Settings{values: make(map[string]string)}
}

// Set stores value under name.
func (s *Settings) Set(name, value string) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// SetInt stores an integer valued setting.
func (s *Settings) SetInt(name string, value int) {
	s.Set(name, strconv.Itoa(value))
}

// SetBool stores a boolean setting as 1 or 0.
func (s *Settings) SetBool(name string, value bool) {
	if value {
		s.Set(name, "1")
		return
	}
	s.Set(name, "0")
}

// Get returns the value stored under name.
func (s *Settings) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has reports whether name has been set.
func (s *Settings) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Len returns the number of settings.
func (s *Settings) Len() int {
	return len(s.names)
}

// All returns the settings in insertion order.
func (s *Settings) All() []Setting {
	out := make([]Setting, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, Setting{Name: n, Value: s.values[n]})
	}
	return out
}

// Clone returns an independent copy.
func (s *Settings) Clone() *Settings {
	c := &Settings{
		names:  append([]string(nil), s.names...),
		values: make(map[string]string, len(s.values)),
	}
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}
