package emscripten

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariation is returned when a build variation is not one of
// debug, develop or release. The flag matrix is undefined for anything else.
var ErrUnknownVariation = errors.New("unknown build variation")

// ErrUnknownArchitecture is returned for an architecture other than asm.js or wasm.
var ErrUnknownArchitecture = errors.New("unknown architecture")

// ErrMissingClosureExterns is returned when minification is requested
// without an externs file. Closure would otherwise rename the symbols shared
// between native code and JavaScript.
var ErrMissingClosureExterns = errors.New("minify requires a closure externs file")

// Variation selects the debug, optimization and assertion profile of a build.
type Variation int

const (
	Debug Variation = iota + 1
	Develop
	Release
)

func (v Variation) String() string {
	switch v {
	case Debug:
		return "debug"
	case Develop:
		return "develop"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("Variation(%d)", int(v))
	}
}

// ParseVariation maps a configuration string onto a Variation.
func ParseVariation(s string) (Variation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "develop":
		return Develop, nil
	case "release":
		return Release, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariation, s)
}

// Architecture is the code generation target of the build.
type Architecture int

const (
	AsmJS Architecture = iota + 1
	Wasm
)

func (a Architecture) String() string {
	switch a {
	case AsmJS:
		return "asmjs"
	case Wasm:
		return "wasm"
	default:
		return fmt.Sprintf("Architecture(%d)", int(a))
	}
}

// ParseArchitecture accepts "asmjs" (or "asm.js") and "wasm".
func ParseArchitecture(s string) (Architecture, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asmjs", "asm.js":
		return AsmJS, nil
	case "wasm":
		return Wasm, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArchitecture, s)
}

// AssertionMode is the ASSERTIONS level used by debug and develop builds.
// Release builds always disable assertions.
type AssertionMode int

const (
	AssertionsMaximal AssertionMode = iota
	AssertionsMinimal
)

// Level is the value passed as `-s ASSERTIONS=<level>`.
func (m AssertionMode) Level() int {
	if m == AssertionsMinimal {
		return 1
	}
	return 2
}

func (m AssertionMode) String() string {
	if m == AssertionsMinimal {
		return "minimal"
	}
	return "maximal"
}

// ParseAssertionMode accepts "maximal", "minimal" or the empty string (maximal).
func ParseAssertionMode(s string) (AssertionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "maximal":
		return AssertionsMaximal, nil
	case "minimal":
		return AssertionsMinimal, nil
	}
	return 0, fmt.Errorf("unknown assertion mode %q: must be 'maximal' or 'minimal'", s)
}
