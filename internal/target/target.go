// Package target describes the web build targets and launches their
// builds in a local dev session.
package target

import (
	"fmt"
	"strings"

	"github.com/needle-mirror/com.unity.platforms.web/internal/emscripten"
)

const (
	// UnityPlatformName is the player platform web builds are produced for.
	UnityPlatformName = "WebGL"
	// ExecutableExtension is the extension of the page that boots the build.
	ExecutableExtension = emscripten.ExecutableExtension
)

// Target is one web build target.
type Target struct {
	Architecture             emscripten.Architecture
	DisplayName              string
	BeeTargetName            string
	SupportsManagedDebugging bool
}

var (
	// AsmJS targets asm.js. The managed debugger needs wasm.
	AsmJS = Target{
		Architecture:             emscripten.AsmJS,
		DisplayName:              "Web (AsmJS)",
		BeeTargetName:            "asmjs",
		SupportsManagedDebugging: false,
	}
	// Wasm targets WebAssembly.
	Wasm = Target{
		Architecture:             emscripten.Wasm,
		DisplayName:              "Web (Wasm)",
		BeeTargetName:            "wasm",
		SupportsManagedDebugging: true,
	}
)

// All returns every known target.
func All() []Target {
	return []Target{AsmJS, Wasm}
}

// ForArchitecture returns the target building for a.
func ForArchitecture(a emscripten.Architecture) (Target, error) {
	for _, t := range All() {
		if t.Architecture == a {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("%w: %v", emscripten.ErrUnknownArchitecture, a)
}

// Lookup finds a target by its bee target name.
func Lookup(name string) (Target, error) {
	for _, t := range All() {
		if strings.EqualFold(t.BeeTargetName, name) {
			return t, nil
		}
	}
	a, err := emscripten.ParseArchitecture(name)
	if err != nil {
		return Target{}, err
	}
	return ForArchitecture(a)
}

func (t Target) String() string {
	return t.DisplayName
}
