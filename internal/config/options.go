package config

import (
	"fmt"

	"github.com/needle-mirror/com.unity.platforms.web/internal/buildsettings"
	"github.com/needle-mirror/com.unity.platforms.web/internal/emscripten"
)

// Options converts the build block into resolver options. Unknown
// enumerations are configuration errors.
func (b Build) Options() (emscripten.Options, error) {
	variation, err := emscripten.ParseVariation(b.Variation)
	if err != nil {
		return emscripten.Options{}, err
	}
	arch, err := emscripten.ParseArchitecture(b.Architecture)
	if err != nil {
		return emscripten.Options{}, err
	}
	assertions, err := emscripten.ParseAssertionMode(b.Assertions)
	if err != nil {
		return emscripten.Options{}, fmt.Errorf("invalid build config: %w", err)
	}
	return emscripten.Options{
		Variation:             variation,
		Architecture:          arch,
		ManagedDebugger:       b.ManagedDebugger,
		UpstreamBackend:       b.UpstreamBackend,
		Assertions:            assertions,
		SingleFile:            b.SingleFile,
		Minify:                b.Minify,
		ClosureExterns:        b.ClosureExterns,
		RunInBackgroundWorker: b.BackgroundWorker,
	}, nil
}

// Settings returns the Emscripten settings record of the build block.
func (b Build) Settings() buildsettings.Emscripten {
	return buildsettings.Emscripten{
		EmccCmdLine:        b.EmccCmdLine,
		SingleFileOutput:   b.SingleFile,
		LinkerSettings:     append([]string(nil), b.LinkerSettings...),
		ExportWebPFallback: b.ExportWebPFallback,
	}
}
