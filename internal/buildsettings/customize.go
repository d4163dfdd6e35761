package buildsettings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/needle-mirror/com.unity.platforms.web/internal/emscripten"
)

// Customize resolves opts and layers the settings document on top: the free
// form command line is appended, single file output is toggled and the
// KEY=VALUE linker settings override resolved values.
func Customize(doc Document, opts emscripten.Options) (*emscripten.ExecutableFormat, error) {
	opts.SingleFile = opts.SingleFile || doc.GetBool(KeySingleFile)

	linker, err := emscripten.Resolve(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve linker configuration: %w", err)
	}

	overrides := doc.GetObject(KeyLinkerSettings)
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		linker.Settings.Set(k, overrides[k])
	}

	linker.WithCustomFlags(strings.Fields(doc.GetString(KeyCmdLine))...)

	return &emscripten.ExecutableFormat{
		Extension: emscripten.ExecutableExtension,
		Linker:    linker,
		Web: emscripten.WebBuildConfig{
			SingleFile:         opts.SingleFile,
			ExportWebPFallback: doc.GetBool(KeyExportWebPFallback),
		},
	}, nil
}
