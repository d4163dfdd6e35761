// Package wasminspect reports what a linked WebAssembly module imports and
// exports, without instantiating it.
package wasminspect

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/needle-mirror/com.unity.platforms.web/internal/ctxlog"
)

// Import is one imported function or memory.
type Import struct {
	Module string `json:"module"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
}

// Function is an exported function signature.
type Function struct {
	Name    string   `json:"name"`
	Params  []string `json:"params"`
	Results []string `json:"results"`
}

// Memory describes a memory's limits in 64KiB pages.
type Memory struct {
	Name     string  `json:"name"`
	Imported bool    `json:"imported"`
	MinPages uint32  `json:"min_pages"`
	MaxPages *uint32 `json:"max_pages,omitempty"`
}

// Report is the result of inspecting a module.
type Report struct {
	Name           string     `json:"name,omitempty"`
	Imports        []Import   `json:"imports"`
	Exports        []Function `json:"exports"`
	Memories       []Memory   `json:"memories"`
	CustomSections []string   `json:"custom_sections"`
}

// Inspect compiles bin and describes its interface.
func Inspect(ctx context.Context, bin []byte) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	cfg := wazero.NewRuntimeConfigInterpreter().WithCustomSections(true)
	r := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer r.Close(ctx)

	compiled, err := r.CompileModule(ctx, bin)
	if err != nil {
		return nil, fmt.Errorf("failed to compile wasm module: %w", err)
	}
	defer compiled.Close(ctx)

	report := &Report{
		Name:           compiled.Name(),
		Imports:        []Import{},
		Exports:        []Function{},
		Memories:       []Memory{},
		CustomSections: []string{},
	}

	for _, fn := range compiled.ImportedFunctions() {
		module, name, _ := fn.Import()
		report.Imports = append(report.Imports, Import{Module: module, Name: name, Kind: "func"})
	}
	for _, mem := range compiled.ImportedMemories() {
		module, name, _ := mem.Import()
		report.Imports = append(report.Imports, Import{Module: module, Name: name, Kind: "memory"})
		report.Memories = append(report.Memories, memory(module+"."+name, true, mem))
	}

	for name, fn := range compiled.ExportedFunctions() {
		report.Exports = append(report.Exports, Function{
			Name:    name,
			Params:  typeNames(fn.ParamTypes()),
			Results: typeNames(fn.ResultTypes()),
		})
	}
	sort.Slice(report.Exports, func(i, j int) bool { return report.Exports[i].Name < report.Exports[j].Name })

	exported := compiled.ExportedMemories()
	names := make([]string, 0, len(exported))
	for name := range exported {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mem := exported[name]
		if _, _, imported := mem.Import(); imported {
			continue
		}
		report.Memories = append(report.Memories, memory(name, false, mem))
	}

	for _, sec := range compiled.CustomSections() {
		report.CustomSections = append(report.CustomSections, sec.Name())
	}

	logger.Debug("Inspected wasm module.",
		"imports", len(report.Imports),
		"exports", len(report.Exports),
		"memories", len(report.Memories),
	)
	return report, nil
}

// InspectFile reads and inspects the module at path.
func InspectFile(ctx context.Context, path string) (*Report, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	report, err := Inspect(ctx, bin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}

func memory(name string, imported bool, def api.MemoryDefinition) Memory {
	m := Memory{Name: name, Imported: imported, MinPages: def.Min()}
	if maxPages, ok := def.Max(); ok {
		m.MaxPages = &maxPages
	}
	return m
}

func typeNames(types []api.ValueType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = api.ValueTypeName(t)
	}
	return out
}
