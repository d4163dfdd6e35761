package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/needle-mirror/com.unity.platforms.web/internal/config"
	"github.com/needle-mirror/com.unity.platforms.web/internal/ctxlog"
	"github.com/needle-mirror/com.unity.platforms.web/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	getenv func(string) string
}

// NewLoader creates a new HCL configuration loader whose env() function
// reads the process environment.
func NewLoader() *Loader {
	return &Loader{getenv: os.Getenv}
}

// NewLoaderWithEnv creates a loader with a custom environment lookup.
func NewLoaderWithEnv(getenv func(string) string) *Loader {
	return &Loader{getenv: getenv}
}

// Load parses every .hcl file under paths and overlays the declared
// attributes on a copy of base.
func (l *Loader) Load(ctx context.Context, base *config.Model, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := base.Clone()

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	evalCtx := l.evalContext()
	seen := make(map[string]string)

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		counts := map[string]int{
			"build":     len(root.Build),
			"toolchain": len(root.Toolchain),
			"devserver": len(root.DevServer),
		}
		for block, n := range counts {
			if n == 0 {
				continue
			}
			if prev, dup := seen[block]; dup || n > 1 {
				if !dup {
					prev = file
				}
				return nil, fmt.Errorf("block %q declared more than once (%s, %s)", block, prev, file)
			}
			seen[block] = file
		}

		for _, b := range root.Build {
			if err := l.applyBuild(ctx, &model.Build, b, evalCtx); err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
		}
		for _, b := range root.Toolchain {
			applyToolchain(&model.Toolchain, b)
		}
		for _, b := range root.DevServer {
			applyDevServer(&model.DevServer, b)
		}
	}

	logger.Debug("HCL loading complete.", "files", len(hclFiles), "variation", model.Build.Variation, "architecture", model.Build.Architecture)
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found. A path that does not exist is an error.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing config path %s: %w", path, err)
		}

		if info.IsDir() {
			files, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("error walking config path %s: %w", path, err)
			}
			for _, f := range files {
				add(f)
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}
	return allFiles, nil
}

func (l *Loader) evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: functions(l.getenv),
	}
}
