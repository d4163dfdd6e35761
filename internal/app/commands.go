package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/needle-mirror/com.unity.platforms.web/internal/buildsettings"
	"github.com/needle-mirror/com.unity.platforms.web/internal/ctxlog"
	"github.com/needle-mirror/com.unity.platforms.web/internal/emscripten"
	"github.com/needle-mirror/com.unity.platforms.web/internal/target"
	"github.com/needle-mirror/com.unity.platforms.web/internal/toolchain"
	"github.com/needle-mirror/com.unity.platforms.web/internal/wasminspect"
)

// Linker links object files into a web build.
type Linker interface {
	Link(ctx context.Context, cfg *emscripten.LinkerConfig, inputs []string, output string) error
}

// options returns the resolver options of the effective configuration.
func (a *App) options() (emscripten.Options, error) {
	opts, err := a.config.Build.Options()
	if err != nil {
		return emscripten.Options{}, &ConfigError{Err: err}
	}
	if err := opts.Validate(); err != nil {
		return emscripten.Options{}, &ConfigError{Err: err}
	}
	return opts, nil
}

// settingsDocument starts from the configured JSON document, if any, and
// writes the build settings record into it.
func (a *App) settingsDocument() (buildsettings.Document, error) {
	doc := buildsettings.Document{}
	if path := a.appConfig.SettingsFile; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("failed to read settings document: %w", err)}
		}
		if doc, err = buildsettings.Parse(data); err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("%s: %w", path, err)}
		}
	}
	if err := a.config.Build.Settings().Modify(doc); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return doc, nil
}

func (a *App) executableFormat(opts emscripten.Options) (*emscripten.ExecutableFormat, error) {
	doc, err := a.settingsDocument()
	if err != nil {
		return nil, err
	}
	format, err := buildsettings.Customize(doc, opts)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	return format, nil
}

func (a *App) runFlags(ctx context.Context) error {
	opts, err := a.options()
	if err != nil {
		return err
	}
	format, err := a.executableFormat(opts)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Resolved linker configuration.", "variation", opts.Variation, "architecture", opts.Architecture)
	_, err = fmt.Fprintln(a.outW, format.Linker.String())
	return err
}

func (a *App) runDiff(ctx context.Context, from, to string) error {
	opts, err := a.options()
	if err != nil {
		return err
	}

	formats := make([]*emscripten.ExecutableFormat, 0, 2)
	for _, name := range []string{from, to} {
		v, err := emscripten.ParseVariation(name)
		if err != nil {
			return &ConfigError{Err: err}
		}
		o := opts
		o.Variation = v
		format, err := a.executableFormat(o)
		if err != nil {
			return err
		}
		formats = append(formats, format)
	}

	ctxlog.FromContext(ctx).Debug("Diffing linker configurations.", "from", from, "to", to)
	_, err = fmt.Fprint(a.outW, emscripten.Diff(formats[0].Linker, formats[1].Linker))
	return err
}

func (a *App) runSettings(ctx context.Context) error {
	doc, err := a.settingsDocument()
	if err != nil {
		return err
	}
	data, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode settings document: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Settings document written.", "keys", len(doc))
	_, err = fmt.Fprintln(a.outW, string(data))
	return err
}

func (a *App) runBuild(ctx context.Context, inputs []string, output string) error {
	logger := ctxlog.FromContext(ctx)

	opts, err := a.options()
	if err != nil {
		return err
	}
	tgt, err := target.Lookup(a.config.Build.Architecture)
	if err != nil {
		return &ConfigError{Err: err}
	}
	if opts.ManagedDebugger && !tgt.SupportsManagedDebugging {
		logger.Warn("Managed debugging is not supported for this target.", "target", tgt.DisplayName)
	}

	format, err := a.executableFormat(opts)
	if err != nil {
		return err
	}

	l := a.linker
	if l == nil {
		sdk, err := a.resolver.SDK(opts.UpstreamBackend)
		if err != nil {
			return fmt.Errorf("failed to locate the Emscripten SDK: %w", err)
		}
		l = toolchain.NewCompiler(sdk, a.outW, a.outW)
	}

	logger.Info("🚀 Building", "target", tgt.DisplayName, "variation", opts.Variation, "output", output)
	if err := l.Link(ctx, format.Linker, inputs, output); err != nil {
		return err
	}

	if tgt.Architecture == emscripten.Wasm && !format.Web.SingleFile {
		a.logWasmReport(ctx, strings.TrimSuffix(output, filepath.Ext(output))+".wasm")
	}
	logger.Info("🏁 Build finished.", "output", output)
	return nil
}

// logWasmReport summarizes the linked module next to the build page. A
// missing or unreadable module only logs.
func (a *App) logWasmReport(ctx context.Context, path string) {
	logger := ctxlog.FromContext(ctx)
	report, err := wasminspect.InspectFile(ctx, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("No wasm module next to build output.", "path", path)
		} else {
			logger.Warn("Failed to inspect wasm module.", "path", path, "error", err)
		}
		return
	}
	logger.Info("Wasm module", "path", path, "imports", len(report.Imports), "exports", len(report.Exports))
}

func (a *App) runDevSession(ctx context.Context, buildTarget string) error {
	res := target.Run(ctx, a.session, buildTarget, a.config.DevServer)
	if !res.OK() {
		_, err := fmt.Fprintf(a.outW, "warning: %s\n", res.Warning)
		return err
	}

	if _, err := fmt.Fprintf(a.outW, "Serving %s (press Ctrl+C to stop)\n", res.URL); err != nil {
		return err
	}
	<-ctx.Done()
	ctxlog.FromContext(ctx).Debug("Dev session interrupted.", "cause", context.Cause(ctx))
	return nil
}

func (a *App) runTestMode(ctx context.Context) error {
	out := target.RunTestMode("", ".", 0)
	if err := out.Err(); err != nil {
		ctxlog.FromContext(ctx).Warn("Test run did not succeed.", "error", err, "exit_code", out.ExitCode)
	}
	_, err := fmt.Fprintln(a.outW, out.FullOutput)
	return err
}

func (a *App) runInspect(ctx context.Context, path string) error {
	report, err := wasminspect.InspectFile(ctx, path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
