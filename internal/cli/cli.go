package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/needle-mirror/com.unity.platforms.web/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageHeader = `
webdots - build and run Emscripten web players.

Usage:
  webdots <command> [options] [args]

Commands:
  flags                     Print the resolved emcc linker flags.
  diff <from> <to>          Diff the linker flags of two variations (debug, develop, release).
  settings                  Print the JSON settings document of the build block.
  build <inputs...> -o out  Link object files into a web build.
  run <build.html>          Serve a build locally and open it in the browser.
  test                      Run a build in test mode.
  inspect <file.wasm>       Report the imports and exports of a wasm module.

Options:
`

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	fs := pflag.NewFlagSet("webdots", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprint(output, usageHeader)
		fmt.Fprint(output, fs.FlagUsages())
	}

	configPaths := fs.StringArrayP("config", "c", nil, "HCL config file or directory (repeatable). Defaults to ./webdots.hcl when present.")
	settingsFile := fs.String("settings", "", "Existing JSON settings document to start from.")
	outputPath := fs.StringP("output", "o", "", "Output page of the build command.")

	variation := fs.String("variation", "", "Build variation: debug, develop or release.")
	arch := fs.String("arch", "", "Target architecture: asmjs or wasm.")
	assertions := fs.String("assertions", "", "Assertion level of debug and develop builds: maximal or minimal.")
	upstream := fs.Bool("upstream", true, "Use the upstream LLVM wasm backend instead of fastcomp.")
	managedDebugger := fs.Bool("managed-debugger", false, "Enable the managed debugger socket proxy.")
	singleFile := fs.Bool("single-file", false, "Embed all build output in the page.")
	minify := fs.Bool("minify", false, "Run the Closure compiler on the generated JavaScript. Requires --closure-externs.")
	closureExterns := fs.String("closure-externs", "", "Closure externs file listing the symbols shared between native code and JavaScript.")
	cacheDir := fs.String("cache-dir", "", "Root of the downloaded toolchain artifacts.")
	httpPort := fs.Int("http-port", 0, "Port of the local file server.")
	proxyPort := fs.Int("proxy-port", 0, "Port of the WebSocket proxy.")
	proxyScript := fs.String("proxy-script", "", "Path to websockify.js.")

	healthPort := fs.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormat := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevel := fs.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if fs.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		fs.Usage()
		return nil, true, nil
	}

	format := strings.ToLower(*logFormat)
	if format != "text" && format != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	level := strings.ToLower(*logLevel)
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var o app.Overrides
	if fs.Changed("variation") {
		o.Variation = variation
	}
	if fs.Changed("arch") {
		o.Architecture = arch
	}
	if fs.Changed("assertions") {
		o.Assertions = assertions
	}
	if fs.Changed("upstream") {
		o.UpstreamBackend = upstream
	}
	if fs.Changed("managed-debugger") {
		o.ManagedDebugger = managedDebugger
	}
	if fs.Changed("single-file") {
		o.SingleFile = singleFile
	}
	if fs.Changed("minify") {
		o.Minify = minify
	}
	if fs.Changed("closure-externs") {
		o.ClosureExterns = closureExterns
	}
	if fs.Changed("cache-dir") {
		o.CacheDir = cacheDir
	}
	if fs.Changed("http-port") {
		o.HTTPPort = httpPort
	}
	if fs.Changed("proxy-port") {
		o.ProxyPort = proxyPort
	}
	if fs.Changed("proxy-script") {
		o.ProxyScript = proxyScript
	}

	config, err := app.NewConfig(app.Config{
		Command:         fs.Arg(0),
		Args:            fs.Args()[1:],
		ConfigPaths:     *configPaths,
		SettingsFile:    *settingsFile,
		Output:          *outputPath,
		LogFormat:       format,
		LogLevel:        level,
		HealthcheckPort: *healthPort,
		Overrides:       o,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", config.Command, "args", config.Args)
	return config, false, nil
}
