package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"sync"

	"github.com/needle-mirror/com.unity.platforms.web/internal/config"
	"github.com/needle-mirror/com.unity.platforms.web/internal/ctxlog"
	"github.com/needle-mirror/com.unity.platforms.web/internal/devsession"
	"github.com/needle-mirror/com.unity.platforms.web/internal/toolchain"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	ctx    context.Context

	appConfig *Config
	config    *config.Model

	getenv   func(string) string
	goos     string
	launcher devsession.Launcher
	host     devsession.Host
	linker   Linker
	resolver *toolchain.Resolver
	session  *devsession.Session

	httpServer *http.Server
	healthAddr string

	hooksMu   sync.Mutex
	hooks     []func()
	closeOnce sync.Once
}

// Option customizes the collaborators of an App. The defaults talk to the
// real OS.
type Option func(*App)

// WithLauncher replaces the process launcher.
func WithLauncher(l devsession.Launcher) Option {
	return func(a *App) { a.launcher = l }
}

// WithHost replaces the desktop host.
func WithHost(h devsession.Host) Option {
	return func(a *App) { a.host = h }
}

// WithGetenv replaces the environment lookup.
func WithGetenv(getenv func(string) string) Option {
	return func(a *App) { a.getenv = getenv }
}

// WithLinker replaces the emcc driver used by the build command.
func WithLinker(l Linker) Option {
	return func(a *App) { a.linker = l }
}

// WithGOOS resolves the toolchain for another platform.
func WithGOOS(goos string) Option {
	return func(a *App) { a.goos = goos }
}

// NewApp is the constructor for the main application. It configures an
// isolated logger, loads the configuration files and applies the command
// line overrides. Configuration errors are returned as *ConfigError.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:      outW,
		logger:    logger,
		ctx:       ctx,
		appConfig: appConfig,
		getenv:    os.Getenv,
		goos:      runtime.GOOS,
		launcher:  devsession.ExecLauncher{},
	}
	for _, opt := range opts {
		opt(a)
	}

	paths := appConfig.ConfigPaths
	if len(paths) == 0 {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			paths = []string{DefaultConfigFile}
		}
	}

	model, err := loader.Load(ctx, config.Default(), paths...)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("failed to load configuration: %w", err)}
	}
	applyOverrides(model, appConfig.Overrides)
	a.config = model
	logger.Debug("Configuration loaded.", "paths", paths, "variation", model.Build.Variation, "architecture", model.Build.Architecture)

	resolver, err := toolchain.NewResolver(model.Toolchain.CacheDir, a.goos, a.getenv, model.Toolchain.EmsdkEnv)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	a.resolver = resolver

	if a.host == nil {
		host, err := devsession.NewDesktopHost(a.launcher)
		if err != nil {
			logger.Debug("Desktop integration unavailable.", "error", err)
			a.host = unsupportedHost{err: err}
		} else {
			a.host = host
		}
	}
	a.session = devsession.New(a.launcher, a.host, a.resolver, a)

	return a, nil
}

// Config returns the effective configuration. This is primarily for testing.
func (a *App) Config() *config.Model {
	return a.config
}

// Session returns the dev session owned by the app.
func (a *App) Session() *devsession.Session {
	return a.session
}

// ConfigError marks a fatal configuration problem.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is, or wraps, a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func applyOverrides(m *config.Model, o Overrides) {
	if o.Variation != nil {
		m.Build.Variation = *o.Variation
	}
	if o.Architecture != nil {
		m.Build.Architecture = *o.Architecture
	}
	if o.Assertions != nil {
		m.Build.Assertions = *o.Assertions
	}
	if o.UpstreamBackend != nil {
		m.Build.UpstreamBackend = *o.UpstreamBackend
	}
	if o.ManagedDebugger != nil {
		m.Build.ManagedDebugger = *o.ManagedDebugger
	}
	if o.SingleFile != nil {
		m.Build.SingleFile = *o.SingleFile
	}
	if o.Minify != nil {
		m.Build.Minify = *o.Minify
	}
	if o.ClosureExterns != nil {
		m.Build.ClosureExterns = *o.ClosureExterns
	}
	if o.CacheDir != nil {
		m.Toolchain.CacheDir = *o.CacheDir
	}
	if o.HTTPPort != nil {
		m.DevServer.HTTPPort = *o.HTTPPort
	}
	if o.ProxyPort != nil {
		m.DevServer.ProxyPort = *o.ProxyPort
	}
	if o.ProxyScript != nil {
		m.DevServer.ProxyScript = *o.ProxyScript
	}
}

type unsupportedHost struct {
	err error
}

func (h unsupportedHost) OpenURL(string) error { return h.err }

func (h unsupportedHost) Reveal(string) error { return h.err }
