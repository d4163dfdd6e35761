package app

import (
	"errors"
	"fmt"
)

// Commands understood by the App.
const (
	CommandFlags    = "flags"
	CommandDiff     = "diff"
	CommandSettings = "settings"
	CommandBuild    = "build"
	CommandRun      = "run"
	CommandTest     = "test"
	CommandInspect  = "inspect"
)

// commandArgs is the number of positional arguments each command takes; -1
// means one or more.
var commandArgs = map[string]int{
	CommandFlags:    0,
	CommandDiff:     2,
	CommandSettings: 0,
	CommandBuild:    -1,
	CommandRun:      1,
	CommandTest:     0,
	CommandInspect:  1,
}

// DefaultConfigFile is loaded when no --config is given and it exists.
const DefaultConfigFile = "webdots.hcl"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string
	Args    []string

	// ConfigPaths are HCL files or directories, applied in order.
	ConfigPaths []string
	// SettingsFile is an existing JSON settings document to start from.
	SettingsFile string
	// Output is the link output of the build command.
	Output string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	Overrides Overrides
}

// Overrides are command line values that win over the configuration files.
// A nil field was not given on the command line.
type Overrides struct {
	Variation       *string
	Architecture    *string
	Assertions      *string
	UpstreamBackend *bool
	ManagedDebugger *bool
	SingleFile      *bool
	Minify          *bool
	ClosureExterns  *string
	CacheDir        *string
	HTTPPort        *int
	ProxyPort       *int
	ProxyScript     *string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	want, ok := commandArgs[cfg.Command]
	if !ok {
		if cfg.Command == "" {
			return nil, errors.New("a command is required")
		}
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	switch {
	case want < 0 && len(cfg.Args) == 0:
		return nil, fmt.Errorf("%s requires at least one argument", cfg.Command)
	case want >= 0 && len(cfg.Args) != want:
		return nil, fmt.Errorf("%s takes %d argument(s), got %d", cfg.Command, want, len(cfg.Args))
	}
	if cfg.Command == CommandBuild && cfg.Output == "" {
		return nil, errors.New("build requires an output path (-o)")
	}
	return &cfg, nil
}
