package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "--healthcheck-port")
}

func TestParse_NoCommandPrintsUsage(t *testing.T) {
	out := &bytes.Buffer{}

	_, shouldExit, err := Parse(nil, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Commands:")
}

func TestParse_Command(t *testing.T) {
	cfg, shouldExit, err := Parse([]string{
		"build", "a.o", "b.o", "-o", "Game.html",
		"--variation", "release", "--upstream=false",
		"-c", "base.hcl", "-c", "local.hcl",
		"--log-level", "DEBUG",
	}, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "build", cfg.Command)
	assert.Equal(t, []string{"a.o", "b.o"}, cfg.Args)
	assert.Equal(t, "Game.html", cfg.Output)
	assert.Equal(t, []string{"base.hcl", "local.hcl"}, cfg.ConfigPaths)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)

	require.NotNil(t, cfg.Overrides.Variation)
	assert.Equal(t, "release", *cfg.Overrides.Variation)
	require.NotNil(t, cfg.Overrides.UpstreamBackend)
	assert.False(t, *cfg.Overrides.UpstreamBackend)
}

func TestParse_UnsetFlagsDoNotOverride(t *testing.T) {
	cfg, _, err := Parse([]string{"flags"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Nil(t, cfg.Overrides.Variation)
	assert.Nil(t, cfg.Overrides.UpstreamBackend)
	assert.Nil(t, cfg.Overrides.HTTPPort)
	assert.Nil(t, cfg.Overrides.Minify)
	assert.Nil(t, cfg.Overrides.ClosureExterns)
}

func TestParse_MinifyWithExterns(t *testing.T) {
	cfg, _, err := Parse([]string{"flags", "--minify", "--closure-externs", "externs/interop.js"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.NotNil(t, cfg.Overrides.Minify)
	assert.True(t, *cfg.Overrides.Minify)
	require.NotNil(t, cfg.Overrides.ClosureExterns)
	assert.Equal(t, "externs/interop.js", *cfg.Overrides.ClosureExterns)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown flag", args: []string{"flags", "--this-is-not-a-valid-flag"}, wantErr: "unknown flag: --this-is-not-a-valid-flag"},
		{name: "bad log format", args: []string{"flags", "--log-format", "xml"}, wantErr: "invalid log-format"},
		{name: "bad log level", args: []string{"flags", "--log-level", "trace"}, wantErr: "invalid log-level"},
		{name: "unknown command", args: []string{"deploy"}, wantErr: `unknown command "deploy"`},
		{name: "missing argument", args: []string{"run"}, wantErr: "run takes 1 argument(s), got 0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}
