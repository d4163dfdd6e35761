package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/needle-mirror/com.unity.platforms.web/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func fakeEnv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoader_Load(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, dir, "build.hcl", `
		build {
			variation        = "release"
			architecture     = "asmjs"
			managed_debugger = true
			emcc_cmdline     = "--profiling"
			linker_settings  = ["TOTAL_MEMORY=268435456", "EXPORT_NAME=Player"]
		}
	`)
	writeFile(t, dir, "nested/dev.hcl", `
		devserver {
			http_port   = 9000
			proxy_script = env("WEBSOCKIFY", "/opt/websockify.js")
		}
		toolchain {
			cache_dir = env("WEBDOTS_CACHE")
		}
	`)
	writeFile(t, dir, "README.md", "not config")

	loader := NewLoaderWithEnv(fakeEnv(map[string]string{"WEBDOTS_CACHE": "/cache"}))

	// --- Act ---
	model, err := loader.Load(context.Background(), config.Default(), dir)

	// --- Assert ---
	require.NoError(t, err)

	want := config.Default()
	want.Build.Variation = "release"
	want.Build.Architecture = "asmjs"
	want.Build.ManagedDebugger = true
	want.Build.EmccCmdLine = "--profiling"
	want.Build.LinkerSettings = []string{"TOTAL_MEMORY=268435456", "EXPORT_NAME=Player"}
	want.DevServer.HTTPPort = 9000
	want.DevServer.ProxyScript = "/opt/websockify.js"
	want.Toolchain.CacheDir = "/cache"

	if diff := cmp.Diff(want, model); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_LinkerSettingsObject(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.hcl", `
		build {
			linker_settings = {
				TOTAL_MEMORY        = 268435456
				ALLOW_MEMORY_GROWTH = true
				EXPORT_NAME         = "Player"
			}
		}
	`)

	model, err := NewLoader().Load(context.Background(), config.Default(), path)
	require.NoError(t, err)

	// Object attributes iterate in lexical order.
	assert.Equal(t, []string{
		"ALLOW_MEMORY_GROWTH=1",
		"EXPORT_NAME=Player",
		"TOTAL_MEMORY=268435456",
	}, model.Build.LinkerSettings)
}

func TestLoader_OmittedAttributesKeepBase(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.hcl", `
		build {
			single_file = true
		}
	`)
	base := config.Default()
	base.Build.LinkerSettings = []string{"KEEP=1"}

	model, err := NewLoader().Load(context.Background(), base, path)
	require.NoError(t, err)

	assert.True(t, model.Build.SingleFile)
	assert.Equal(t, "develop", model.Build.Variation)
	assert.Equal(t, []string{"KEEP=1"}, model.Build.LinkerSettings)
	assert.False(t, base.Build.SingleFile, "base must not be modified")
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": `build {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			files:   map[string]string{"a.hcl": `player {}`},
			wantErr: "failed to decode HCL file",
		},
		{
			name: "duplicate block across files",
			files: map[string]string{
				"a.hcl": `build { variation = "debug" }`,
				"b.hcl": `build { variation = "release" }`,
			},
			wantErr: `block "build" declared more than once`,
		},
		{
			name:    "duplicate block in one file",
			files:   map[string]string{"a.hcl": "devserver {}\ndevserver {}"},
			wantErr: `block "devserver" declared more than once`,
		},
		{
			name:    "linker settings of wrong type",
			files:   map[string]string{"a.hcl": `build { linker_settings = 3 }`},
			wantErr: "invalid linker_settings",
		},
		{
			name:    "linker settings with null member",
			files:   map[string]string{"a.hcl": `build { linker_settings = { A = null } }`},
			wantErr: "invalid linker_settings",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				writeFile(t, dir, name, content)
			}

			_, err := NewLoader().Load(context.Background(), config.Default(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_MissingPathIsAnError(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), config.Default(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing config path")
}
