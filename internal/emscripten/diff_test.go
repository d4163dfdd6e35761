package emscripten

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_DebugVersusRelease(t *testing.T) {
	debug := resolve(t, Debug, false, false, false)
	release := resolve(t, Release, false, false, false)

	out := Diff(debug, release)

	assert.Contains(t, out, "--g3\n")
	assert.Contains(t, out, "+-g0\n")
	assert.Contains(t, out, "+-Oz\n")
	assert.Contains(t, out, "+-s ELIMINATE_DUPLICATE_FUNCTIONS=1\n")
	assert.Contains(t, out, " -s PRECISE_F32=0\n")
}

func TestDiff_IdenticalConfigs(t *testing.T) {
	a := resolve(t, Develop, false, false, true)
	b := resolve(t, Develop, false, false, true)

	out := Diff(a, b)
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, " "), "unexpected change %q", line)
	}
}

func TestLines_PairsValueFlags(t *testing.T) {
	opts := DefaultOptions()
	opts.Minify = true
	opts.ClosureExterns = "/sdk/closure externs.js"
	cfg, err := Resolve(opts)
	assert.NoError(t, err)

	lines := cfg.Lines()
	assert.Contains(t, lines, "--llvm-lto 0")
	assert.Contains(t, lines, "-s ENVIRONMENT=web")
	assert.Contains(t, lines, `--closure-args "--externs /sdk/closure externs.js"`)
}
