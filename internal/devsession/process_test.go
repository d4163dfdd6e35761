package devsession

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnv = "WEBDOTS_HELPER_PROCESS"

// TestHelperProcess is not a real test. It is the child process started by
// the ExecLauncher tests below.
func TestHelperProcess(t *testing.T) {
	switch os.Getenv(helperEnv) {
	case "":
		return
	case "sleep":
		time.Sleep(time.Minute)
		os.Exit(0)
	default:
		os.Exit(0)
	}
}

func startHelper(t *testing.T, mode string) Process {
	t.Helper()
	t.Setenv(helperEnv, mode)
	p, err := ExecLauncher{}.Start(ProcessSpec{
		Path: os.Args[0],
		Args: []string{"-test.run=^TestHelperProcess$"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = terminate(p) })
	return p
}

func TestExecLauncher_TerminateLiveProcess(t *testing.T) {
	p := startHelper(t, "sleep")
	require.False(t, p.Exited())
	require.Positive(t, p.Pid())

	require.NoError(t, terminate(p))

	assert.True(t, p.Exited())
	assert.ErrorIs(t, p.Kill(), os.ErrProcessDone)
	assert.NoError(t, terminate(p), "terminating twice is not an error")
}

func TestExecLauncher_TerminateExitedProcess(t *testing.T) {
	p := startHelper(t, "exit")

	require.NoError(t, p.Wait())
	require.True(t, p.Exited())

	assert.NoError(t, terminate(p))
	assert.ErrorIs(t, p.Kill(), os.ErrProcessDone)
}

func TestExecLauncher_StartFailure(t *testing.T) {
	_, err := ExecLauncher{}.Start(ProcessSpec{Path: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")
}

func TestTerminate_NilProcess(t *testing.T) {
	assert.NoError(t, terminate(nil))
}
