package target

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/needle-mirror/com.unity.platforms.web/internal/config"
	"github.com/needle-mirror/com.unity.platforms.web/internal/ctxlog"
	"github.com/needle-mirror/com.unity.platforms.web/internal/devsession"
)

// ErrTestModeUnsupported reports that web builds cannot run in test mode.
var ErrTestModeUnsupported = errors.New("test mode is not supported for web builds")

const testModeMessage = "Test mode is not supported for web yet"

// SessionRunner starts a dev session for a build.
type SessionRunner interface {
	EnsureRunning(ctx context.Context, req devsession.Request) devsession.Result
}

// Run serves the build whose boot page is buildTarget and opens it in the
// browser.
func Run(ctx context.Context, session SessionRunner, buildTarget string, dev config.DevServer) devsession.Result {
	logger := ctxlog.FromContext(ctx)

	if !strings.EqualFold(filepath.Ext(buildTarget), ExecutableExtension) {
		msg := fmt.Sprintf("%s is not a web build page (expected a %s file).", buildTarget, ExecutableExtension)
		logger.Warn(msg)
		return devsession.Result{Warning: msg}
	}

	abs, err := filepath.Abs(buildTarget)
	if err != nil {
		return devsession.Result{Warning: fmt.Sprintf("Failed to resolve %s: %v", buildTarget, err)}
	}

	req := devsession.Request{
		BuildDir:    filepath.Dir(abs),
		BuildName:   filepath.Base(abs),
		HTTPPort:    dev.HTTPPort,
		ProxyPort:   dev.ProxyPort,
		ProxyTarget: dev.ProxyTarget,
		ProxyScript: dev.ProxyScript,
		AssetsRoot:  dev.AssetsRoot,
	}
	logger.Debug("Running web build.", "build_dir", req.BuildDir, "build_name", req.BuildName)
	return session.EnsureRunning(ctx, req)
}

// ShellProcessOutput is the outcome of running a build in test mode.
type ShellProcessOutput struct {
	Succeeded  bool
	ExitCode   int
	FullOutput string
}

// Err returns ErrTestModeUnsupported for an unsuccessful run.
func (o ShellProcessOutput) Err() error {
	if o.Succeeded {
		return nil
	}
	return ErrTestModeUnsupported
}

// RunTestMode would run exe from dir with a timeout. Web builds have no
// headless runner, so it always reports an unsuccessful run with exit code 0.
func RunTestMode(exe, dir string, timeout time.Duration) ShellProcessOutput {
	return ShellProcessOutput{
		Succeeded:  false,
		ExitCode:   0,
		FullOutput: testModeMessage,
	}
}
