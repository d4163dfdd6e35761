package app

import (
	"context"
	"fmt"

	"github.com/needle-mirror/com.unity.platforms.web/internal/ctxlog"
)

// Run executes the configured command. The run command blocks until ctx is
// done; callers close the App afterwards to stop the dev session.
func (a *App) Run(ctx context.Context) error {
	ctx, logger := ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "command", a.appConfig.Command)
	logger.Debug("App.Run method started.", "args", a.appConfig.Args)

	if a.appConfig.HealthcheckPort > 0 {
		if err := a.startHealthCheckServer(a.appConfig.HealthcheckPort); err != nil {
			return err
		}
	}

	var err error
	switch a.appConfig.Command {
	case CommandFlags:
		err = a.runFlags(ctx)
	case CommandDiff:
		err = a.runDiff(ctx, a.appConfig.Args[0], a.appConfig.Args[1])
	case CommandSettings:
		err = a.runSettings(ctx)
	case CommandBuild:
		err = a.runBuild(ctx, a.appConfig.Args, a.appConfig.Output)
	case CommandRun:
		err = a.runDevSession(ctx, a.appConfig.Args[0])
	case CommandTest:
		err = a.runTestMode(ctx)
	case CommandInspect:
		err = a.runInspect(ctx, a.appConfig.Args[0])
	default:
		err = &ConfigError{Err: fmt.Errorf("unknown command %q", a.appConfig.Command)}
	}

	logger.Debug("App.Run method finished.", "error", err)
	return err
}
