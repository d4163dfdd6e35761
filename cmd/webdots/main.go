package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/needle-mirror/com.unity.platforms.web/internal/app"
	"github.com/needle-mirror/com.unity.platforms.web/internal/cli"
	"github.com/needle-mirror/com.unity.platforms.web/internal/hcl_adapter"
)

// main is the entrypoint for the webdots application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := hcl_adapter.NewLoader()
	webdots, err := app.NewApp(outW, appConfig, loader)
	if err != nil {
		return asExitError(err)
	}
	defer func() {
		if closeErr := webdots.Close(context.Background()); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return asExitError(webdots.Run(ctx))
}

// asExitError maps configuration errors to exit code 2.
func asExitError(err error) error {
	if err != nil && app.IsConfigError(err) {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	return err
}
