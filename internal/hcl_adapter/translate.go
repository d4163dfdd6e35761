// This file overlays the decoded HCL blocks onto the format-agnostic model
// defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/needle-mirror/com.unity.platforms.web/internal/config"
	"github.com/needle-mirror/com.unity.platforms.web/internal/ctxlog"
)

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func (l *Loader) applyBuild(ctx context.Context, dst *config.Build, b *BuildBlock, evalCtx *hcl.EvalContext) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Applying HCL build block.")

	setString(&dst.Variation, b.Variation)
	setString(&dst.Architecture, b.Architecture)
	setBool(&dst.ManagedDebugger, b.ManagedDebugger)
	setBool(&dst.UpstreamBackend, b.UpstreamBackend)
	setString(&dst.Assertions, b.Assertions)
	setBool(&dst.SingleFile, b.SingleFile)
	setBool(&dst.Minify, b.Minify)
	setString(&dst.ClosureExterns, b.ClosureExterns)
	setBool(&dst.BackgroundWorker, b.BackgroundWorker)
	setString(&dst.EmccCmdLine, b.EmccCmdLine)
	setBool(&dst.ExportWebPFallback, b.ExportWebPFallback)

	if !isExprDefined(ctx, b.LinkerSettings, "linker_settings") {
		return nil
	}
	val, diags := b.LinkerSettings.Value(evalCtx)
	if diags.HasErrors() {
		return fmt.Errorf("invalid linker_settings: %w", diags)
	}
	settings, err := linkerSettingsFromValue(val)
	if err != nil {
		return fmt.Errorf("invalid linker_settings: %w", err)
	}
	dst.LinkerSettings = settings
	return nil
}

func applyToolchain(dst *config.Toolchain, b *ToolchainBlock) {
	setString(&dst.CacheDir, b.CacheDir)
	setBool(&dst.EmsdkEnv, b.EmsdkEnv)
}

func applyDevServer(dst *config.DevServer, b *DevServerBlock) {
	setInt(&dst.HTTPPort, b.HTTPPort)
	setInt(&dst.ProxyPort, b.ProxyPort)
	setString(&dst.ProxyTarget, b.ProxyTarget)
	setString(&dst.ProxyScript, b.ProxyScript)
	setString(&dst.AssetsRoot, b.AssetsRoot)
}
