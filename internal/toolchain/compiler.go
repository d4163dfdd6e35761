package toolchain

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/needle-mirror/com.unity.platforms.web/internal/ctxlog"
	"github.com/needle-mirror/com.unity.platforms.web/internal/emscripten"
)

// Compiler drives emcc for one SDK.
type Compiler struct {
	sdk     SDK
	stdout  io.Writer
	stderr  io.Writer
	environ func() []string
	run     func(*exec.Cmd) error
}

// NewCompiler returns a compiler streaming emcc output to stdout and stderr.
func NewCompiler(sdk SDK, stdout, stderr io.Writer) *Compiler {
	return &Compiler{
		sdk:     sdk,
		stdout:  stdout,
		stderr:  stderr,
		environ: os.Environ,
		run:     (*exec.Cmd).Run,
	}
}

// Command builds the emcc invocation that links inputs into output.
func (c *Compiler) Command(ctx context.Context, cfg *emscripten.LinkerConfig, inputs []string, output string) *exec.Cmd {
	var name string
	var args []string
	if c.sdk.Python != "" {
		name = c.sdk.Python
		args = append(args, c.sdk.Emcc)
	} else {
		name = c.sdk.Emcc
	}
	args = append(args, cfg.Args()...)
	args = append(args, inputs...)
	args = append(args, "-o", output)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = c.env()
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr
	return cmd
}

func (c *Compiler) env() []string {
	env := c.environ()
	has := func(key string) bool {
		for _, kv := range env {
			if strings.HasPrefix(kv, key+"=") {
				return true
			}
		}
		return false
	}
	// The SDK components are pre-configured; the sanity check only costs
	// time and can pop up a Java dialog on macOS.
	if !has("EMCC_SKIP_SANITY_CHECK") {
		env = append(env, "EMCC_SKIP_SANITY_CHECK=1")
	}
	if c.sdk.LLVMRoot != "" {
		env = append(env, "EM_LLVM_ROOT="+c.sdk.LLVMRoot)
	}
	if c.sdk.Node != "" {
		env = append(env, "EM_NODE_JS="+c.sdk.Node)
	}
	return env
}

// Link runs emcc. A non-zero exit is returned as an error.
func (c *Compiler) Link(ctx context.Context, cfg *emscripten.LinkerConfig, inputs []string, output string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files to link")
	}
	logger := ctxlog.FromContext(ctx)

	cmd := c.Command(ctx, cfg, inputs, output)
	logger.Debug("Invoking emcc.", "command", cmd.String(), "local_sdk", c.sdk.Local)
	logger.Info("🔗 Linking", "output", output, "inputs", len(inputs))

	if err := c.run(cmd); err != nil {
		return fmt.Errorf("emcc failed: %w", err)
	}
	logger.Info("Link finished.", "output", output)
	return nil
}
