package emscripten

import (
	"strconv"
)

// MinimalRuntimeDangerouslyAggressive is the MINIMAL_RUNTIME level that also
// strips runtime features assumed unused by the player.
const MinimalRuntimeDangerouslyAggressive = 2

// LinkerConfig is the resolved emcc configuration of one build invocation.
type LinkerConfig struct {
	Settings *Settings

	DebugLevel    int
	OptLevel      string
	LTOLevel      int
	EmitSymbolMap bool
	SeparateAsm   bool

	// MemoryInitFile emits the static memory image as a separate .mem file.
	MemoryInitFile bool
	SingleFile     bool

	Closure        bool
	ClosureExterns string

	CustomFlags []string
}

// WithCustomFlags appends free-form flags.
func (c *LinkerConfig) WithCustomFlags(flags ...string) *LinkerConfig {
	for _, f := range flags {
		if f == "" {
			continue
		}
		c.CustomFlags = append(c.CustomFlags, f)
	}
	return c
}

// Args renders the configuration as emcc arguments.
func (c *LinkerConfig) Args() []string {
	args := []string{
		"-g" + strconv.Itoa(c.DebugLevel),
		"-O" + c.OptLevel,
		"--llvm-lto", strconv.Itoa(c.LTOLevel),
	}
	if c.EmitSymbolMap {
		args = append(args, "--emit-symbol-map")
	}
	if c.SeparateAsm {
		args = append(args, "--separate-asm")
	}
	if c.MemoryInitFile {
		args = append(args, "--memory-init-file", "1")
	} else {
		args = append(args, "--memory-init-file", "0")
	}
	for _, s := range c.Settings.All() {
		args = append(args, "-s", s.Name+"="+s.Value)
	}
	if c.SingleFile {
		args = append(args, "-s", "SINGLE_FILE=1")
	}
	if c.Closure {
		args = append(args, "--closure", "1")
		if c.ClosureExterns != "" {
			args = append(args, "--closure-args", "--externs "+c.ClosureExterns)
		}
	}
	return append(args, c.CustomFlags...)
}

// String renders Args as a single shell-like line, quoting arguments that
// contain spaces.
func (c *LinkerConfig) String() string {
	args := c.Args()
	out := make([]byte, 0, 256)
	for i, a := range args {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, quoteArg(a)...)
	}
	return string(out)
}

func quoteArg(a string) string {
	for _, r := range a {
		if r == ' ' || r == '\t' || r == '"' {
			return strconv.Quote(a)
		}
	}
	return a
}
