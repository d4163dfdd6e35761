package emscripten

import "fmt"

// Options are the inputs of Resolve.
type Options struct {
	Variation    Variation
	Architecture Architecture

	// ManagedDebugger enables POSIX socket proxying so the managed debugger
	// can reach the player through the WebSocket proxy.
	ManagedDebugger bool

	// UpstreamBackend selects the LLVM wasm backend instead of the older
	// fastcomp backend.
	UpstreamBackend bool

	// Assertions picks the ASSERTIONS level of debug and develop builds.
	Assertions AssertionMode

	SingleFile bool

	// Minify runs the closure compiler with ClosureExterns whitelisting the
	// native and JS interop symbols.
	Minify         bool
	ClosureExterns string

	// RunInBackgroundWorker builds a player that runs in a web worker rather
	// than the main browser thread.
	RunInBackgroundWorker bool
}

// DefaultOptions returns the options of a develop wasm build on the
// upstream backend.
func DefaultOptions() Options {
	return Options{
		Variation:       Develop,
		Architecture:    Wasm,
		UpstreamBackend: true,
		Assertions:      AssertionsMaximal,
	}
}

// Validate checks the enumerated fields and the minify inputs.
func (o Options) Validate() error {
	switch o.Variation {
	case Debug, Develop, Release:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownVariation, o.Variation)
	}
	switch o.Architecture {
	case AsmJS, Wasm:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownArchitecture, o.Architecture)
	}
	if o.Minify && o.ClosureExterns == "" {
		return ErrMissingClosureExterns
	}
	return nil
}
