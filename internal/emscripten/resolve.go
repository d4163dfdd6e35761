package emscripten

// Resolve computes the linker configuration for opts. It has no hidden
// state: the same Options always produce the same LinkerConfig.
func Resolve(opts Options) (*LinkerConfig, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s := NewSettings()

	// Single precision float coercion only costs code size in asm.js output.
	s.SetInt("PRECISE_F32", 0)
	// The player never throws across the native boundary.
	s.SetInt("DISABLE_EXCEPTION_CATCHING", 1)
	// No virtual filesystem; assets are fetched.
	s.SetInt("NO_FILESYSTEM", 1)
	// Only ever executed from a browser page.
	// TODO: drop this once a node.js test harness consumes the build.
	s.Set("ENVIRONMENT", "web")
	// Compile time ctor evaluation rarely removes anything and prevents
	// MINIMAL_RUNTIME from grouping all global constructors into one.
	s.SetInt("EVAL_CTORS", 0)
	// The runtime does not read errno.
	s.SetInt("SUPPORT_ERRNO", 0)
	// OES_texture_half_float is broken on some WebKit versions:
	// https://bugs.webkit.org/show_bug.cgi?id=183321
	// https://bugs.webkit.org/show_bug.cgi?id=169999
	s.SetInt("GL_DISABLE_HALF_FLOAT_EXTENSION_IF_BROKEN", 1)
	s.SetInt("MINIMAL_RUNTIME", MinimalRuntimeDangerouslyAggressive)
	s.SetInt("EXIT_RUNTIME", 0)
	// Asynchronous fetch for web IO. The IndexedDB cache behind it is not
	// finished upstream.
	s.SetInt("FETCH", 1)
	s.SetInt("FETCH_SUPPORT_INDEXEDDB", 0)
	s.SetBool("WASM", opts.Architecture == Wasm)

	if opts.ManagedDebugger {
		// Socket based managed debugging goes through the WebSocket proxy.
		s.SetInt("PROXY_POSIX_SOCKETS", 1)
	}

	cfg := &LinkerConfig{Settings: s}

	if opts.Architecture == AsmJS {
		s.SetInt("LEGACY_VM_SUPPORT", 1)
		// fastcomp can split the unreadable asm.js body into its own file.
		// The upstream backend has no such switch.
		cfg.SeparateAsm = !opts.UpstreamBackend
	}

	switch opts.Variation {
	case Debug, Develop:
		s.SetInt("ASSERTIONS", opts.Assertions.Level())
		s.SetInt("DEMANGLE_SUPPORT", 1)
	case Release:
		s.SetInt("ASSERTIONS", 0)
		s.SetInt("AGGRESSIVE_VARIABLE_ELIMINATION", 1)
		if !opts.UpstreamBackend {
			// This pass only exists in fastcomp.
			s.SetInt("ELIMINATE_DUPLICATE_FUNCTIONS", 1)
		}
	}

	switch opts.Variation {
	case Debug:
		cfg.DebugLevel = 3
		cfg.OptLevel = "0"
		if opts.UpstreamBackend {
			// Upstream codegen at -O0 is too large to be usable; keep -O1
			// but leave functions un-inlined so the code stays steppable.
			cfg.OptLevel = "1"
			cfg.CustomFlags = append(cfg.CustomFlags, "-fno-inline")
		}
		cfg.LTOLevel = 0
		// Names are not minified at -g3, a symbol map adds nothing.
		cfg.EmitSymbolMap = cfg.DebugLevel < 3
	case Develop:
		cfg.DebugLevel = 2
		cfg.OptLevel = "1"
		cfg.LTOLevel = 0
		cfg.EmitSymbolMap = false
	case Release:
		cfg.DebugLevel = 0
		cfg.OptLevel = "z"
		cfg.LTOLevel = 3
		// Release symbol maps are only emitted for the upstream backend.
		// TODO: compare fastcomp and upstream symbol maps against the
		// minified output and enable the one that matches for both.
		cfg.EmitSymbolMap = opts.UpstreamBackend
	}

	if opts.Minify {
		cfg.Closure = true
		cfg.ClosureExterns = opts.ClosureExterns
	}

	// The generic system library mechanism does not link GL for web targets yet.
	cfg.CustomFlags = append(cfg.CustomFlags, "-lGL")

	cfg.MemoryInitFile = (opts.Architecture == AsmJS && !opts.UpstreamBackend) || opts.RunInBackgroundWorker
	if opts.RunInBackgroundWorker {
		// Exposes __EMSCRIPTEN_PTHREADS__ to compiled code.
		s.SetInt("USE_PTHREADS", 1)
	}

	cfg.SingleFile = opts.SingleFile

	return cfg, nil
}
