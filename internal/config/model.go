package config

// Model is the unified representation of the webdots configuration.
type Model struct {
	Build     Build
	Toolchain Toolchain
	DevServer DevServer
}

// Build holds the linker options and the Emscripten settings record.
type Build struct {
	Variation        string
	Architecture     string
	ManagedDebugger  bool
	UpstreamBackend  bool
	Assertions       string
	SingleFile       bool
	Minify           bool
	ClosureExterns   string
	BackgroundWorker bool

	EmccCmdLine        string
	LinkerSettings     []string
	ExportWebPFallback bool
}

// Toolchain locates the artifact cache and, optionally, a local SDK.
type Toolchain struct {
	// CacheDir is the root of the downloaded toolchain artifacts.
	CacheDir string
	// EmsdkEnv enables the EMSDK environment override.
	EmsdkEnv bool
}

// DevServer configures the local file server and WebSocket proxy.
type DevServer struct {
	HTTPPort    int
	ProxyPort   int
	ProxyTarget string
	// ProxyScript is an explicit path to websockify.js. When empty the
	// script is searched for under AssetsRoot.
	ProxyScript string
	AssetsRoot  string
}

// Default values mirror the ports the web player expects.
const (
	DefaultHTTPPort    = 8084
	DefaultProxyPort   = 54998
	DefaultProxyTarget = "localhost:34999"
)

// Default returns the configuration used when no file overrides it.
func Default() *Model {
	return &Model{
		Build: Build{
			Variation:       "develop",
			Architecture:    "wasm",
			UpstreamBackend: true,
			Assertions:      "maximal",
		},
		Toolchain: Toolchain{
			CacheDir: ".webdots/artifacts",
			EmsdkEnv: true,
		},
		DevServer: DevServer{
			HTTPPort:    DefaultHTTPPort,
			ProxyPort:   DefaultProxyPort,
			ProxyTarget: DefaultProxyTarget,
			AssetsRoot:  ".",
		},
	}
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	c := *m
	c.Build.LinkerSettings = append([]string(nil), m.Build.LinkerSettings...)
	return &c
}
