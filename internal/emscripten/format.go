package emscripten

// ExecutableExtension is the extension of the page that hosts a web build.
const ExecutableExtension = ".html"

// WebBuildConfig carries the per-build platform switches read by the
// packaging step.
type WebBuildConfig struct {
	SingleFile         bool
	ExportWebPFallback bool
}

// ExecutableFormat pairs the linker configuration with the platform build
// config of one build.
type ExecutableFormat struct {
	Extension string
	Linker    *LinkerConfig
	Web       WebBuildConfig
}
