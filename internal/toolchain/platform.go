// Package toolchain locates the external executables webdots drives: the
// Emscripten SDK used for linking and the JavaScript runtime, static file
// server and WebSocket proxy script used by the dev session.
package toolchain

import "fmt"

// Platform names the artifacts of one host OS, relative to the artifact
// cache root. Each path is "<artifact>/<path inside the artifact>".
type Platform struct {
	Runtime    string
	Server     string
	Emscripten string
	// LLVMLegacy and LLVMUpstream are the fastcomp and upstream wasm backends.
	LLVMLegacy   string
	LLVMUpstream string
	// Python is empty when emcc is run directly. An absolute path refers to
	// the host interpreter rather than a cached artifact.
	Python string
	// EmccName is the compiler driver inside the Emscripten root.
	EmccName string
}

var platforms = map[string]Platform{
	"windows": {
		Runtime:      "node-win-x64/node.exe",
		Server:       "http-server/bin/http-server",
		Emscripten:   "emscripten-win",
		LLVMLegacy:   "emscripten-fc-llvm-win",
		LLVMUpstream: "emscripten-wasm-llvm-win",
		Python:       "winpython2-x64/WinPython-64bit-2.7.13.1Zero/python-2.7.13.amd64/python.exe",
		EmccName:     "emcc.py",
	},
	"linux": {
		Runtime:      "node-linux-x64/bin/node",
		Server:       "http-server/bin/http-server",
		Emscripten:   "emscripten-unix",
		LLVMLegacy:   "emscripten-fc-llvm-linux",
		LLVMUpstream: "emscripten-wasm-llvm-linux",
		EmccName:     "emcc",
	},
	"darwin": {
		Runtime:      "node-mac-x64/bin/node",
		Server:       "http-server/bin/http-server",
		Emscripten:   "emscripten-unix",
		LLVMLegacy:   "emscripten-fc-llvm-mac",
		LLVMUpstream: "emscripten-wasm-llvm-mac",
		EmccName:     "emcc",
	},
}

// PlatformFor returns the artifact table of goos.
func PlatformFor(goos string) (Platform, error) {
	p, ok := platforms[goos]
	if !ok {
		return Platform{}, fmt.Errorf("unsupported host platform %q", goos)
	}
	return p, nil
}
