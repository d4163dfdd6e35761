// Package emscripten resolves the linker configuration handed to the emcc
// compiler driver for a web build.
//
// The resolver is a pure function of its Options: a build variation
// (debug, develop, release), the target architecture (asm.js or wasm) and a
// handful of independent toggles. It produces a LinkerConfig whose ordered
// Settings render as `-s NAME=VALUE` arguments, followed by the debug,
// optimization and link-time-optimization levels and free-form custom flags.
//
// Nothing here invokes the toolchain. See the toolchain package for that.
package emscripten
