package toolchain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrToolMissing is returned when a required executable is not present.
var ErrToolMissing = errors.New("required tool is missing")

// DevTools are the executables of the dev session.
type DevTools struct {
	Runtime string
	Server  string
}

// SDK is a resolved Emscripten installation.
type SDK struct {
	Root     string
	LLVMRoot string
	Python   string
	Node     string
	Emcc     string
	// Local is set for an SDK taken from the EMSDK environment.
	Local bool
}

// Resolver maps the platform table onto an artifact cache directory.
type Resolver struct {
	cacheDir string
	platform Platform
	getenv   func(string) string
	useEnv   bool
	stat     func(string) (os.FileInfo, error)
}

// NewResolver resolves the platform table for goos once. When useEnv is set,
// an EMSDK environment takes precedence over cached artifacts for the SDK.
func NewResolver(cacheDir, goos string, getenv func(string) string, useEnv bool) (*Resolver, error) {
	p, err := PlatformFor(goos)
	if err != nil {
		return nil, err
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Resolver{
		cacheDir: cacheDir,
		platform: p,
		getenv:   getenv,
		useEnv:   useEnv,
		stat:     os.Stat,
	}, nil
}

func (r *Resolver) artifact(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(r.cacheDir, filepath.FromSlash(rel))
}

func (r *Resolver) require(what, path string) error {
	if _, err := r.stat(path); err != nil {
		return fmt.Errorf("%w: %s not found at %s", ErrToolMissing, what, path)
	}
	return nil
}

// DevTools returns the JavaScript runtime and static file server. Both must
// exist.
func (r *Resolver) DevTools() (DevTools, error) {
	runtimePath := r.artifact(r.platform.Runtime)
	if r.useEnv && r.getenv("EMSDK") != "" && r.getenv("EMSDK_NODE") != "" {
		runtimePath = r.getenv("EMSDK_NODE")
	}
	tools := DevTools{
		Runtime: runtimePath,
		Server:  r.artifact(r.platform.Server),
	}
	if err := r.require("JavaScript runtime", tools.Runtime); err != nil {
		return DevTools{}, err
	}
	if err := r.require("static file server", tools.Server); err != nil {
		return DevTools{}, err
	}
	return tools, nil
}

// SDK returns the Emscripten installation for the requested backend.
func (r *Resolver) SDK(upstream bool) (SDK, error) {
	if r.useEnv && r.getenv("EMSDK") != "" {
		return r.envSDK()
	}

	llvm := r.platform.LLVMLegacy
	if upstream {
		llvm = r.platform.LLVMUpstream
	}
	sdk := SDK{
		Root:     r.artifact(r.platform.Emscripten),
		LLVMRoot: r.artifact(llvm),
		Node:     r.artifact(r.platform.Runtime),
	}
	if r.platform.Python != "" {
		sdk.Python = r.artifact(r.platform.Python)
	}
	sdk.Emcc = filepath.Join(sdk.Root, r.platform.EmccName)

	if err := r.require("emcc", sdk.Emcc); err != nil {
		return SDK{}, err
	}
	if err := r.require("llvm", sdk.LLVMRoot); err != nil {
		return SDK{}, err
	}
	return sdk, nil
}

// envSDK builds the SDK from an activated emsdk environment. This is meant
// for local toolchain development only.
func (r *Resolver) envSDK() (SDK, error) {
	root := r.getenv("EMSCRIPTEN")
	if root == "" {
		return SDK{}, fmt.Errorf("%w: EMSDK is set but EMSCRIPTEN is not", ErrToolMissing)
	}
	sdk := SDK{
		Root:     root,
		LLVMRoot: r.getenv("LLVM_ROOT"),
		Python:   r.getenv("EMSDK_PYTHON"),
		Node:     r.getenv("EMSDK_NODE"),
		Local:    true,
	}
	if sdk.Python != "" {
		sdk.Emcc = filepath.Join(root, "emcc.py")
	} else {
		sdk.Emcc = filepath.Join(root, r.platform.EmccName)
	}
	if err := r.require("emcc", sdk.Emcc); err != nil {
		return SDK{}, err
	}
	return sdk, nil
}
