package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a configuration file. Every
// block is optional and may appear in at most one file.
type fileRoot struct {
	Build     []*BuildBlock     `hcl:"build,block"`
	Toolchain []*ToolchainBlock `hcl:"toolchain,block"`
	DevServer []*DevServerBlock `hcl:"devserver,block"`
}

// BuildBlock is the HCL schema of the `build` block. Pointer fields stay nil
// when the attribute is omitted so they do not override lower layers.
type BuildBlock struct {
	Variation        *string `hcl:"variation,optional"`
	Architecture     *string `hcl:"architecture,optional"`
	ManagedDebugger  *bool   `hcl:"managed_debugger,optional"`
	UpstreamBackend  *bool   `hcl:"upstream_backend,optional"`
	Assertions       *string `hcl:"assertions,optional"`
	SingleFile       *bool   `hcl:"single_file,optional"`
	Minify           *bool   `hcl:"minify,optional"`
	ClosureExterns   *string `hcl:"closure_externs,optional"`
	BackgroundWorker *bool   `hcl:"background_worker,optional"`

	EmccCmdLine        *string        `hcl:"emcc_cmdline,optional"`
	LinkerSettings     hcl.Expression `hcl:"linker_settings,optional"`
	ExportWebPFallback *bool          `hcl:"export_webp_fallback,optional"`
}

// ToolchainBlock is the HCL schema of the `toolchain` block.
type ToolchainBlock struct {
	CacheDir *string `hcl:"cache_dir,optional"`
	EmsdkEnv *bool   `hcl:"emsdk_env,optional"`
}

// DevServerBlock is the HCL schema of the `devserver` block.
type DevServerBlock struct {
	HTTPPort    *int    `hcl:"http_port,optional"`
	ProxyPort   *int    `hcl:"proxy_port,optional"`
	ProxyTarget *string `hcl:"proxy_target,optional"`
	ProxyScript *string `hcl:"proxy_script,optional"`
	AssetsRoot  *string `hcl:"assets_root,optional"`
}
