// Package hcl_adapter provides the HCL implementation of config.Loader.
//
// A configuration file may declare three optional blocks:
//
//	build {
//	  variation        = "release"
//	  architecture     = "wasm"
//	  managed_debugger = false
//	  emcc_cmdline     = "-s TOTAL_MEMORY=268435456"
//	  linker_settings  = { ALLOW_MEMORY_GROWTH = true }
//	}
//
//	toolchain {
//	  cache_dir = env("WEBDOTS_CACHE", ".webdots/artifacts")
//	}
//
//	devserver {
//	  http_port  = 8084
//	  proxy_port = 54998
//	}
//
// Expressions may call env(name) or env(name, default).
package hcl_adapter
