// Package config defines the format-agnostic configuration model of webdots,
// along with the Loader interface implemented by concrete formats.
//
// The Model is the single source of truth for the build, toolchain and dev
// server settings. Defaults come from Default; a Loader overlays whatever
// the configuration files declare; the CLI overlays explicitly set flags last.
package config
