// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the command lifecycle, decoupled from the
// CLI entrypoint that parses flags into a Config.
package app
