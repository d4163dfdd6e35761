// Package devsession runs the local development workflow of a web build:
// a static file server rooted at the build output and a WebSocket-to-TCP
// proxy used for socket based managed debugging.
//
// A Session owns at most one process per slot. Starting a session again
// replaces both processes; the previous ones are killed and waited for
// first. The session is an explicit value owned by the app and passed to
// callers, never a package level global.
//
// Collaborators that touch the outside world are interfaces so the session
// can be driven by fakes in tests:
//
//   - Launcher starts processes.
//   - Host opens URLs and reveals files in the platform file browser.
//   - ToolResolver locates the JavaScript runtime and file server.
//   - ShutdownRegistrar runs StopRunning when the host application exits.
package devsession
