package devsession

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/needle-mirror/com.unity.platforms.web/internal/ctxlog"
	"github.com/needle-mirror/com.unity.platforms.web/internal/toolchain"
)

// SlotState is the lifecycle state of one process slot.
type SlotState string

const (
	Absent  SlotState = "absent"
	Running SlotState = "running"
	Dead    SlotState = "dead"
)

// ToolResolver locates the dev session executables.
type ToolResolver interface {
	DevTools() (toolchain.DevTools, error)
}

// Request describes the build to serve.
type Request struct {
	// BuildDir is the build output directory, served as the web root.
	BuildDir string
	// BuildName is the page opened in the browser, e.g. "Game.html".
	BuildName   string
	HTTPPort    int
	ProxyPort   int
	ProxyTarget string
	// ProxyScript is an explicit websockify.js path; when empty it is
	// searched for under AssetsRoot.
	ProxyScript string
	AssetsRoot  string
}

// URL is the address the browser is pointed at.
func (r Request) URL() string {
	return fmt.Sprintf("http://localhost:%d/%s", r.HTTPPort, r.BuildName)
}

// Result reports the outcome of EnsureRunning. A non-empty Warning means the
// session could not be brought up; it is never fatal to the caller.
type Result struct {
	URL     string
	Warning string
}

// OK reports whether both processes started and the browser was pointed at URL.
func (r Result) OK() bool {
	return r.Warning == ""
}

// Status is a point in time view of the session.
type Status struct {
	FileServer SlotState `json:"file_server"`
	Proxy      SlotState `json:"proxy"`
	URL        string    `json:"url,omitempty"`
	ProxyPort  int       `json:"proxy_port,omitempty"`
}

type slot struct {
	name string
	proc Process
}

func (s *slot) state() SlotState {
	switch {
	case s.proc == nil:
		return Absent
	case s.proc.Exited():
		return Dead
	default:
		return Running
	}
}

// Session owns the file server and proxy processes.
type Session struct {
	launcher Launcher
	host     Host
	tools    ToolResolver
	shutdown ShutdownRegistrar

	hookOnce sync.Once

	mu      sync.Mutex
	server  slot
	proxy   slot
	lastReq Request
}

// New creates an idle session.
func New(launcher Launcher, host Host, tools ToolResolver, shutdown ShutdownRegistrar) *Session {
	return &Session{
		launcher: launcher,
		host:     host,
		tools:    tools,
		shutdown: shutdown,
		server:   slot{name: "file_server"},
		proxy:    slot{name: "proxy"},
	}
}

// EnsureRunning (re)starts the file server and the proxy for req and opens
// the browser. Previous processes are terminated first. Failures are
// reported as a warning in the Result, never as an error.
func (s *Session) EnsureRunning(ctx context.Context, req Request) Result {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("devsession.EnsureRunning called", "build_dir", req.BuildDir, "build_name", req.BuildName)

	s.hookOnce.Do(func() {
		if s.shutdown != nil {
			s.shutdown.OnShutdown(func() { s.StopRunning(ctx) })
			logger.Debug("Registered dev session shutdown hook.")
		}
	})

	buildPage := filepath.Join(req.BuildDir, req.BuildName)

	proxyScript, err := resolveProxyScript(req)
	if err != nil {
		return s.warn(ctx, buildPage, fmt.Sprintf("Unable to locate %s: %v. Unable to run web build.", toolchain.ProxyScriptName, err))
	}

	tools, err := s.tools.DevTools()
	if err != nil {
		return s.warn(ctx, buildPage, fmt.Sprintf("Web toolchain not installed: %v. Unable to run web build.", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReq = req

	serverSpec := ProcessSpec{
		Path: tools.Runtime,
		Args: []string{tools.Server, ".", "-p", strconv.Itoa(req.HTTPPort), "-c-1", "-s"},
		Dir:  req.BuildDir,
	}
	if err := s.replace(ctx, &s.server, serverSpec); err != nil {
		return s.warnLocked(ctx, buildPage, "Error starting local server. Unable to run web build.", err)
	}

	proxySpec := ProcessSpec{
		Path: tools.Runtime,
		Args: []string{proxyScript, strconv.Itoa(req.ProxyPort), req.ProxyTarget},
	}
	if err := s.replace(ctx, &s.proxy, proxySpec); err != nil {
		return s.warnLocked(ctx, buildPage, "Error starting websockify proxy server. Unable to run web build.", err)
	}

	url := req.URL()
	if err := s.host.OpenURL(url); err != nil {
		logger.Warn("Failed to open browser.", "url", url, "error", err)
		return Result{URL: url, Warning: fmt.Sprintf("Open %s manually: %v", url, err)}
	}
	logger.Info("🌐 Dev session running", "url", url, "proxy_port", req.ProxyPort, "proxy_target", req.ProxyTarget)
	return Result{URL: url}
}

// replace terminates the slot's previous process and starts spec in its
// place. On a start failure the slot is left empty.
func (s *Session) replace(ctx context.Context, sl *slot, spec ProcessSpec) error {
	_, logger := ctxlog.With(ctx, "slot", sl.name)

	if sl.proc != nil {
		logger.Debug("Terminating previous process.", "pid", sl.proc.Pid())
		if err := terminate(sl.proc); err != nil {
			logger.Warn("Failed to terminate previous process.", "pid", sl.proc.Pid(), "error", err)
		}
		sl.proc = nil
	}

	logger.Debug("Starting process.", "command", spec.String(), "dir", spec.Dir)
	proc, err := s.launcher.Start(spec)
	if err != nil {
		sl.proc = nil
		return err
	}
	sl.proc = proc
	logger.Debug("Process started.", "pid", proc.Pid())
	return nil
}

func (s *Session) warnLocked(ctx context.Context, buildPage, msg string, err error) Result {
	ctxlog.FromContext(ctx).Warn(msg, "error", err)
	s.reveal(ctx, buildPage)
	return Result{Warning: fmt.Sprintf("%s (%v)", msg, err)}
}

func (s *Session) warn(ctx context.Context, buildPage, msg string) Result {
	ctxlog.FromContext(ctx).Warn(msg)
	s.reveal(ctx, buildPage)
	return Result{Warning: msg}
}

func (s *Session) reveal(ctx context.Context, path string) {
	if err := s.host.Reveal(path); err != nil {
		ctxlog.FromContext(ctx).Debug("Failed to reveal build output.", "path", path, "error", err)
	}
}

// StopRunning terminates both processes, file server first, and clears the
// slots. Calling it on an idle session does nothing.
func (s *Session) StopRunning(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sl := range []*slot{&s.server, &s.proxy} {
		if sl.proc == nil {
			continue
		}
		if err := terminate(sl.proc); err != nil {
			logger.Debug("Ignoring terminate error.", "slot", sl.name, "error", err)
		}
		logger.Debug("Process stopped.", "slot", sl.name, "pid", sl.proc.Pid())
		sl.proc = nil
	}
}

// Status returns the current slot states.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		FileServer: s.server.state(),
		Proxy:      s.proxy.state(),
	}
	if st.FileServer != Absent {
		st.URL = s.lastReq.URL()
		st.ProxyPort = s.lastReq.ProxyPort
	}
	return st
}

func resolveProxyScript(req Request) (string, error) {
	if req.ProxyScript != "" {
		return filepath.Abs(req.ProxyScript)
	}
	return toolchain.FindProxyScript(req.AssetsRoot)
}
