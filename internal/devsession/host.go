package devsession

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Host is the desktop environment the session reports to.
type Host interface {
	OpenURL(url string) error
	Reveal(path string) error
}

// ShutdownRegistrar runs registered hooks when the host application exits.
type ShutdownRegistrar interface {
	OnShutdown(fn func())
}

// opener is a platform command taking one argument.
type opener struct {
	open   []string
	reveal []string
}

var openers = map[string]opener{
	"darwin":  {open: []string{"open"}, reveal: []string{"open", "-R"}},
	"windows": {open: []string{"rundll32", "url.dll,FileProtocolHandler"}, reveal: []string{"explorer", "/select,"}},
	"linux":   {open: []string{"xdg-open"}, reveal: []string{"xdg-open"}},
}

// DesktopHost opens URLs and reveals files with the platform's default
// handlers.
type DesktopHost struct {
	launcher Launcher
	opener   opener
}

// NewDesktopHost returns a host for the running OS.
func NewDesktopHost(l Launcher) (*DesktopHost, error) {
	o, ok := openers[runtime.GOOS]
	if !ok {
		return nil, fmt.Errorf("no desktop integration for %s", runtime.GOOS)
	}
	return &DesktopHost{launcher: l, opener: o}, nil
}

// OpenURL opens url in the default browser.
func (h *DesktopHost) OpenURL(url string) error {
	return h.run(h.opener.open, url)
}

// Reveal shows path in the file browser. On Linux the containing directory
// is opened since there is no portable select-file verb.
func (h *DesktopHost) Reveal(path string) error {
	if runtime.GOOS == "linux" {
		path = filepath.Dir(path)
	}
	return h.run(h.opener.reveal, path)
}

func (h *DesktopHost) run(argv []string, arg string) error {
	args := append(append([]string(nil), argv[1:]...), arg)
	if _, err := h.launcher.Start(ProcessSpec{Path: argv[0], Args: args}); err != nil {
		return err
	}
	return nil
}
