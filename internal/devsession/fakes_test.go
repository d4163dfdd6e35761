package devsession

import (
	"errors"
	"os"
	"sync"

	"github.com/needle-mirror/com.unity.platforms.web/internal/toolchain"
)

type fakeProcess struct {
	pid    int
	spec   ProcessSpec
	mu     sync.Mutex
	exited bool
	kills  int
}

func (p *fakeProcess) Pid() int { return p.pid }

func (p *fakeProcess) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exited {
		return os.ErrProcessDone
	}
	p.kills++
	p.exited = true
	return nil
}

func (p *fakeProcess) Wait() error { return nil }

func (p *fakeProcess) Exited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exited
}

func (p *fakeProcess) crash() {
	p.mu.Lock()
	p.exited = true
	p.mu.Unlock()
}

type fakeLauncher struct {
	procs []*fakeProcess
	// failOn makes Start fail for specs whose first argument equals it.
	failOn string
}

func (l *fakeLauncher) Start(spec ProcessSpec) (Process, error) {
	if l.failOn != "" && len(spec.Args) > 0 && spec.Args[0] == l.failOn {
		return nil, errors.New("exec: permission denied")
	}
	p := &fakeProcess{pid: 100 + len(l.procs), spec: spec}
	l.procs = append(l.procs, p)
	return p, nil
}

func (l *fakeLauncher) live() []*fakeProcess {
	var out []*fakeProcess
	for _, p := range l.procs {
		if !p.Exited() {
			out = append(out, p)
		}
	}
	return out
}

type fakeHost struct {
	opened   []string
	revealed []string
	openErr  error
}

func (h *fakeHost) OpenURL(url string) error {
	h.opened = append(h.opened, url)
	return h.openErr
}

func (h *fakeHost) Reveal(path string) error {
	h.revealed = append(h.revealed, path)
	return nil
}

type fakeRegistrar struct {
	hooks []func()
}

func (r *fakeRegistrar) OnShutdown(fn func()) {
	r.hooks = append(r.hooks, fn)
}

func (r *fakeRegistrar) fire() {
	for _, fn := range r.hooks {
		fn()
	}
}

type fakeTools struct {
	tools toolchain.DevTools
	err   error
}

func (f fakeTools) DevTools() (toolchain.DevTools, error) {
	return f.tools, f.err
}
