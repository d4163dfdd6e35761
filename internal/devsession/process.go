package devsession

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// ProcessSpec describes a process to start. Arguments are passed directly
// to the executable, never through a shell.
type ProcessSpec struct {
	Path string
	Args []string
	// Dir is the working directory; empty keeps the caller's.
	Dir string
}

func (s ProcessSpec) String() string {
	return exec.Command(s.Path, s.Args...).String()
}

// Process is a started external process.
type Process interface {
	Pid() int
	// Kill requests termination. Killing a process that already exited
	// returns os.ErrProcessDone.
	Kill() error
	// Wait blocks until the process exited.
	Wait() error
	Exited() bool
}

// Launcher starts processes.
type Launcher interface {
	Start(spec ProcessSpec) (Process, error)
}

// ExecLauncher starts real processes with os/exec. Windows processes get no
// console window.
type ExecLauncher struct{}

// Start implements Launcher.
func (ExecLauncher) Start(spec ProcessSpec) (Process, error) {
	cmd := exec.Command(spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	hideWindow(cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", spec.Path, err)
	}
	p := &execProcess{cmd: cmd, done: make(chan struct{})}
	go p.reap()
	return p, nil
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu      sync.Mutex
	waitErr error
}

func (p *execProcess) reap() {
	err := p.cmd.Wait()
	p.mu.Lock()
	p.waitErr = err
	p.mu.Unlock()
	close(p.done)
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Kill() error {
	if p.Exited() {
		return os.ErrProcessDone
	}
	return p.cmd.Process.Kill()
}

func (p *execProcess) Wait() error {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waitErr
}

func (p *execProcess) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// terminate kills p and waits for it to exit. A process that already exited
// is not an error; neither is the non-zero exit status caused by the kill.
func terminate(p Process) error {
	if p == nil || p.Exited() {
		return nil
	}
	if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	_ = p.Wait()
	return nil
}
