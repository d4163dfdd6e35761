//go:build !windows

package devsession

import "os/exec"

func hideWindow(cmd *exec.Cmd) {}
