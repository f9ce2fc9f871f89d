//go:build unix

package driver

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts the child in its own process group and cancels it
// by signalling the whole group. Tools like adb fork descendants (the adb
// server daemon) that inherit the output pipes; killing only the direct
// child would leave those descendants holding the pipes open.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
