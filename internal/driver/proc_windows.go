//go:build windows

package driver

import "os/exec"

// setProcessGroup is a no-op on Windows: there is no process group to
// signal, so the default Cancel (kill the direct child) applies and
// WaitDelay alone unblocks Wait if a descendant keeps the pipes open.
func setProcessGroup(cmd *exec.Cmd) {}
