//go:build unix

package ptysession

import (
	"fmt"
	"os"
	"syscall"
)

// SignalProcessGroupOrPid sends sig to the process group first, then falls
// back to the direct pid. The PTY child is a session leader, so signaling
// -pid reaches its descendants too. missingOK controls whether a vanished
// pid (ESRCH) counts as success — normal shutdown sets it, targeted
// signaling does not.
func SignalProcessGroupOrPid(pid int, sig syscall.Signal, missingOK bool) error {
	if pid <= 0 {
		return nil
	}

	groupErr := syscall.Kill(-pid, sig)
	if groupErr == nil {
		return nil
	}
	pidErr := syscall.Kill(pid, sig)
	if pidErr == nil {
		return nil
	}
	if missingOK && (isNoSuchProcess(groupErr) || isNoSuchProcess(pidErr)) {
		return nil
	}
	return &os.SyscallError{
		Syscall: "kill",
		Err: fmt.Errorf("group(-%d) signal failed: %v; pid(%d) signal failed: %v",
			pid, groupErr, pid, pidErr),
	}
}

func isNoSuchProcess(err error) bool {
	return err == syscall.ESRCH
}
