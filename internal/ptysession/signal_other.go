//go:build !unix

package ptysession

import "syscall"

// SignalProcessGroupOrPid is a no-op on platforms without process groups.
func SignalProcessGroupOrPid(pid int, sig syscall.Signal, missingOK bool) error {
	return nil
}
