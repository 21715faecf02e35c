//go:build unix

package ptysession

import (
	"os/exec"
	"syscall"
	"testing"
)

func TestSignalHelperIgnoresNonPositivePid(t *testing.T) {
	if err := SignalProcessGroupOrPid(0, syscall.SIGTERM, false); err != nil {
		t.Errorf("pid 0: %v", err)
	}
	if err := SignalProcessGroupOrPid(-1, syscall.SIGTERM, false); err != nil {
		t.Errorf("pid -1: %v", err)
	}
}

// reapedPid starts and fully reaps a child, yielding a pid that no longer
// exists (modulo pid reuse, which the kernel avoids short-term).
func reapedPid(t *testing.T) int {
	t.Helper()
	cmd := exec.Command("true")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	pid := cmd.Process.Pid
	cmd.Wait()
	return pid
}

func TestSignalHelperMissingPidIsOptionalError(t *testing.T) {
	pid := reapedPid(t)
	if err := SignalProcessGroupOrPid(pid, syscall.SIGTERM, true); err != nil {
		t.Errorf("missingOK=true should succeed for a gone pid: %v", err)
	}
	err := SignalProcessGroupOrPid(pid, syscall.SIGTERM, false)
	if err == nil {
		t.Fatal("missingOK=false should fail for a gone pid")
	}
	if got := err.Error(); got == "" {
		t.Error("error message empty")
	}
}

func TestSignalHelperReachesLiveChild(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := SignalProcessGroupOrPid(cmd.Process.Pid, syscall.SIGKILL, false); err != nil {
		t.Fatalf("signal live child: %v", err)
	}
	if err := cmd.Wait(); err == nil {
		t.Error("child should have died from SIGKILL")
	}
}
