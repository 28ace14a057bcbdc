package process

// Notes:
// - KillProcessGroup: only tested with an invalid PID to verify it does not
//   panic. Real kill behavior is exercised by the runner cancellation test
//   in the root package.
// - Cannot test with PID 0 (kills the current process group) or real PIDs.

import (
	"os/exec"
	"testing"
)

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

func TestSetProcessGroup_SetsAttributes(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("true")
	SetProcessGroup(cmd)

	if cmd.SysProcAttr == nil {
		t.Fatal("SysProcAttr is nil after SetProcessGroup")
	}
}

func TestSetProcessGroup_PreservesExistingAttributes(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("true")
	SetProcessGroup(cmd)
	attr := cmd.SysProcAttr
	SetProcessGroup(cmd)

	if cmd.SysProcAttr != attr {
		t.Error("SetProcessGroup replaced an existing SysProcAttr")
	}
}
