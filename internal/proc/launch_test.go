package proc

import (
	"testing"

	"baron.dev/internal/config"
)

func TestLaunchAndReap(t *testing.T) {
	cmd := &config.Command{Args: []string{"sh", "-c", "exit 7"}}
	if err := Launch(cmd); err != nil {
		t.Fatalf("failed to launch: %v", err)
	}
	if cmd.PID <= 0 {
		t.Fatalf("expected pid to be recorded, got %d", cmd.PID)
	}

	for {
		pid, status, err := WaitAny()
		if err != nil {
			t.Fatalf("WaitAny: %v", err)
		}
		if pid != cmd.PID {
			continue
		}
		if !status.Exited() || status.ExitStatus() != 7 {
			t.Errorf("expected exit status 7, got %v", status)
		}
		break
	}
}

func TestLaunchMissingProgram(t *testing.T) {
	cmd := &config.Command{Args: []string{"definitely-not-a-real-program-4b1d"}}
	if err := Launch(cmd); err == nil {
		t.Fatal("expected an error launching a nonexistent program")
	}
	if cmd.PID != 0 {
		t.Errorf("pid must stay zero on launch failure, got %d", cmd.PID)
	}
}
