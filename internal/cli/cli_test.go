package cli

import "testing"

// Every configuration error must yield exit code 1 before any process is
// created. These run in-process: no command is ever launched.
func TestExecuteConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no commands", nil},
		{"dangling separator", []string{"sleep", "5", "---"}},
		{"conflicting roles", []string{"-c", "-f", "setup"}},
		{"all without init identity", []string{"-a", "server"}},
		{"unknown flag", []string{"-z", "server"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := Execute("test", tt.args); code != 1 {
				t.Errorf("Execute(%v) = %d, want 1", tt.args, code)
			}
		})
	}
}

func TestExecuteHelp(t *testing.T) {
	if code := Execute("test", []string{"--help"}); code != 0 {
		t.Errorf("Execute(--help) = %d, want 0", code)
	}
	if code := Execute("test", []string{"--version"}); code != 0 {
		t.Errorf("Execute(--version) = %d, want 0", code)
	}
}
