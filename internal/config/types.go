package config

// Command is one launchable unit parsed from a command group.
type Command struct {
	// Args is the program and its arguments, execvp-style. Never empty.
	// It is an owned copy and never aliases the raw argument list.
	Args []string

	// Configure marks a one-shot setup command that runs to completion
	// before any other command is launched (see -c). Never watched.
	Configure bool

	// Watch marks a command whose exit contributes to the shutdown
	// decision and to the final exit code (see -f).
	Watch bool

	// PID is set exactly once by the launcher and read-only afterward.
	// Zero means the command was never successfully launched.
	PID int
}

// CommandSet is the ordered list of commands for the supervisor's lifetime.
// Order is significant: exit-status tie-breaking uses declaration order.
type CommandSet []*Command

// Options holds supervisor-wide settings parsed from the command line.
type Options struct {
	// SignalEverything makes the shutdown broadcast target every process
	// visible to the supervisor instead of its own process group (see -a).
	// Only permitted when the supervisor runs as pid 1.
	SignalEverything bool
}

// Watched returns the ordered sub-sequence of commands to monitor. If the
// operator flagged no command with -f, every non-configure command is
// implicitly watched. The result references entries of cs, it does not copy.
func (cs CommandSet) Watched() []*Command {
	var watched []*Command
	for _, c := range cs {
		if c.Watch {
			watched = append(watched, c)
		}
	}
	if len(watched) > 0 {
		return watched
	}
	for _, c := range cs {
		if !c.Configure {
			watched = append(watched, c)
		}
	}
	return watched
}
