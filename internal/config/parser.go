package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Separator is the literal token that splits the argument list into
// independent command groups.
const Separator = "---"

// Parse splits args (the raw argument list after the program name) into
// command groups and parses the role flags local to each group. pid is the
// supervisor's own process id, used to validate -a.
//
// Any error returned here is a fatal configuration error: the caller must
// print it and exit 1 before any process is created.
func Parse(args []string, pid int) (CommandSet, Options, error) {
	var opts Options

	if len(args) == 0 {
		return nil, opts, errors.New("please supply at least one command to run")
	}

	var cmds CommandSet
	rest := args
	for {
		sep := indexOf(rest, Separator)

		var span []string
		if sep == -1 {
			span, rest = rest, nil
		} else {
			span = rest[:sep]
			rest = rest[sep+1:]
			if len(rest) == 0 {
				return nil, opts, fmt.Errorf("a command must follow %q", Separator)
			}
		}

		cmd, err := parseGroup(span, &opts, pid)
		if err != nil {
			return nil, opts, err
		}
		cmds = append(cmds, cmd)

		if sep == -1 {
			return cmds, opts, nil
		}
	}
}

// parseGroup parses the leading role flags of one command span. Flags are
// scoped to the span: scanning stops at the first non-flag token so the
// command's own arguments are never interpreted.
func parseGroup(span []string, opts *Options, pid int) (*Command, error) {
	fs := pflag.NewFlagSet("command", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)

	all := fs.BoolP("all", "a", false, "signal every visible process at shutdown (pid 1 only)")
	configure := fs.BoolP("configure", "c", false, "run this command to completion before the others start")
	watch := fs.BoolP("watch", "f", false, "watch this command to decide when to shut down")

	if err := fs.Parse(span); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			err = errors.New("unknown flag: -h")
		}
		return nil, err
	}

	if *all {
		if pid != 1 {
			return nil, errors.New("-a can only be used from the init process (a process with pid 1)")
		}
		opts.SignalEverything = true
	}
	if *configure && *watch {
		return nil, errors.New("cannot use -c and -f together for a single command")
	}

	argv := fs.Args()
	if len(argv) == 0 {
		return nil, errors.New("each command group needs a program to run")
	}

	return &Command{
		// Owned copy: the command must not alias the raw argument list.
		Args:      append([]string(nil), argv...),
		Configure: *configure,
		Watch:     *watch,
	}, nil
}

func indexOf(args []string, tok string) int {
	for i, a := range args {
		if a == tok {
			return i
		}
	}
	return -1
}
