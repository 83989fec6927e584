package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"baron.dev/internal/config"
	"baron.dev/internal/supervisor"
	"baron.dev/internal/trace"
)

const longHelp = `baron launches one or more commands, split by a literal ` + "`---`" + ` token, and
supervises them as pid 1 of a process namespace: it reaps every descendant,
waits for the watched commands to exit, then terminates whatever is left.

Flags are scoped to the command group they precede:
  -c, --configure   run this command to completion before the others start
  -f, --watch       watch this command to decide when to shut down
                    (if no command is watched, every non-configure command is)
  -a, --all         signal every visible process at shutdown instead of the
                    process group; requires running as pid 1

The exit code is 0 if every watched command exited 0, otherwise the status
of the first watched command, by declaration order, that exited nonzero.

Examples:
  baron -c ./migrate --- -f ./server --- ./log-shipper
  baron -a nginx -g 'daemon off;'`

func newRootCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "baron [-a] [-c|-f] command [args...] [--- [-c|-f] command [args...]]...",
		Short: "Minimal pid-1 process supervisor",
		Long:  longHelp,
		// Flags belong to the command groups, not to baron itself; the
		// tokenizer scans each group with its own flag set.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only the very first argument may address baron; anything
			// later belongs to a child command.
			if len(args) > 0 {
				switch args[0] {
				case "--help", "-h":
					return cmd.Help()
				case "--version":
					fmt.Fprintf(cmd.OutOrStdout(), "baron %s\n", version)
					return nil
				}
			}
			return run(args)
		},
	}
}

func run(args []string) error {
	cmds, opts, err := config.Parse(args, os.Getpid())
	if err != nil {
		return err
	}

	sup := supervisor.New(cmds, cmds.Watched(), opts, trace.New())
	if code := sup.Run(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}
