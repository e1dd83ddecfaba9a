// Package cli wires the recombination-detection core into the `rebar`
// command-line surface named in spec.md §6: `dataset list`, `dataset
// download`, and `run`, plus the global verbosity/threads flags,
// styled on cmd/cue/cmd's Command-wraps-cobra.Command pattern.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ktmeaton/rebar-sub000/internal/rbrlog"
)

// Command wraps a *cobra.Command the way cmd/cue/cmd.Command does,
// giving subcommands a typed handle back to the root without leaking
// cobra everywhere.
type Command struct {
	*cobra.Command
	root   *cobra.Command
	logger *rbrlog.Logger
}

// New builds the top-level `rebar` command tree.
func New() *Command {
	root := &cobra.Command{
		Use:           "rebar",
		Short:         "detect recombination in genomic sequences against a reference dataset",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	c := &Command{Command: root, root: root}
	addGlobalFlags(root.PersistentFlags())

	root.AddCommand(newDatasetCmd(c))
	root.AddCommand(newRunCmd(c))
	return c
}

// runFunction is a subcommand body that receives the already-resolved
// Command (with its logger installed) rather than a bare *cobra.Command,
// mirroring cmd/cue/cmd's mkRunE.
type runFunction func(c *Command, args []string) error

// mkRunE rebinds c's embedded *cobra.Command to the subcommand cobra is
// actually executing (so c.Flags() sees that subcommand's own flags,
// not the root's) and installs a verbosity-configured logger before
// invoking f, matching cmd/cue/cmd's mkRunE's `c.Command = cmd` step.
func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		level := rbrlog.Level(flagVerbosity.String(cmd.Flags()))
		c.logger = rbrlog.New(os.Stderr, level)
		return f(c, args)
	}
}

// Main runs the rebar tool and returns the process exit code.
func Main() int {
	c := New()
	if err := c.root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rebar:", err)
		return 1
	}
	return 0
}
