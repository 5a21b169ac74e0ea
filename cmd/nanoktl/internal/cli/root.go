// Package cli wires nanoktl's subcommands, in the cue-lang-cue cmd/cue
// style of a NewRootCmd constructor assembling one *cobra.Command per
// subcommand via AddCommand. Subcommands gated behind a kernel build tag
// (mailbox, semaphore) register themselves into subcommands via their own
// tag-matched init func, so this file never needs to know which optional
// primitives were compiled in.
package cli

import (
	"github.com/spf13/cobra"
)

// subcommands accumulates every registered demo subcommand. Each demo file
// appends to it from an init func, so the set compiled in always matches
// the kernel build tags this binary was built with.
var subcommands []*cobra.Command

// NewRootCmd builds the nanoktl root command and all of its subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nanoktl",
		Short: "Run nanokern's scripted demo scenarios against a host simulator",

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().Bool("verbose", false, "log kernel lifecycle and scheduling events as JSON")

	root.AddCommand(subcommands...)

	return root
}
