package cli

import (
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/spf13/cobra"

	"nanokern/kernel"
)

// loggerFor builds a kernel.Logger from the --verbose persistent flag: JSON
// lines to stderr at debug level when set, otherwise the disabled default.
func loggerFor(cmd *cobra.Command) kernel.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return nil
	}
	return kernel.NewJSONLogger(logiface.LevelDebug, stumpy.WithWriter(os.Stderr))
}

// kernelOptions assembles the common options every demo subcommand applies,
// honoring --verbose and layering any scenario-specific options on top.
func kernelOptions(cmd *cobra.Command, extra ...kernel.Option) []kernel.Option {
	opts := extra
	if log := loggerFor(cmd); log != nil {
		opts = append(opts, kernel.WithLogger(log))
	}
	return opts
}
