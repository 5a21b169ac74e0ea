package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nanokern/kernel"
)

func init() {
	subcommands = append(subcommands, newTicksCmd())
}

// newTicksCmd demonstrates running the tick handler for a wall-clock
// duration and reporting the resulting counters.
func newTicksCmd() *cobra.Command {
	var msPerTick uint32
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "ticks",
		Short: "Run the real-time tick driver for a duration and report counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			k := kernel.New(kernelOptions(
				cmd,
				kernel.WithMsPerTick(msPerTick),
				kernel.WithSecondCounter(true),
				kernel.WithMicrosecondCounter(true),
			)...)

			ctx, cancel := context.WithTimeout(context.Background(), duration)
			defer cancel()

			_ = k.Start(ctx)

			fmt.Printf("ticks=%d ms=%d us=%d s=%d\n",
				k.Ticks(), k.Milliseconds(), k.Microseconds(), k.Seconds())
			return nil
		},
	}

	cmd.Flags().Uint32Var(&msPerTick, "ms-per-tick", 2, "tick cadence in milliseconds")
	cmd.Flags().DurationVar(&duration, "duration", time.Second, "how long to run before reporting")

	return cmd
}
