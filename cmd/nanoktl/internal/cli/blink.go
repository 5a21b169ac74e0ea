package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"nanokern/kernel"
)

func init() {
	subcommands = append(subcommands, newBlinkCmd())
}

// newBlinkCmd demonstrates N tasks each toggling a simulated LED on a
// fixed sleep period, round-robin scheduled.
func newBlinkCmd() *cobra.Command {
	var tasks int
	var periodMs uint32
	var toggles int

	cmd := &cobra.Command{
		Use:   "blink",
		Short: "Run N tasks each toggling a simulated LED on a sleep period",
		RunE: func(cmd *cobra.Command, args []string) error {
			k := kernel.New(kernelOptions(cmd, kernel.WithMsPerTick(2))...)

			var mu sync.Mutex
			var wg sync.WaitGroup
			wg.Add(tasks)

			for i := 0; i < tasks; i++ {
				id := i
				_, err := k.Create(func(any) {
					defer wg.Done()
					state := false
					for n := 0; n < toggles; n++ {
						state = !state
						mu.Lock()
						fmt.Printf("task %d: led=%v (toggle %d/%d)\n", id, state, n+1, toggles)
						mu.Unlock()
						k.Sleep(periodMs)
					}
				}, nil)
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()

			go k.Start(ctx)

			select {
			case <-done:
			case <-time.After(30 * time.Second):
				return fmt.Errorf("blink demo timed out")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&tasks, "tasks", 3, "number of blinking tasks")
	cmd.Flags().Uint32Var(&periodMs, "period-ms", 100, "sleep period between toggles, in milliseconds")
	cmd.Flags().IntVar(&toggles, "toggles", 4, "number of toggles per task before it exits")

	return cmd
}
