//go:build nanokern_semaphore

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
	subcommands = append(subcommands, newSemaphoreCmd())
}

// newSemaphoreCmd demonstrates two tasks blocking on SemaphoreWait, released
// FIFO by two posts from a third task.
func newSemaphoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semaphore",
		Short: "Demonstrate FIFO wakeup of two tasks blocked on a Semaphore",
		RunE: func(cmd *cobra.Command, args []string) error {
			k := kernel.New(kernelOptions(cmd)...)
			s := kernel.NewSemaphore(0)

			var mu sync.Mutex
			var wg sync.WaitGroup
			wg.Add(2)

			for _, name := range []string{"B", "C"} {
				name := name
				_, err := k.Create(func(any) {
					defer wg.Done()
					k.SemaphoreWait(s)
					mu.Lock()
					fmt.Printf("%s: woken\n", name)
					mu.Unlock()
				}, nil)
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go k.Start(ctx)

			time.Sleep(20 * time.Millisecond) // let B and C both block
			k.SemaphorePost(s)
			k.SemaphorePost(s)

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				return fmt.Errorf("semaphore demo timed out")
			}
			return nil
		},
	}
	return cmd
}
