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
	subcommands = append(subcommands, newMutexCmd())
}

// newMutexCmd demonstrates a held mutex with two contended waiters,
// released in FIFO order.
func newMutexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutex",
		Short: "Demonstrate FIFO mutex handoff among three contending tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			k := kernel.New(kernelOptions(cmd)...)
			m := kernel.NewMutex()

			var mu sync.Mutex
			var wg sync.WaitGroup
			wg.Add(2)

			_, err := k.Create(func(any) {
				k.MutexLock(m)
				fmt.Println("A: acquired, yielding so B and C queue up")
				k.Yield()
				k.MutexUnlock(m)
				fmt.Println("A: released")
			}, nil)
			if err != nil {
				return err
			}

			for _, name := range []string{"B", "C"} {
				name := name
				_, err := k.Create(func(any) {
					defer wg.Done()
					k.MutexLock(m)
					mu.Lock()
					fmt.Printf("%s: acquired\n", name)
					mu.Unlock()
					k.MutexUnlock(m)
				}, nil)
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go k.Start(ctx)

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				return fmt.Errorf("mutex demo timed out")
			}
			return nil
		},
	}
	return cmd
}
