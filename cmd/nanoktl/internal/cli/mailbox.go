//go:build nanokern_mailbox

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nanokern/kernel"
)

func init() {
	subcommands = append(subcommands, newMailboxCmd())
}

// newMailboxCmd demonstrates a producer task sending strings and a consumer
// task blocking on ReceiveMail.
func newMailboxCmd() *cobra.Command {
	var messages int

	cmd := &cobra.Command{
		Use:   "mailbox",
		Short: "Demonstrate a producer/consumer pair over a Mailbox[string]",
		RunE: func(cmd *cobra.Command, args []string) error {
			k := kernel.New(kernelOptions(cmd)...)
			mb := kernel.NewMailbox[string](2)

			done := make(chan struct{})

			_, err := k.Create(func(any) {
				for i := 0; i < messages; i++ {
					kernel.SendMail(k, mb, fmt.Sprintf("message %d", i))
					k.Yield()
				}
			}, nil)
			if err != nil {
				return err
			}

			_, err = k.Create(func(any) {
				for i := 0; i < messages; i++ {
					fmt.Println("received:", kernel.ReceiveMail(k, mb))
				}
				close(done)
			}, nil)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go k.Start(ctx)

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				return fmt.Errorf("mailbox demo timed out")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&messages, "messages", 5, "number of messages to send and receive")

	return cmd
}
