//go:build nanokern_mailbox

package kernel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestMailboxSendThenReceive covers the non-blocking path: a message sent
// before anyone receives is simply buffered.
func TestMailboxSendThenReceive(t *testing.T) {
	k := New(WithClock(&ManualClock{}))
	m := NewMailbox[string](4)

	SendMail(k, m, "hello")

	got := make(chan string, 1)
	_, err := k.Create(func(any) {
		got <- ReceiveMail(k, m)
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go k.Start(ctx)
	defer cancel()

	select {
	case v := <-got:
		require.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("receive never completed")
	}
}

// TestMailboxBlockingReceiveWakesOnSend covers the blocking path: a task
// calling ReceiveMail on an empty mailbox parks until a send arrives.
func TestMailboxBlockingReceiveWakesOnSend(t *testing.T) {
	k := New(WithClock(&ManualClock{}))
	m := NewMailbox[int](4)

	got := make(chan int, 1)
	_, err := k.Create(func(any) {
		got <- ReceiveMail(k, m)
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go k.Start(ctx)
	defer cancel()

	require.Eventually(t, func() bool {
		return !m.waiters.empty()
	}, time.Second, time.Millisecond, "receiver never blocked")

	SendMail(k, m, 42)

	select {
	case v := <-got:
		require.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("receive never woke after send")
	}
}

// TestMailboxOrdering verifies FIFO delivery across multiple buffered sends.
func TestMailboxOrdering(t *testing.T) {
	k := New(WithClock(&ManualClock{}))
	m := NewMailbox[int](8)

	for i := 1; i <= 5; i++ {
		SendMail(k, m, i)
	}

	var received []int
	done := make(chan struct{})
	_, err := k.Create(func(any) {
		for i := 0; i < 5; i++ {
			received = append(received, ReceiveMail(k, m))
		}
		close(done)
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go k.Start(ctx)
	defer cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("receiver never drained the mailbox")
	}
	require.Equal(t, []int{1, 2, 3, 4, 5}, received)
}

// TestMailboxOverwritesOldestWhenFull matches the source's ring-buffer
// semantics: sending to a full mailbox overwrites the oldest unread
// message rather than blocking the sender.
func TestMailboxOverwritesOldestWhenFull(t *testing.T) {
	k := New(WithClock(&ManualClock{}))
	m := NewMailbox[int](3)

	SendMail(k, m, 1)
	SendMail(k, m, 2)
	SendMail(k, m, 3)
	SendMail(k, m, 4) // overwrites 1

	var received []int
	done := make(chan struct{})
	_, err := k.Create(func(any) {
		for i := 0; i < 3; i++ {
			received = append(received, ReceiveMail(k, m))
		}
		close(done)
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go k.Start(ctx)
	defer cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("receiver never drained the mailbox")
	}
	require.Equal(t, []int{2, 3, 4}, received)
}
