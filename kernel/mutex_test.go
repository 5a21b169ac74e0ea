package kernel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestMutexMutualExclusion checks that at no wall-clock instant have two
// tasks both returned from MutexLock without an intervening MutexUnlock.
// Each of N tasks repeatedly locks, bumps a non-atomic counter by a
// read-modify-write that would be visibly racy under concurrent entry, then
// unlocks.
func TestMutexMutualExclusion(t *testing.T) {
	const n = 5
	const iterations = 50

	k := New(WithClock(&ManualClock{}))
	m := NewMutex()

	var unguarded int
	var inCritical int32
	var violated bool
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		_, err := k.Create(func(any) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				k.MutexLock(m)
				if inCritical != 0 {
					violated = true
				}
				inCritical++
				cur := unguarded
				k.Yield() // give a concurrent holder its best chance to interleave
				unguarded = cur + 1
				inCritical--
				k.MutexUnlock(m)
			}
		}, nil)
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go k.Start(ctx)
	defer cancel()

	wg.Wait()

	require.False(t, violated, "two tasks observed the critical section simultaneously")
	require.Equal(t, n*iterations, unguarded)
	require.False(t, m.locked)
	require.True(t, m.waiters.empty())
}

// TestMutexUseWithoutNewMutexPanics checks the documented
// programmer-error contract: locking an uninitialized Mutex panics.
func TestMutexUseWithoutNewMutexPanics(t *testing.T) {
	var m Mutex
	k := New(WithClock(&ManualClock{}))

	require.Panics(t, func() {
		k.MutexLock(&m)
	})
}

// TestMutexSingleWaiterWakesPromptly is a smoke test for the non-contended
// and singly-contended paths, bounding wall time so a deadlock fails fast
// rather than hanging the suite.
func TestMutexSingleWaiterWakesPromptly(t *testing.T) {
	k := New(WithClock(&ManualClock{}))
	m := NewMutex()

	done := make(chan struct{})

	_, err := k.Create(func(any) {
		k.MutexLock(m)
		k.Yield()
		k.MutexUnlock(m)
	}, nil)
	require.NoError(t, err)

	_, err = k.Create(func(any) {
		k.MutexLock(m)
		k.MutexUnlock(m)
		close(done)
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go k.Start(ctx)
	defer cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second task never acquired the mutex")
	}
}
