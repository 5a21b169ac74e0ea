package kernel

import (
	"context"
	"time"
)

// runTickDriver drives the tick handler from cfg.clock at cfg.msPerTick
// cadence until ctx is cancelled. It plays the role of the periodic
// hardware timer wired to the single output-compare ISR vector.
func (k *Kernel) runTickDriver(ctx context.Context) {
	period := time.Duration(k.cfg.msPerTick) * time.Millisecond
	ticker := k.cfg.clock.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C():
			k.tick(t)
		}
	}
}

// tick is the ISR body: advance counters, sweep the sleeping queue for
// expired delays, and mark the cooperative preemption checkpoint. All
// queue mutation happens under mu, matching the discipline that any code
// touching a taskList - task context or tick driver alike - must hold it.
func (k *Kernel) tick(_ time.Time) {
	k.mu.Lock()

	k.ticks++
	if k.cfg.countMilliseconds {
		k.milliseconds += uint64(k.cfg.msPerTick)
	}
	if k.cfg.countMicroseconds {
		k.microseconds += uint64(k.cfg.msPerTick) * 1000
	}
	if k.cfg.countSeconds {
		k.tickAccumMillis += uint64(k.cfg.msPerTick)
		for k.tickAccumMillis >= 1000 {
			k.tickAccumMillis -= 1000
			k.seconds++
		}
	}

	var woken []*Task
	k.sleeping.forEach(func(t *Task) bool {
		if t.delay > 0 {
			t.delay--
		}
		if t.delay == 0 {
			woken = append(woken, t)
		}
		return true
	})
	for _, t := range woken {
		t.wakeTick = k.ticks
		removeTask(t)
		k.ready.insertTail(t)
	}

	k.preemptRequested = true

	k.mu.Unlock()

	// A tick always wakes an idling scheduler, whether or not it produced
	// a runnable task - matching "sleep CPU; wait for a tick or other ISR."
	k.notifyReady()
}

// Ticks returns the total number of ticks delivered so far.
func (k *Kernel) Ticks() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.ticks
}

// Milliseconds returns the millisecond accumulator, valid when the
// millisecond counter is enabled (the default).
func (k *Kernel) Milliseconds() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.milliseconds
}

// Microseconds returns the microsecond accumulator, valid only when
// WithMicrosecondCounter(true) was supplied.
func (k *Kernel) Microseconds() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.microseconds
}

// Seconds returns the whole-second accumulator, valid only when
// WithSecondCounter(true) was supplied.
func (k *Kernel) Seconds() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.seconds
}

