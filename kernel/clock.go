package kernel

import (
	"sync"
	"time"
)

// Clock abstracts the single hardware timer channel the tick handler rides
// on, as a small interface rather than depending directly on time.Ticker,
// so tests can drive it deterministically with ManualClock.
type Clock interface {
	// NewTicker starts a ticker firing every d. The returned Ticker must be
	// stopped by the caller once no longer needed.
	NewTicker(d time.Duration) Ticker
}

// Ticker is the minimal surface the tick driver needs from a timer.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// RealClock drives the tick handler from the host's real time.Ticker. This
// is the default Clock for a Kernel that does not override it.
type RealClock struct{}

func (RealClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// ManualClock is a test-only Clock: tickers it produces never fire on
// their own. Call Fire to deliver one tick to every outstanding ticker,
// simulating the hardware timer for deterministic tests. Safe for
// concurrent use, since NewTicker is typically called from the tick
// driver's own goroutine while Fire is called from the test goroutine.
type ManualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (m *ManualClock) NewTicker(time.Duration) Ticker {
	t := &manualTicker{c: make(chan time.Time, 1)}
	m.mu.Lock()
	m.tickers = append(m.tickers, t)
	m.mu.Unlock()
	return t
}

// Fire offers one synthetic tick to every ticker this clock has handed
// out that has not been stopped. A ticker still holding an earlier,
// unconsumed tick drops the new one, the way a hardware timer coalesces
// missed ticks.
func (m *ManualClock) Fire(at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := m.tickers[:0]
	for _, t := range m.tickers {
		if t.stopped {
			continue
		}
		select {
		case t.c <- at:
		default:
		}
		live = append(live, t)
	}
	m.tickers = live
}

func (m *ManualClock) tickerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickers)
}

type manualTicker struct {
	c       chan time.Time
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time { return t.c }
func (t *manualTicker) Stop()               { t.stopped = true }
