package kernel

import (
	"context"
	"sync"
)

// Kernel holds all of the scheduler's global state: the ready/sleeping/
// suspended queues, the currently dispatched task, tick counters, and
// configuration. Every field is guarded by mu except where noted: a
// single-core, no-SMP kernel needs nothing more than one mutex to stand in
// for disabling interrupts around queue mutation.
type Kernel struct {
	cfg Config

	mu        sync.Mutex
	ready     taskList
	sleeping  taskList
	suspended taskList
	current   *Task
	nextID    uint32
	taskCount uint32
	started   bool

	preemptRequested bool

	ticks             uint64
	seconds           uint64
	milliseconds      uint64
	microseconds      uint64
	tickAccumMillis   uint64 // fractional millisecond carry toward seconds

	wake chan struct{} // buffered(1): idle() blocks on this, any ready-producing event signals it
}

// New constructs a Kernel. It is the runtime analogue of task_init(): all
// queues are initialized and configuration is applied, but nothing runs
// until Start is called.
func New(opts ...Option) *Kernel {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	k := &Kernel{
		cfg:  cfg,
		wake: make(chan struct{}, 1),
	}
	k.ready.init()
	k.sleeping.init()
	k.suspended.init()
	return k
}

// Current returns the TCB of the task presently dispatched, or nil if no
// task is dispatched (before Start, between dispatches, or while idling).
// The result does not depend on which goroutine calls it.
func (k *Kernel) Current() *Task {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current
}

// Create allocates a new task and appends it to the ready queue. It must
// be called before Start; calling it afterward is a programmer error and
// panics, since the kernel does not check at runtime whether the scheduler
// loop is already consuming the ready queue from another goroutine.
func (k *Kernel) Create(fn TaskFunc, arg any) (*Task, error) {
	if fn == nil {
		panic("nanokern: Create requires a non-nil TaskFunc")
	}

	k.mu.Lock()
	if k.started {
		k.mu.Unlock()
		panic("nanokern: Create called after Start")
	}
	if k.cfg.maxTasks != 0 && k.taskCount >= k.cfg.maxTasks {
		k.mu.Unlock()
		k.cfg.log.Err().Uint64("maxTasks", uint64(k.cfg.maxTasks)).Log("task limit exceeded")
		return nil, ErrTaskLimitExceeded
	}
	k.nextID++
	id := k.nextID
	k.taskCount++

	t := &Task{
		id:     id,
		fn:     fn,
		arg:    arg,
		resume: make(chan struct{}),
		parked: make(chan struct{}),
	}
	k.ready.insertTail(t)
	k.mu.Unlock()

	k.cfg.log.Debug().Uint64("taskID", uint64(id)).Log("task created")

	go k.runTask(t)

	return t, nil
}

// runTask is the body of the goroutine backing t. It blocks immediately on
// t.resume - the Go-native equivalent of "initialize the stack image so a
// context-pop jumps to fn" - and only runs fn once actually dispatched.
func (k *Kernel) runTask(t *Task) {
	<-t.resume
	t.fn(t.arg)

	k.mu.Lock()
	t.terminated = true
	removeTask(t)
	k.mu.Unlock()

	k.cfg.log.Debug().Uint64("taskID", uint64(t.id)).Log("task function returned; task terminated")

	t.parked <- struct{}{}
}

// notifyReady wakes an idling scheduler. Safe to call with or without mu
// held by the caller (it never blocks: the channel is buffered(1) and a
// pending wake is coalesced with any other, exactly as a single tick
// output-compare vector coalesces rather than queues).
func (k *Kernel) notifyReady() {
	select {
	case k.wake <- struct{}{}:
	default:
	}
}

// Start arms the tick driver and runs the scheduler loop on the calling
// goroutine. It does not return until ctx is cancelled; ctx cancellation is
// purely a host-simulator shutdown convenience and has no bearing on
// individual task scheduling semantics.
func (k *Kernel) Start(ctx context.Context) error {
	k.mu.Lock()
	if k.started {
		k.mu.Unlock()
		panic("nanokern: Start called twice")
	}
	k.started = true
	k.mu.Unlock()

	k.cfg.log.Info().Uint64("msPerTick", uint64(k.cfg.msPerTick)).Log("kernel starting")

	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		k.runTickDriver(ctx)
	}()

	err := k.schedulerLoop(ctx)

	<-tickerDone
	return err
}

func (k *Kernel) schedulerLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		k.mu.Lock()
		t := k.ready.first()
		if t == nil {
			k.mu.Unlock()
			select {
			case <-k.wake:
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		k.current = t
		k.ready.rotate(t)
		k.preemptRequested = false
		k.mu.Unlock()

		t.dispatch()

		k.mu.Lock()
		k.current = nil
		k.mu.Unlock()
	}
}

// mustCurrentLocked returns the currently dispatched task. k.mu must be
// held by the caller. Calling a current-task-relative operation with no
// current task (e.g. from the tick driver) is a programmer error.
func (k *Kernel) mustCurrentLocked() *Task {
	if k.current == nil {
		panic("nanokern: operation requires a current task, but none is dispatched")
	}
	return k.current
}

// Yield voluntarily releases the CPU. The current task remains in the
// ready queue; round-robin rotation already performed at dispatch time
// means a different ready task (if any) is picked next.
func (k *Kernel) Yield() {
	k.mu.Lock()
	t := k.mustCurrentLocked()
	k.mu.Unlock()

	t.park()
}

// Checkpoint is an opt-in cooperative preemption safepoint: a task spinning
// in a tight loop can call it to honor a tick-driven preemption request it
// would otherwise never notice, since nothing can interrupt arbitrary
// running Go code at an arbitrary instruction boundary the way a real
// hardware timer interrupt can.
func (k *Kernel) Checkpoint() {
	k.mu.Lock()
	requested := k.preemptRequested
	t := k.mustCurrentLocked()
	k.mu.Unlock()

	if requested {
		t.park()
	}
}

// Suspend atomically removes the current task from its current queue,
// appends it to q (the kernel's suspended queue if q is nil), then parks.
// On wakeup, execution resumes at the statement after the Suspend call.
func (k *Kernel) Suspend(q *taskList) {
	k.mu.Lock()
	t := k.mustCurrentLocked()
	if q == nil {
		q = &k.suspended
	}
	removeTask(t)
	q.insertTail(t)
	k.mu.Unlock()

	t.park()
}

// Sleep blocks the current task for at least ceil(ms / MsPerTick) ticks.
func (k *Kernel) Sleep(ms uint32) {
	k.mu.Lock()
	t := k.mustCurrentLocked()
	t.delay = ceilDiv(ms, k.cfg.msPerTick)
	removeTask(t)
	k.sleeping.insertTail(t)
	k.mu.Unlock()

	t.park()
}

func ceilDiv(a, b uint32) uint32 {
	return (a + b - 1) / b
}

// Wakeup moves t from its current (non-ready) queue to the ready queue. It
// does not yield; the caller chooses whether to reschedule. Safe to call
// from a task's own context or from the tick driver.
func (k *Kernel) Wakeup(t *Task) {
	k.mu.Lock()
	if t.terminated {
		k.mu.Unlock()
		panic("nanokern: Wakeup called on a terminated task")
	}
	removeTask(t)
	t.delay = 0
	t.wakeTick = k.ticks
	k.ready.insertTail(t)
	k.mu.Unlock()

	k.cfg.log.Trace().Uint64("taskID", uint64(t.id)).Log("task woken")
	k.notifyReady()
}
