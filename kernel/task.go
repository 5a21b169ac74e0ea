package kernel

// TaskFunc is the body of a task. It is invoked once, on the task's first
// dispatch, with the argument given to Create.
type TaskFunc func(arg any)

// Task is a task control block. Its link fields thread it into exactly one
// taskList at a time; its resume/parked channels are the Go-native
// analogue of the saved stack pointer a bare-metal context switch would
// use.
type Task struct {
	prev, next *Task

	id       uint32
	fn       TaskFunc
	arg      any
	delay    uint32 // remaining ticks until wakeup; 0 means "not sleeping for time"
	wakeTick uint64 // tick count at which this task was last moved sleeping -> ready

	resume chan struct{} // scheduler -> task: "you are dispatched"
	parked chan struct{} // task -> scheduler: "I have relinquished the CPU"

	terminated bool
}

// ID returns the task's identifier, assigned in creation order starting at 1.
func (t *Task) ID() uint32 { return t.id }

// WakeTick returns the tick count at which this task was last woken from
// sleep, whether by delay expiry or an explicit Wakeup. It is only
// meaningful after the task has actually slept at least once.
func (t *Task) WakeTick() uint64 { return t.wakeTick }

// Terminated reports whether the task's fn has returned. A terminated task
// is never re-enqueued and can no longer be dispatched.
func (t *Task) Terminated() bool { return t.terminated }

// park is the push_context analogue: signal the scheduler that this task's
// goroutine has relinquished the CPU, then block until redispatched. The
// caller must have already performed any queue mutation (and released
// Kernel.mu) before calling park.
func (t *Task) park() {
	t.parked <- struct{}{}
	<-t.resume
}

// dispatch is the pop_context analogue: hand the CPU to t and block until
// it parks again (or terminates). The caller must not hold Kernel.mu.
func (t *Task) dispatch() {
	t.resume <- struct{}{}
	<-t.parked
}
