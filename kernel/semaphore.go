//go:build nanokern_semaphore

package kernel

// Semaphore is a counting semaphore built as a thin wrapper over the same
// waiter-queue pattern Mutex uses. Post never assumes a waiter is present
// just because value transitioned from non-positive: it only wakes a task
// if one is actually queued, so a post with nobody waiting is just a
// counter increment rather than a crash.
type Semaphore struct {
	initialized bool
	value       int32
	waiters     taskList
}

// NewSemaphore returns an initialized Semaphore with the given starting
// value.
func NewSemaphore(value int32) *Semaphore {
	s := &Semaphore{value: value}
	s.waiters.init()
	s.initialized = true
	return s
}

func (s *Semaphore) requireInit() {
	if !s.initialized {
		panic("nanokern: use of a Semaphore that was not created via NewSemaphore")
	}
}

// SemaphorePost increments the semaphore's value, waking the longest-
// waiting task if one is actually queued. A post with no waiter present is
// simply a counter increment, never a crash.
func (k *Kernel) SemaphorePost(s *Semaphore) {
	s.requireInit()

	k.mu.Lock()
	s.value++
	if t := s.waiters.first(); s.value <= 0 && t != nil {
		removeTask(t)
		k.ready.insertTail(t)
		k.mu.Unlock()

		k.notifyReady()
		return
	}
	k.mu.Unlock()
}

// SemaphoreWait decrements the semaphore's value; if it goes negative, the
// current task moves to s's waiter queue and parks until a matching Post.
func (k *Kernel) SemaphoreWait(s *Semaphore) {
	s.requireInit()

	k.mu.Lock()
	s.value--
	if s.value < 0 {
		t := k.mustCurrentLocked()
		removeTask(t)
		s.waiters.insertTail(t)
		k.mu.Unlock()

		t.park()
		return
	}
	k.mu.Unlock()
}
