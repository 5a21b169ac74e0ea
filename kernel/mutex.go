package kernel

// Mutex is a non-recursive binary lock with FIFO waiter handoff: releasing
// a contended mutex passes ownership directly to the longest-waiting task
// without clearing and re-acquiring the locked bit, avoiding a drop/
// reacquire race. It does not track ownership - unlocking from a task that
// did not lock is a programmer error the kernel cannot detect.
type Mutex struct {
	initialized bool
	locked      bool
	waiters     taskList
}

// NewMutex returns an initialized, unlocked Mutex.
func NewMutex() *Mutex {
	m := &Mutex{}
	m.waiters.init()
	m.initialized = true
	return m
}

func (m *Mutex) requireInit() {
	if !m.initialized {
		panic("nanokern: use of a Mutex that was not created via NewMutex")
	}
}

// MutexLock acquires m, blocking if it is already held. On contention the
// current task moves from ready to m's waiter queue and parks; it is woken
// directly holding the lock once MutexUnlock hands it off.
func (k *Kernel) MutexLock(m *Mutex) {
	m.requireInit()

	k.mu.Lock()
	if m.locked {
		t := k.mustCurrentLocked()
		removeTask(t)
		m.waiters.insertTail(t)
		k.mu.Unlock()

		t.park()
		return
	}
	m.locked = true
	k.mu.Unlock()
}

// MutexUnlock releases m. If a task is waiting, the lock remains held and
// ownership passes directly to the longest-waiting task; otherwise m
// becomes unlocked.
func (k *Kernel) MutexUnlock(m *Mutex) {
	m.requireInit()

	k.mu.Lock()
	if t := m.waiters.first(); t != nil {
		removeTask(t)
		k.ready.insertTail(t)
		k.mu.Unlock()

		k.cfg.log.Trace().Uint64("taskID", uint64(t.id)).Log("mutex handed off")
		k.notifyReady()
		return
	}
	m.locked = false
	k.mu.Unlock()
}
