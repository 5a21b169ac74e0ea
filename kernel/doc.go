// Package kernel implements a small preemptive-capable cooperative
// scheduler for multiplexing independent tasks onto a single logical CPU.
//
// It models the machinery of a bare-metal single-core task kernel: an
// intrusive queue of task control blocks, a round-robin scheduler, a
// tick-driven sleep facility, and FIFO-handoff mutex/semaphore/mailbox
// primitives. In place of a hand-written assembly context switch, each
// Task owns a goroutine that blocks on a channel between dispatches, so
// the Go runtime's own stack management stands in for saving and
// restoring machine state.
package kernel
