package kernel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func idsOf(l *taskList) []uint32 {
	var ids []uint32
	l.forEach(func(t *Task) bool {
		ids = append(ids, t.id)
		return true
	})
	return ids
}

func TestTaskListEmptyAndInit(t *testing.T) {
	var l taskList
	l.init()
	require.True(t, l.empty())
	require.Nil(t, l.first())
}

func TestTaskListInsertTailOrder(t *testing.T) {
	var l taskList
	l.init()

	a := &Task{id: 1}
	b := &Task{id: 2}
	c := &Task{id: 3}

	l.insertTail(a)
	l.insertTail(b)
	l.insertTail(c)

	require.False(t, l.empty())
	require.Equal(t, a, l.first())
	require.Equal(t, []uint32{1, 2, 3}, idsOf(&l))
}

func TestTaskListRemoveMiddle(t *testing.T) {
	var l taskList
	l.init()

	a := &Task{id: 1}
	b := &Task{id: 2}
	c := &Task{id: 3}
	l.insertTail(a)
	l.insertTail(b)
	l.insertTail(c)

	removeTask(b)

	require.Equal(t, []uint32{1, 3}, idsOf(&l))
	require.Nil(t, b.prev)
	require.Nil(t, b.next)
}

func TestTaskListRotateMakesNodeLogicalTail(t *testing.T) {
	var l taskList
	l.init()

	a := &Task{id: 1}
	b := &Task{id: 2}
	c := &Task{id: 3}
	l.insertTail(a)
	l.insertTail(b)
	l.insertTail(c)

	l.rotate(a)

	require.Equal(t, []uint32{2, 3, 1}, idsOf(&l))
	require.Equal(t, b, l.first())
}

func TestTaskListForEachCanStopEarly(t *testing.T) {
	var l taskList
	l.init()
	for i := uint32(1); i <= 5; i++ {
		l.insertTail(&Task{id: i})
	}

	var seen []uint32
	l.forEach(func(t *Task) bool {
		seen = append(seen, t.id)
		return t.id != 3
	})

	require.Equal(t, []uint32{1, 2, 3}, seen)
}

func TestRemoveUnlinkedTaskPanics(t *testing.T) {
	require.Panics(t, func() {
		removeTask(&Task{id: 99})
	})
}

// TestTaskListRotateSequence walks rotate through a full cycle and checks
// the resulting ordering structurally with go-cmp, which reports a
// full-diff rather than a single boolean on mismatch - useful here since a
// rotate bug tends to scramble the whole sequence rather than one element.
func TestTaskListRotateSequence(t *testing.T) {
	var l taskList
	l.init()
	for i := uint32(1); i <= 4; i++ {
		l.insertTail(&Task{id: i})
	}

	want := [][]uint32{
		{2, 3, 4, 1},
		{3, 4, 1, 2},
		{4, 1, 2, 3},
		{1, 2, 3, 4},
	}
	for _, w := range want {
		l.rotate(l.first())
		if diff := cmp.Diff(w, idsOf(&l)); diff != "" {
			t.Fatalf("taskList ordering mismatch (-want +got):\n%s", diff)
		}
	}
}
