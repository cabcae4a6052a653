// Package schedule provides a deterministic clock for driving
// timer-based UI sequencing without wall-clock waits.
package schedule

import (
	"container/heap"
	"time"
)

type task struct {
	due time.Duration
	seq uint64
	fn  func()
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x interface{}) { *q = append(*q, x.(*task)) }

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	*q = old[:n-1]
	return t
}

// Virtual is a manually advanced clock. Callbacks run synchronously
// inside Advance, in due order and then in scheduling order.
type Virtual struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

// NewVirtual creates a clock at time zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// After schedules fn to run once the clock has advanced by d.
func (v *Virtual) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	v.seq++
	heap.Push(&v.queue, &task{due: v.now + d, seq: v.seq, fn: fn})
}

// Advance moves the clock forward by d, running every callback that
// becomes due, including callbacks scheduled by earlier ones.
func (v *Virtual) Advance(d time.Duration) {
	target := v.now + d
	for len(v.queue) > 0 && v.queue[0].due <= target {
		t := heap.Pop(&v.queue).(*task)
		v.now = t.due
		t.fn()
	}
	v.now = target
}

// Flush runs callbacks until nothing is pending and returns the elapsed time.
func (v *Virtual) Flush() time.Duration {
	start := v.now
	for len(v.queue) > 0 {
		t := heap.Pop(&v.queue).(*task)
		v.now = t.due
		t.fn()
	}
	return v.now - start
}

// Now returns the time elapsed since the clock was created.
func (v *Virtual) Now() time.Duration {
	return v.now
}

// Pending returns the number of scheduled callbacks not yet run.
func (v *Virtual) Pending() int {
	return len(v.queue)
}
