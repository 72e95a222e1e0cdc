// Package toyreactor provides a reference TemporalReactor: a binary-heap timer
// queue with no I/O readiness support, suitable for tests and examples.
package toyreactor

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/joeycumines/go-asyncrt"
)

// SleepMode selects how ToyReactor advances time while waiting for the next
// timer to fire.
type SleepMode int

const (
	// Actual blocks on the real clock via time.Sleep.
	Actual SleepMode = iota
	// Emulated advances an internal monotonic clock by exactly the delta to
	// the next timer, without ever blocking — the mode tests use for
	// deterministic, instant execution of otherwise time-based scenarios.
	Emulated
)

type timerNode struct {
	wakeOn    time.Time
	id        asyncrt.EventID
	waker     asyncrt.Waker
	cancelled bool
	index     int
}

// timerHeap is a container/heap.Interface ordered by wakeOn, the same pattern
// the min-heap timer queue in this module's teacher uses for its own timer
// wheel, generalized here to a single reactor concern instead of an embedded
// field of a larger event loop.
type timerHeap []*timerNode

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool { return h[i].wakeOn.Before(h[j].wakeOn) }

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	n := x.(*timerNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// ToyReactor implements asyncrt.TemporalReactor over an in-process timer heap.
// Cancellation is lazy — container/heap has no efficient arbitrary-element
// removal, so CancelTimer only flags the node; Wait skips flagged nodes as it
// pops them.
type ToyReactor struct {
	mode  SleepMode
	now   time.Time
	heap  timerHeap
	byID  map[asyncrt.EventID]*timerNode
}

// New constructs a ToyReactor. In Emulated mode its clock starts at the Unix
// epoch and only ever advances when Wait pops a live timer.
func New(mode SleepMode) *ToyReactor {
	return &ToyReactor{
		mode: mode,
		now:  time.Unix(0, 0),
		byID: make(map[asyncrt.EventID]*timerNode),
	}
}

// Now reports the reactor's current notion of time: the real clock in Actual
// mode, or the emulated clock in Emulated mode.
func (r *ToyReactor) Now() time.Time {
	if r.mode == Actual {
		return time.Now()
	}
	return r.now
}

func (r *ToyReactor) ScheduleTimer(id asyncrt.EventID, waker asyncrt.Waker, d time.Duration) {
	if d > asyncrt.MaxTimerDuration {
		panic(fmt.Errorf("toyreactor: requested duration %s exceeds MaxTimerDuration", d))
	}
	n := &timerNode{wakeOn: r.Now().Add(d), id: id, waker: waker}
	heap.Push(&r.heap, n)
	r.byID[id] = n
}

func (r *ToyReactor) CancelTimer(id asyncrt.EventID) {
	n, ok := r.byID[id]
	if !ok || n.cancelled {
		panic(fmt.Errorf("toyreactor: cancel of unknown or already-delivered timer"))
	}
	n.cancelled = true
	delete(r.byID, id)
}

// Wait pops timers off the heap, discarding cancelled ones, until it finds a
// live one; advances the clock (really or emulated) to that timer's wakeOn;
// wakes its waker; and returns its id. It panics if called with no timers
// registered at all — there is nothing to usefully wait for.
func (r *ToyReactor) Wait() asyncrt.EventID {
	for {
		if r.heap.Len() == 0 {
			panic("toyreactor: Wait called with no timers registered")
		}
		n := heap.Pop(&r.heap).(*timerNode)
		if n.cancelled {
			continue
		}
		delete(r.byID, n.id)

		switch r.mode {
		case Actual:
			if d := time.Until(n.wakeOn); d > 0 {
				time.Sleep(d)
			}
		case Emulated:
			if n.wakeOn.After(r.now) {
				r.now = n.wakeOn
			}
		}

		n.waker.Wake()
		return n.id
	}
}
