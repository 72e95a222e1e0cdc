package asyncrt

// Future is the poll-based unit of asynchronous work, Go's substitute for a
// language with native async/await: a leaf future registers itself with a
// reactor (or a channel/oneshot peer) the first time it is polled and returns
// ready once its value is available; a composite future (AnyOfN, JoinN, ...)
// polls its children and combines their results.
//
// Poll must not be called again after it has returned ready=true; doing so is a
// programmer error. Tasks, the leaf futures (Sleep, oneshot, channel) and the
// AnyOfN futures panic when it happens; the JoinN, JoinSlice and JoinTasksN
// futures do not check for it and return their result again.
type Future[T any] interface {
	Poll(cx *Context) (value T, ready bool)
}

// Context is passed to every Future.Poll call. It carries the waker of the task
// currently being polled and lets a leaf future check whether the event it is
// waiting on is the one the runtime just dispatched.
type Context struct {
	waker Waker
	awk   *awoken
}

// Waker returns a waker bound to the task currently being polled, but not to
// any specific event — suitable for composite futures (Join2/Join3) that share
// one context across several sub-futures rather than giving each its own node.
func (cx *Context) Waker() Waker {
	return cx.waker
}

// IsAwokenFor reports whether id is the event the runtime is currently
// dispatching.
func (cx *Context) IsAwokenFor(id EventID) bool {
	return !id.IsZero() && cx.awk.event == id
}

// dispatchEntry is one pending (task, event) pair waiting to be handed to the
// runtime's dispatch loop.
type dispatchEntry struct {
	header *taskHeader
	event  EventID
}

// awoken is the per-Runtime cell every task shares a pointer to. event records
// what is being delivered to whichever task is currently being polled; ready is
// the run queue of tasks waiting to be (re)polled, fed both by the configured
// Reactor (via Waker.Wake) and by same-goroutine rendezvous handoffs (oneshot,
// channel).
type awoken struct {
	event EventID
	ready []dispatchEntry
}

func (a *awoken) schedule(e dispatchEntry) {
	a.ready = append(a.ready, e)
}

func (a *awoken) popReady() (dispatchEntry, bool) {
	if len(a.ready) == 0 {
		return dispatchEntry{}, false
	}
	e := a.ready[0]
	a.ready = a.ready[1:]
	return e, true
}

// Waker is the capability a leaf future uses to tell the runtime "the task that
// owns me may be pollable again, specifically because this event fired."
// Waking is safe to call multiple times; it only ever appends to the run
// queue, it never polls anything itself.
type Waker struct {
	header *taskHeader
	event  EventID
}

// Wake schedules the task behind this waker (or, for a JoinTasksN child, the
// task it delegates to via assignParent) for dispatch.
func (w Waker) Wake() {
	target := w.header.notifyTarget()
	target.awoken.schedule(dispatchEntry{header: target, event: w.event})
}

// taskHeader is the type-erased half of a Task[T]: the part the runtime,
// Scope, and JoinTasksN need to manipulate without knowing the task's result
// type. pollFn closes over the concrete Task[T] and is the hand-rolled
// equivalent of a single-method vtable — it keeps dynamic dispatch confined to
// this one function pointer instead of boxing the whole task behind `any`.
type taskHeader struct {
	awoken *awoken
	pollFn func() bool

	completed bool

	// notify is the task that should actually receive dispatch entries when
	// this header's waker fires. It defaults to the header itself; JoinTasksN
	// overwrites it once, via assignParent, to delegate wakeups to the
	// containing task.
	notify *taskHeader

	frozen                 bool
	frozenHead, frozenTail *eventNode
	// frozenZero counts wakes addressed to this header as a whole (zero
	// EventID — the pattern oneshot uses for a future that shares its owning
	// task's waker rather than registering its own eventNode) that
	// arrived while frozen. They carry no node to link into the frozen list
	// above, so they're parked here instead and redelivered the same way once
	// NestedLoop unfreezes the header.
	frozenZero int
}

func (h *taskHeader) notifyTarget() *taskHeader {
	return h.notify
}

// assignParent makes h's waker delegate to parent's waker, if it has not
// already been assigned. It returns true the first time it is called for h;
// the JoinTasksN futures call it on every poll and ignore the result.
func (h *taskHeader) assignParent(parent Waker) bool {
	if h.notify == h {
		h.notify = parent.header
		return true
	}
	return false
}

func (h *taskHeader) waker() Waker {
	return Waker{header: h}
}

func (h *taskHeader) context() *Context {
	return &Context{waker: h.waker(), awk: h.awoken}
}

// Task pins a Future[T] to the heap and gives it a stable identity the runtime
// can poll, wake, and freeze/unfreeze independently of T.
type Task[T any] struct {
	hdr    taskHeader
	fut    Future[T]
	result T
}

// newTask constructs a Task already wired to share the given Runtime's awoken
// cell. The returned pointer is never moved or copied afterward.
func newTask[T any](fut Future[T], awk *awoken) *Task[T] {
	t := &Task[T]{fut: fut}
	t.hdr.awoken = awk
	t.hdr.notify = &t.hdr
	t.hdr.pollFn = t.pollOnce
	return t
}

// pollOnce polls the wrapped future exactly once and records the result if it
// completes. It panics if the task already completed.
func (t *Task[T]) pollOnce() bool {
	if t.hdr.completed {
		panicf("Task.Poll", "poll called after task already completed")
	}
	v, ready := t.fut.Poll(t.hdr.context())
	if ready {
		t.result = v
		t.hdr.completed = true
	}
	return t.hdr.completed
}

// IsCompleted reports whether the task's future has returned ready.
func (t *Task[T]) IsCompleted() bool {
	return t.hdr.completed
}

// Result returns the task's value. It is only meaningful once IsCompleted is true.
func (t *Task[T]) Result() T {
	return t.result
}

// Waker returns this task's waker, for composite futures (JoinTasksN) that need
// to delegate a child's wakeups elsewhere.
func (t *Task[T]) Waker() Waker {
	return t.hdr.waker()
}

// header exposes the type-erased header for Scope/runtime bookkeeping.
func (t *Task[T]) header() *taskHeader {
	return &t.hdr
}
