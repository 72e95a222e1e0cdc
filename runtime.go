package asyncrt

// Runtime owns the shared awoken cell, the reactor, and the small amount of
// bookkeeping (spawn queue) needed to alternate spawn-phase and poll-phase the
// way BlockOn, Scope.Close, and NestedLoop all do.
//
// A Runtime is never safe for use from more than one goroutine: every method
// below assumes it is the only thing touching the Runtime at that moment.
type Runtime[R Reactor] struct {
	reactor R
	awk     awoken
	diag    diag
	reg     *diagRegistry

	spawnQueue []*taskHeader
}

// NewRuntime constructs a Runtime driving the given reactor.
func NewRuntime[R Reactor](reactor R, opts ...RuntimeOption) *Runtime[R] {
	cfg := resolveRuntimeOptions(opts)
	rt := &Runtime[R]{
		reactor: reactor,
		diag:    newDiag(cfg.logger),
	}
	if cfg.diagnostics {
		rt.reg = newDiagRegistry()
	}
	return rt
}

// Reactor returns the reactor this Runtime was constructed with.
func (rt *Runtime[R]) Reactor() R {
	return rt.reactor
}

// Diagnostics returns the optional introspection registry, or nil if
// WithDiagnosticRegistry was not supplied at construction.
func (rt *Runtime[R]) Diagnostics() *diagRegistry {
	return rt.reg
}

// IsAwokenFor reports whether id is the event the runtime is currently
// dispatching. Leaf futures normally use Context.IsAwokenFor instead; this is
// exposed for composite futures that need to check against a saved id outside
// of a Poll call's own Context.
func (rt *Runtime[R]) IsAwokenFor(id EventID) bool {
	return !id.IsZero() && rt.awk.event == id
}

func (rt *Runtime[R]) enqueueSpawn(h *taskHeader) {
	rt.spawnQueue = append(rt.spawnQueue, h)
}

// spawnPhase polls every task newly added to the spawn queue exactly once, in
// FIFO order. A task may itself spawn further tasks (via Scope.Spawn) during
// this first poll; those are appended to the same queue and drained within the
// same spawnPhase call.
func (rt *Runtime[R]) spawnPhase() {
	for len(rt.spawnQueue) > 0 {
		h := rt.spawnQueue[0]
		rt.spawnQueue = rt.spawnQueue[1:]
		if h.completed {
			continue
		}
		h.pollFn()
	}
}

// dispatch delivers one pending entry: parking it if the target task is
// currently frozen (a nested loop is running on its call stack), discarding it
// if the target already completed, and otherwise polling the target with
// rt.awk.event set to the entry's event.
func (rt *Runtime[R]) dispatch(e dispatchEntry) {
	if e.header.completed {
		return
	}
	if e.header.frozen {
		if e.event.IsZero() {
			e.header.frozenZero++
			rt.diag.frozenEventParked()
			return
		}
		e.header.pushBack(e.event.node)
		rt.diag.frozenEventParked()
		return
	}
	rt.awk.event = e.event
	e.header.pollFn()
}

// pollPhase delivers exactly one event to exactly one task: either an entry
// already on the run queue (fed by a prior reactor wake or a same-goroutine
// rendezvous handoff), or whatever the reactor reports next. If there is
// nothing queued, the reactor is asked to wait, which — per the Reactor
// contract — always wakes at least one task before returning, leaving a fresh
// entry on the queue for this call to dispatch.
func (rt *Runtime[R]) pollPhase() {
	if e, ok := rt.awk.popReady(); ok {
		rt.dispatch(e)
		return
	}

	rt.diag.reactorWait()
	rt.reactor.Wait()

	e, ok := rt.awk.popReady()
	if !ok {
		panicf("Runtime.pollPhase", "reactor returned from Wait without waking any task")
	}
	rt.dispatch(e)
}

// BlockOn drives fut to completion on the calling goroutine, alternating
// spawn-phase and poll-phase, and returns its value.
func BlockOn[R Reactor, T any](rt *Runtime[R], fut Future[T]) T {
	root := newTask(fut, &rt.awk)
	rt.enqueueSpawn(root.header())
	for !root.IsCompleted() {
		rt.spawnPhase()
		if root.IsCompleted() {
			break
		}
		rt.pollPhase()
	}
	return root.Result()
}

// NestedLoop runs fut to completion on a fresh inner spawn/poll cycle without
// returning control to the caller's own poll stack frame. It is used from
// inside a Future's Poll method to synchronously wait out a sub-computation.
//
// While the nested loop is running, the calling task is marked frozen: any
// event addressed to it is parked on its frozen list instead of being
// dispatched, since dispatching would mean re-entering a Poll call that is
// already on the stack. Once the nested loop finishes, the calling task is
// unfrozen and any parked events are re-queued for redelivery ahead of
// whatever the reactor reports next: first the node-bound events in their
// original arrival order, then any whole-task (zero EventID) wakes.
func NestedLoop[R Reactor, T any](rt *Runtime[R], cx *Context, fut Future[T]) T {
	self := cx.waker.header
	self.frozen = true
	rt.diag.nestedLoopEnter()

	inner := newTask(fut, &rt.awk)
	rt.enqueueSpawn(inner.header())
	for !inner.IsCompleted() {
		rt.spawnPhase()
		if inner.IsCompleted() {
			break
		}
		rt.pollPhase()
	}

	self.frozen = false
	parked := 0
	for node := self.popFront(); node != nil; node = self.popFront() {
		rt.awk.schedule(dispatchEntry{header: self, event: EventID{node: node}})
		parked++
	}
	for ; self.frozenZero > 0; self.frozenZero-- {
		rt.awk.schedule(dispatchEntry{header: self, event: EventID{}})
		parked++
	}
	rt.diag.nestedLoopExit(parked)

	return inner.Result()
}
