package asyncrt

// Scope is a structured-concurrency container: every task spawned into it is
// guaranteed to have run to completion by the time Close returns. Go has no
// destructors, so where the design this module follows drains children "on
// drop," callers here call Close explicitly — typically via defer, immediately
// after NewScope.
type Scope[R Reactor] struct {
	rt       *Runtime[R]
	name     string
	children []*taskHeader
	closed   bool
}

// NewScope creates an unnamed Scope bound to rt.
func NewScope[R Reactor](rt *Runtime[R]) *Scope[R] {
	return NewNamedScope(rt, "")
}

// NewNamedScope creates a Scope bound to rt, tagging its diagnostic log lines
// with name.
func NewNamedScope[R Reactor](rt *Runtime[R], name string) *Scope[R] {
	return &Scope[R]{rt: rt, name: name}
}

// TaskHandle is a handle to a task spawned into a Scope. Its result is only
// meaningful once IsCompleted reports true, which Scope.Close guarantees by
// the time it returns for every handle it produced.
type TaskHandle[T any] struct {
	task *Task[T]
}

// IsCompleted reports whether the spawned task's future has returned ready.
func (h *TaskHandle[T]) IsCompleted() bool {
	return h.task.IsCompleted()
}

// Result returns the spawned task's value. Only meaningful once IsCompleted.
func (h *TaskHandle[T]) Result() T {
	return h.task.Result()
}

// Spawn adds fut to s as a new child task, queued for its first poll on the
// next spawn-phase, and returns a handle to observe its eventual result.
func Spawn[R Reactor, T any](s *Scope[R], fut Future[T]) *TaskHandle[T] {
	t := newTask(fut, &s.rt.awk)
	s.rt.enqueueSpawn(t.header())
	s.children = append(s.children, t.header())
	s.rt.diag.taskSpawned(s.name)
	return &TaskHandle[T]{task: t}
}

func (s *Scope[R]) allDone() bool {
	for _, h := range s.children {
		if !h.completed {
			return false
		}
	}
	return true
}

// Close drains every child task spawned into s to completion, alternating
// spawn-phase and poll-phase on the owning Runtime exactly as BlockOn does. It
// is idempotent: calling it again after the scope is already drained does
// nothing.
func (s *Scope[R]) Close() {
	if s.closed {
		return
	}
	s.rt.diag.scopeDrainStart(s.name)
	for !s.allDone() {
		s.rt.spawnPhase()
		if s.allDone() {
			break
		}
		s.rt.pollPhase()
	}
	for range s.children {
		s.rt.diag.taskCompleted(s.name)
	}
	s.closed = true
	s.rt.diag.scopeDrainFinish(s.name)
}
