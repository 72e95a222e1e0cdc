package asyncrt

// JoinTasks2 waits for two already-spawned tasks (e.g. from Scope.Spawn) to
// complete, returning both results together.
//
// Unlike Join2, which owns and polls its branch futures directly, JoinTasks2
// joins tasks whose wakers already point at themselves. The first poll
// redirects each task's notifications to the joining task via assignParent —
// so a reactor or rendezvous wakeup meant for a child arrives as a dispatch
// to whatever is polling this join instead — and then drives that child's
// own poll function directly, since the runtime's dispatch loop will deliver
// to the (redirected) parent header from here on, not to the child.
func JoinTasks2[A, B any](taskA *Task[A], taskB *Task[B]) Future[Pair2[A, B]] {
	return &joinTasks2Future[A, B]{taskA: taskA, taskB: taskB}
}

type joinTasks2Future[A, B any] struct {
	taskA *Task[A]
	taskB *Task[B]
}

func (f *joinTasks2Future[A, B]) Poll(cx *Context) (Pair2[A, B], bool) {
	parent := cx.Waker()

	if !f.taskA.IsCompleted() {
		f.taskA.header().assignParent(parent)
		f.taskA.header().pollFn()
	}
	if !f.taskB.IsCompleted() {
		f.taskB.header().assignParent(parent)
		f.taskB.header().pollFn()
	}

	if f.taskA.IsCompleted() && f.taskB.IsCompleted() {
		return Pair2[A, B]{A: f.taskA.Result(), B: f.taskB.Result()}, true
	}
	return Pair2[A, B]{}, false
}

// JoinTasks3 is JoinTasks2 generalized to three already-spawned tasks.
func JoinTasks3[A, B, C any](taskA *Task[A], taskB *Task[B], taskC *Task[C]) Future[Triple3[A, B, C]] {
	return &joinTasks3Future[A, B, C]{taskA: taskA, taskB: taskB, taskC: taskC}
}

type joinTasks3Future[A, B, C any] struct {
	taskA *Task[A]
	taskB *Task[B]
	taskC *Task[C]
}

func (f *joinTasks3Future[A, B, C]) Poll(cx *Context) (Triple3[A, B, C], bool) {
	parent := cx.Waker()

	if !f.taskA.IsCompleted() {
		f.taskA.header().assignParent(parent)
		f.taskA.header().pollFn()
	}
	if !f.taskB.IsCompleted() {
		f.taskB.header().assignParent(parent)
		f.taskB.header().pollFn()
	}
	if !f.taskC.IsCompleted() {
		f.taskC.header().assignParent(parent)
		f.taskC.header().pollFn()
	}

	if f.taskA.IsCompleted() && f.taskB.IsCompleted() && f.taskC.IsCompleted() {
		return Triple3[A, B, C]{A: f.taskA.Result(), B: f.taskB.Result(), C: f.taskC.Result()}, true
	}
	return Triple3[A, B, C]{}, false
}

// JoinTasksSlice is JoinTasks2/JoinTasks3 generalized to an arbitrary number
// of same-typed already-spawned tasks. An empty tasks completes immediately
// with an empty slice.
func JoinTasksSlice[T any](tasks []*Task[T]) Future[[]T] {
	return &joinTasksSliceFuture[T]{tasks: tasks}
}

type joinTasksSliceFuture[T any] struct {
	tasks []*Task[T]
}

func (f *joinTasksSliceFuture[T]) Poll(cx *Context) ([]T, bool) {
	parent := cx.Waker()

	remaining := 0
	for _, t := range f.tasks {
		if t.IsCompleted() {
			continue
		}
		t.header().assignParent(parent)
		t.header().pollFn()
		if !t.IsCompleted() {
			remaining++
		}
	}
	if remaining > 0 {
		return nil, false
	}

	results := make([]T, len(f.tasks))
	for i, t := range f.tasks {
		results[i] = t.Result()
	}
	return results, true
}
