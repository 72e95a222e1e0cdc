package asyncrt

// Pair2 is the result of Join2: both values, once both futures have
// completed.
type Pair2[A, B any] struct {
	A A
	B B
}

// join2Future needs per-branch completion tracking: unlike AnyOf2, every
// branch must reach ready before the join itself does, and a completed
// future must never be polled again.
type join2Future[A, B any] struct {
	futA  Future[A]
	futB  Future[B]
	doneA bool
	doneB bool
	resA  A
	resB  B
}

// Join2 waits for both fa and fb to complete, polling whichever is still
// pending on every call, and returns both results together.
func Join2[A, B any](fa Future[A], fb Future[B]) Future[Pair2[A, B]] {
	return &join2Future[A, B]{futA: fa, futB: fb}
}

func (f *join2Future[A, B]) Poll(cx *Context) (Pair2[A, B], bool) {
	if !f.doneA {
		if v, ready := f.futA.Poll(cx); ready {
			f.doneA = true
			f.resA = v
		}
	}
	if !f.doneB {
		if v, ready := f.futB.Poll(cx); ready {
			f.doneB = true
			f.resB = v
		}
	}
	if f.doneA && f.doneB {
		return Pair2[A, B]{A: f.resA, B: f.resB}, true
	}
	return Pair2[A, B]{}, false
}

// Triple3 is the result of Join3: all three values, once all three futures
// have completed.
type Triple3[A, B, C any] struct {
	A A
	B B
	C C
}

type join3Future[A, B, C any] struct {
	futA  Future[A]
	futB  Future[B]
	futC  Future[C]
	doneA bool
	doneB bool
	doneC bool
	resA  A
	resB  B
	resC  C
}

// Join3 is Join2 generalized to three heterogeneous branches.
func Join3[A, B, C any](fa Future[A], fb Future[B], fc Future[C]) Future[Triple3[A, B, C]] {
	return &join3Future[A, B, C]{futA: fa, futB: fb, futC: fc}
}

func (f *join3Future[A, B, C]) Poll(cx *Context) (Triple3[A, B, C], bool) {
	if !f.doneA {
		if v, ready := f.futA.Poll(cx); ready {
			f.doneA = true
			f.resA = v
		}
	}
	if !f.doneB {
		if v, ready := f.futB.Poll(cx); ready {
			f.doneB = true
			f.resB = v
		}
	}
	if !f.doneC {
		if v, ready := f.futC.Poll(cx); ready {
			f.doneC = true
			f.resC = v
		}
	}
	if f.doneA && f.doneB && f.doneC {
		return Triple3[A, B, C]{A: f.resA, B: f.resB, C: f.resC}, true
	}
	return Triple3[A, B, C]{}, false
}

// joinSliceFuture is the arity-independent counterpart to Join2/Join3: every
// branch shares type T, so completion tracking and results both fit in
// parallel slices instead of named fields.
type joinSliceFuture[T any] struct {
	futs      []Future[T]
	done      []bool
	results   []T
	remaining int
}

// JoinSlice waits for every future in futs to complete and returns their
// results in the same order. An empty futs completes immediately with an
// empty slice.
func JoinSlice[T any](futs []Future[T]) Future[[]T] {
	return &joinSliceFuture[T]{
		futs:      futs,
		done:      make([]bool, len(futs)),
		results:   make([]T, len(futs)),
		remaining: len(futs),
	}
}

func (f *joinSliceFuture[T]) Poll(cx *Context) ([]T, bool) {
	for i, fut := range f.futs {
		if f.done[i] {
			continue
		}
		if v, ready := fut.Poll(cx); ready {
			f.done[i] = true
			f.results[i] = v
			f.remaining--
		}
	}
	if f.remaining == 0 {
		return f.results, true
	}
	return nil, false
}
