package asyncrt

// cancelIfCancellable tears down a losing branch's outstanding registration,
// if it has one. Most branches (e.g. already-ready plain values) never
// register anything and don't need this; leaf futures with a live reactor or
// rendezvous registration (Sleep, Sender.Send, Receiver.Recv,
// ChanSender.Send, ChanReceiver.Next) implement cancellable.
func cancelIfCancellable[T any](f Future[T]) {
	if c, ok := f.(cancellable); ok {
		c.cancel()
	}
}

// OneOf2 is the result of AnyOf2: exactly one of A or B is populated,
// indicated by Index (0 for A, 1 for B).
type OneOf2[A, B any] struct {
	Index int
	A     A
	B     B
}

type anyOf2Future[A, B any] struct {
	futA  Future[A]
	futB  Future[B]
	state leafState
}

// AnyOf2 polls both fa and fb every time either could make progress,
// completing with whichever becomes ready first. The loser is cancelled if it
// implements cancellable, exactly as AnyOfSlice does for its branches.
func AnyOf2[A, B any](fa Future[A], fb Future[B]) Future[OneOf2[A, B]] {
	return &anyOf2Future[A, B]{futA: fa, futB: fb}
}

func (f *anyOf2Future[A, B]) Poll(cx *Context) (OneOf2[A, B], bool) {
	if f.state == leafDone {
		panicf("AnyOf2.Poll", "poll called after already resolved")
	}

	if va, ready := f.futA.Poll(cx); ready {
		f.state = leafDone
		cancelIfCancellable(f.futB)
		return OneOf2[A, B]{Index: 0, A: va}, true
	}
	if vb, ready := f.futB.Poll(cx); ready {
		f.state = leafDone
		cancelIfCancellable(f.futA)
		return OneOf2[A, B]{Index: 1, B: vb}, true
	}
	f.state = leafRegistered
	return OneOf2[A, B]{}, false
}

// OneOf3 is the result of AnyOf3: exactly one of A, B, or C is populated,
// indicated by Index (0, 1, or 2 respectively).
type OneOf3[A, B, C any] struct {
	Index int
	A     A
	B     B
	C     C
}

type anyOf3Future[A, B, C any] struct {
	futA  Future[A]
	futB  Future[B]
	futC  Future[C]
	state leafState
}

// AnyOf3 is AnyOf2 generalized to three heterogeneous branches.
func AnyOf3[A, B, C any](fa Future[A], fb Future[B], fc Future[C]) Future[OneOf3[A, B, C]] {
	return &anyOf3Future[A, B, C]{futA: fa, futB: fb, futC: fc}
}

func (f *anyOf3Future[A, B, C]) Poll(cx *Context) (OneOf3[A, B, C], bool) {
	if f.state == leafDone {
		panicf("AnyOf3.Poll", "poll called after already resolved")
	}

	if va, ready := f.futA.Poll(cx); ready {
		f.state = leafDone
		cancelIfCancellable(f.futB)
		cancelIfCancellable(f.futC)
		return OneOf3[A, B, C]{Index: 0, A: va}, true
	}
	if vb, ready := f.futB.Poll(cx); ready {
		f.state = leafDone
		cancelIfCancellable(f.futA)
		cancelIfCancellable(f.futC)
		return OneOf3[A, B, C]{Index: 1, B: vb}, true
	}
	if vc, ready := f.futC.Poll(cx); ready {
		f.state = leafDone
		cancelIfCancellable(f.futA)
		cancelIfCancellable(f.futB)
		return OneOf3[A, B, C]{Index: 2, C: vc}, true
	}
	f.state = leafRegistered
	return OneOf3[A, B, C]{}, false
}

// AnyOfResult is the result of AnyOfSlice: the winning branch's index and
// value.
type AnyOfResult[T any] struct {
	Index int
	Value T
}

// anyOfCore is the arity-independent core shared by AnyOfSlice: poll every
// still-pending branch in order, complete with the first ready one, and
// cancel the rest. Unlike AnyOf2/AnyOf3, every branch here shares type T, so
// a single slice and a single loop serve any number of them.
type anyOfCore[T any] struct {
	futs  []Future[T]
	state leafState
}

func (c *anyOfCore[T]) poll(cx *Context) (AnyOfResult[T], bool) {
	if c.state == leafDone {
		panicf("AnyOfSlice.Poll", "poll called after already resolved")
	}

	for i, fut := range c.futs {
		v, ready := fut.Poll(cx)
		if !ready {
			continue
		}
		c.state = leafDone
		for j, other := range c.futs {
			if j != i {
				cancelIfCancellable(other)
			}
		}
		return AnyOfResult[T]{Index: i, Value: v}, true
	}
	c.state = leafRegistered
	return AnyOfResult[T]{}, false
}

type anyOfSliceFuture[T any] struct {
	core anyOfCore[T]
}

// AnyOfSlice races an arbitrary number of same-typed futures, completing with
// the first to become ready and cancelling the rest. It panics if futs is
// empty — there would be nothing to ever become ready.
func AnyOfSlice[T any](futs []Future[T]) Future[AnyOfResult[T]] {
	if len(futs) == 0 {
		panicf("AnyOfSlice", "called with no branches")
	}
	return &anyOfSliceFuture[T]{core: anyOfCore[T]{futs: futs}}
}

func (f *anyOfSliceFuture[T]) Poll(cx *Context) (AnyOfResult[T], bool) {
	return f.core.poll(cx)
}
