package asyncrt

// WithRuntime constructs a reactor via newReactor, builds a Runtime around it,
// invokes fn to obtain the program's top-level future, drives it to completion
// with BlockOn, and returns its value.
//
// Rust's equivalent (with_runtime_base) needs a higher-ranked lifetime trait
// (LifetimeLinkerFn) to let fn borrow a runtime whose lifetime isn't known until
// WithRuntime itself runs. Go needs no such machinery: fn receives an ordinary
// *Runtime[R], ordinary escape analysis keeps it alive for as long as any
// closure fn returns captures it, and the garbage collector reclaims it once
// nothing does.
func WithRuntime[R Reactor, Init, T any](newReactor func() R, fn func(*Runtime[R], Init) Future[T], init Init, opts ...RuntimeOption) T {
	rt := NewRuntime(newReactor(), opts...)
	fut := fn(rt, init)
	return BlockOn(rt, fut)
}
