// Package asyncrt provides a minimalist, embeddable, single-threaded async
// executor paired with a pluggable reactor.
//
// # Architecture
//
// A [Runtime] drives a rooted tree of tasks on the single goroutine that calls
// [BlockOn]. Tasks are built from [Future] values, polled cooperatively — there is
// no preemption, no work-stealing, and no cross-goroutine synchronization anywhere
// in the core: only one task ever runs at any moment, and the executor, [Scope],
// oneshot channel, MPSC channel, [AnyOf2]/[AnyOf3], and [Join2]/[Join3]/
// [JoinTasks2]/[JoinTasks3] use no atomics or locks.
//
// Structured concurrency is provided by [Scope]: tasks spawned into a Scope are
// guaranteed to run to completion by the time Scope.Close returns, which callers
// invoke explicitly (Go has no destructors) typically via defer.
//
// Rendezvous between tasks is provided by a one-value oneshot channel (NewOneshot)
// and a queueless multi-producer/single-consumer channel (NewChannel): neither
// keeps a queue of values. A oneshot copies its single value into its shared
// core when Send is first polled, and the receiver reads it from there; a
// channel keeps a parked send's value in that send's own future until the
// receiver takes it, and a handoff to an already parked receiver goes through
// one value slot in the channel's shared core.
//
// The executor itself knows nothing about timers or I/O; both are delegated to a
// [Reactor] (or the timer-capable [TemporalReactor]) supplied by the caller. The
// asyncrt/toyreactor subpackage provides a reference, binary-heap-based
// TemporalReactor suitable for tests and examples.
package asyncrt
