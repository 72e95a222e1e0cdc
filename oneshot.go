package asyncrt

// oneshotState tracks which side of a one-value rendezvous is currently
// registered, mirroring the teacher's own small-state-enum idiom (previously
// used for promise settlement state) but applied to a true, unbuffered
// handoff instead of a buffered JS-style Promise. It has no String method.
type oneshotState uint8

const (
	oneshotEmpty oneshotState = iota
	oneshotSenderWaiting
	oneshotReceiverWaiting
	oneshotDone
	oneshotSenderGone
	oneshotReceiverGone
)

// oneshotCore is the shared state a Sender[T]/Receiver[T] pair rendezvous
// through. The value never sits in a queue: it is written into core.value at
// most once, by the sender's first poll (whether or not the receiver is
// already waiting), and read at most once by the receiver.
type oneshotCore[T any] struct {
	state    oneshotState
	value    T
	senderWaker,
	receiverWaker Waker
	diag diag
}

// Sender is the send half of a oneshot rendezvous created by NewOneshot.
type Sender[T any] struct {
	core *oneshotCore[T]
}

// Receiver is the receive half of a oneshot rendezvous created by NewOneshot.
type Receiver[T any] struct {
	core *oneshotCore[T]
}

// NewOneshot creates a connected Sender/Receiver pair for a single value
// exchange, registered against rt's diagnostics (if enabled) and using rt's
// configured logger for rendezvous trace events.
func NewOneshot[R Reactor, T any](rt *Runtime[R]) (*Sender[T], *Receiver[T]) {
	core := &oneshotCore[T]{diag: rt.diag}
	_ = registerCore(rt.reg, "oneshot", core)
	return &Sender[T]{core: core}, &Receiver[T]{core: core}
}

// Close abandons the send side without ever calling Send. If a Receiver is
// already parked waiting, it is woken immediately with a Disconnected result.
// Go has no destructors, so callers that construct a Sender and decide not to
// use it must call Close explicitly to release a waiting peer promptly,
// exactly as the oneshot rendezvous this is grounded on releases its peer from
// Drop.
func (s *Sender[T]) Close() {
	switch s.core.state {
	case oneshotEmpty:
		s.core.state = oneshotSenderGone
	case oneshotReceiverWaiting:
		s.core.state = oneshotSenderGone
		s.core.receiverWaker.Wake()
	}
}

// Send returns a future that completes once the value has been handed to the
// receiver, or the receiver was already gone — in which case SendResult.Err
// is ErrDisconnected and SendResult.Value recovers v, exactly as
// original_source/src/oneshot.rs's SenderFuture hands the value back via
// Err(self.data.take().unwrap()).
func (s *Sender[T]) Send(v T) Future[SendResult[T]] {
	return &sendFuture[T]{core: s.core, value: v}
}

// Close abandons the receive side without ever calling Recv. If a Sender is
// already parked waiting, it is woken immediately with a Disconnected result.
func (r *Receiver[T]) Close() {
	switch r.core.state {
	case oneshotEmpty:
		r.core.state = oneshotReceiverGone
	case oneshotSenderWaiting:
		r.core.state = oneshotReceiverGone
		r.core.senderWaker.Wake()
	}
}

// Recv returns a future that completes once a value has been received, or the
// sender was already gone (ErrDisconnected).
func (r *Receiver[T]) Recv() Future[RecvResult[T]] {
	return &recvFuture[T]{core: r.core}
}

// RecvResult is the outcome of a Receiver.Recv: either a value, or the sender
// disconnected without ever sending one.
type RecvResult[T any] struct {
	Value T
	Err   error
}

// SendResult is the outcome of a Sender.Send or ChanSender.Send: nil Err on a
// completed handoff, or the receiver's disconnection together with the
// original value recovered back to the caller (it was never transmitted).
type SendResult[T any] struct {
	Value T
	Err   error
}

type leafState uint8

const (
	leafCreated leafState = iota
	leafRegistered
	leafDone
)

type sendFuture[T any] struct {
	core  *oneshotCore[T]
	value T
	state leafState
}

func (f *sendFuture[T]) Poll(cx *Context) (SendResult[T], bool) {
	switch f.state {
	case leafCreated:
		switch f.core.state {
		case oneshotEmpty:
			f.core.value = f.value
			f.core.state = oneshotSenderWaiting
			f.core.senderWaker = cx.Waker()
			f.state = leafRegistered
			return SendResult[T]{}, false

		case oneshotReceiverWaiting:
			f.core.value = f.value
			f.core.state = oneshotDone
			f.core.diag.channelRendezvous("oneshot")
			f.core.receiverWaker.Wake()
			f.state = leafDone
			return SendResult[T]{}, true

		case oneshotReceiverGone:
			f.state = leafDone
			return SendResult[T]{Value: f.value, Err: &Disconnected{Side: "receiver"}}, true

		default:
			panicf("Sender.Send", "send called more than once, or after Close")
			panic("unreachable")
		}

	case leafRegistered:
		switch f.core.state {
		case oneshotDone:
			f.state = leafDone
			return SendResult[T]{}, true
		case oneshotReceiverGone:
			f.state = leafDone
			return SendResult[T]{Value: f.value, Err: &Disconnected{Side: "receiver"}}, true
		default:
			return SendResult[T]{}, false
		}

	default:
		panicf("sendFuture.Poll", "poll called after task already completed")
		panic("unreachable")
	}
}

// cancel tears down an outstanding Send registration when this future loses
// an AnyOfN race: mirrors original_source/src/oneshot.rs's
// SenderFuture::Drop → cancel_sender, which flips the peer state to Dropped
// rather than leaving a Receiver parked forever waiting on a sender that will
// never poll again.
func (f *sendFuture[T]) cancel() {
	if f.state != leafRegistered {
		f.state = leafDone
		return
	}
	if f.core.state == oneshotSenderWaiting {
		f.core.state = oneshotSenderGone
	}
	f.state = leafDone
}

type recvFuture[T any] struct {
	core  *oneshotCore[T]
	state leafState
}

func (f *recvFuture[T]) Poll(cx *Context) (RecvResult[T], bool) {
	switch f.state {
	case leafCreated:
		switch f.core.state {
		case oneshotEmpty:
			f.core.state = oneshotReceiverWaiting
			f.core.receiverWaker = cx.Waker()
			f.state = leafRegistered
			return RecvResult[T]{}, false

		case oneshotSenderWaiting:
			v := f.core.value
			f.core.state = oneshotDone
			f.core.diag.channelRendezvous("oneshot")
			f.core.senderWaker.Wake()
			f.state = leafDone
			return RecvResult[T]{Value: v}, true

		case oneshotSenderGone:
			f.state = leafDone
			return RecvResult[T]{Err: &Disconnected{Side: "sender"}}, true

		default:
			panicf("Receiver.Recv", "recv called more than once, or after Close")
			panic("unreachable")
		}

	case leafRegistered:
		switch f.core.state {
		case oneshotDone:
			f.state = leafDone
			return RecvResult[T]{Value: f.core.value}, true
		case oneshotSenderGone:
			f.state = leafDone
			return RecvResult[T]{Err: &Disconnected{Side: "sender"}}, true
		default:
			return RecvResult[T]{}, false
		}

	default:
		panicf("recvFuture.Poll", "poll called after task already completed")
		panic("unreachable")
	}
}

// cancel tears down an outstanding Recv registration when this future loses
// an AnyOfN race: mirrors original_source/src/oneshot.rs's
// ReceiverFuture::Drop → cancel_receiver, which flips the peer state to
// Dropped rather than leaving a Sender parked forever waiting on a receiver
// that will never poll again.
func (f *recvFuture[T]) cancel() {
	if f.state != leafRegistered {
		f.state = leafDone
		return
	}
	if f.core.state == oneshotReceiverWaiting {
		f.core.state = oneshotReceiverGone
	}
	f.state = leafDone
}
