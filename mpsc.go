package asyncrt

// chanCore is the shared state behind a NewChannel pair: a queueless
// rendezvous channel with many senders and exactly one receiver. "Queueless"
// means no value is ever buffered inside the channel itself — a sender either
// hands its value straight to a receiver that is already parked waiting, or
// parks itself in the FIFO sender queue until the receiver comes around to it.
type chanCore[T any] struct {
	senderCount int
	closed      bool

	receiverGone    bool
	receiverWaiting bool
	receiverNode    *eventNode
	recvValue       T

	queue []*chanSendNode[T]

	diag diag
}

// ChanSender is one producer handle for a channel created by NewChannel.
// Additional producers are created with Clone, not by sharing a ChanSender
// across goroutines — this module is single-threaded throughout.
type ChanSender[T any] struct {
	core *chanCore[T]
}

// ChanReceiver is the single consumer handle for a channel created by
// NewChannel.
type ChanReceiver[T any] struct {
	core *chanCore[T]
}

// NewChannel creates a connected ChanSender/ChanReceiver pair with one
// registered sender, registered against rt's diagnostics (if enabled) and
// using rt's configured logger for rendezvous/backoff trace events. Call
// Clone for additional senders.
func NewChannel[R Reactor, T any](rt *Runtime[R]) (*ChanSender[T], *ChanReceiver[T]) {
	core := &chanCore[T]{senderCount: 1, diag: rt.diag}
	_ = registerCore(rt.reg, "channel", core)
	return &ChanSender[T]{core: core}, &ChanReceiver[T]{core: core}
}

// Clone registers another producer against the same channel. Each clone must
// eventually call Close.
func (s *ChanSender[T]) Clone() *ChanSender[T] {
	s.core.senderCount++
	return &ChanSender[T]{core: s.core}
}

// Close retires this sender handle. Once every clone has been closed, the
// channel is considered closed: a parked receiver is woken immediately with
// ErrDisconnected, and any subsequent Next completes the same way once the
// sender queue has drained.
func (s *ChanSender[T]) Close() {
	s.core.senderCount--
	if s.core.senderCount > 0 {
		return
	}
	s.core.closed = true
	if s.core.receiverWaiting {
		s.core.receiverWaiting = false
		rnode := s.core.receiverNode
		s.core.receiverNode = nil
		rnode.waker().Wake()
	}
}

// SendAttempt is the outcome of a non-blocking TrySend.
type SendAttempt int

const (
	// SendDelivered means the value was handed directly to a receiver that
	// was already parked in Next.
	SendDelivered SendAttempt = iota
	// SendTryLater means no receiver was waiting; the caller should fall
	// back to the blocking Send future, or retry TrySend later.
	SendTryLater
	// SendDisconnected means the receiver is gone; the value was dropped.
	SendDisconnected
)

// TrySend attempts an immediate, non-blocking handoff. It never parks: if no
// receiver happens to be waiting right now, it reports SendTryLater instead
// of queueing v.
func (s *ChanSender[T]) TrySend(v T) SendAttempt {
	if s.core.receiverGone {
		return SendDisconnected
	}
	if !s.core.receiverWaiting {
		s.core.diag.channelBackoff()
		return SendTryLater
	}
	s.core.receiverWaiting = false
	s.core.recvValue = v
	rnode := s.core.receiverNode
	s.core.receiverNode = nil
	s.core.diag.channelRendezvous("channel")
	rnode.waker().Wake()
	return SendDelivered
}

// Send returns a future that completes once v has been handed to the
// receiver (nil Err), or the receiver is gone — in which case SendResult.Err
// is ErrDisconnected and SendResult.Value recovers v.
func (s *ChanSender[T]) Send(v T) Future[SendResult[T]] {
	f := &chanSendFuture[T]{core: s.core}
	f.slot.value = v
	return f
}

// Close retires the receive side. Any senders currently parked in the FIFO
// queue are woken immediately with ErrDisconnected.
func (r *ChanReceiver[T]) Close() {
	if r.core.receiverGone {
		return
	}
	r.core.receiverGone = true
	queue := r.core.queue
	r.core.queue = nil
	for _, s := range queue {
		s.err = &Disconnected{Side: "receiver"}
		s.waker().Wake()
	}
}

// Next returns a future that completes with the next sent value (FIFO order
// across all senders), or *Disconnected once every sender has closed and the
// queue has drained.
func (r *ChanReceiver[T]) Next() Future[RecvResult[T]] {
	return &chanRecvFuture[T]{core: r.core}
}

// chanSendNode is both the FIFO queue element and the parked state for one
// Send call: it embeds eventNode so the receiver can wake exactly this
// pending send once it is popped off the queue or the channel tears down.
type chanSendNode[T any] struct {
	eventNode
	value T
	err   error
}

type chanSendFuture[T any] struct {
	core  *chanCore[T]
	slot  chanSendNode[T]
	state leafState
}

func (f *chanSendFuture[T]) Poll(cx *Context) (SendResult[T], bool) {
	switch f.state {
	case leafCreated:
		if f.core.receiverGone {
			f.state = leafDone
			return SendResult[T]{Value: f.slot.value, Err: &Disconnected{Side: "receiver"}}, true
		}
		if f.core.receiverWaiting {
			f.core.receiverWaiting = false
			f.core.recvValue = f.slot.value
			rnode := f.core.receiverNode
			f.core.receiverNode = nil
			f.state = leafDone
			f.core.diag.channelRendezvous("channel")
			rnode.waker().Wake()
			return SendResult[T]{}, true
		}

		f.slot.onPin(cx)
		f.core.queue = append(f.core.queue, &f.slot)
		f.state = leafRegistered
		return SendResult[T]{}, false

	case leafRegistered:
		if !f.slot.isAwokenFor(cx) {
			f.core.diag.channelBackoff()
			return SendResult[T]{}, false
		}
		f.state = leafDone
		if f.slot.err != nil {
			return SendResult[T]{Value: f.slot.value, Err: f.slot.err}, true
		}
		return SendResult[T]{}, true

	default:
		panicf("ChanSender.Send", "poll called after task already completed")
		panic("unreachable")
	}
}

// cancel tears down an outstanding Send registration when this future loses
// an AnyOfN race: unlinks the slot from the core's FIFO sender queue so the
// receiver never tries to deliver to (or wake) a send that will never poll
// again, mirroring original_source/src/channel_rt.rs's cancel_sender_fut.
func (f *chanSendFuture[T]) cancel() {
	if f.state != leafRegistered {
		f.state = leafDone
		return
	}
	for i, s := range f.core.queue {
		if s == &f.slot {
			f.core.queue = append(f.core.queue[:i], f.core.queue[i+1:]...)
			break
		}
	}
	f.state = leafDone
}

type chanRecvFuture[T any] struct {
	core  *chanCore[T]
	node  eventNode
	state leafState
}

func (f *chanRecvFuture[T]) Poll(cx *Context) (RecvResult[T], bool) {
	switch f.state {
	case leafCreated:
		if len(f.core.queue) > 0 {
			s := f.core.queue[0]
			f.core.queue = f.core.queue[1:]
			v := s.value
			f.state = leafDone
			f.core.diag.channelRendezvous("channel")
			s.waker().Wake()
			return RecvResult[T]{Value: v}, true
		}
		if f.core.closed {
			f.state = leafDone
			return RecvResult[T]{Err: &Disconnected{Side: "sender"}}, true
		}

		f.node.onPin(cx)
		f.core.receiverWaiting = true
		f.core.receiverNode = &f.node
		f.state = leafRegistered
		return RecvResult[T]{}, false

	case leafRegistered:
		if !f.node.isAwokenFor(cx) {
			f.core.diag.channelBackoff()
			return RecvResult[T]{}, false
		}
		f.state = leafDone
		if f.core.closed {
			return RecvResult[T]{Err: &Disconnected{Side: "sender"}}, true
		}
		return RecvResult[T]{Value: f.core.recvValue}, true

	default:
		panicf("ChanReceiver.Next", "poll called after task already completed")
		panic("unreachable")
	}
}

// cancel tears down an outstanding Next registration when this future loses
// an AnyOfN race: clears the core's receiverWaiting slot so a subsequent Send
// doesn't try to deliver to (or wake) a receiver that will never poll again,
// mirroring original_source/src/channel_rt.rs's cancel_receiver_fut.
func (f *chanRecvFuture[T]) cancel() {
	if f.state != leafRegistered {
		f.state = leafDone
		return
	}
	if f.core.receiverWaiting && f.core.receiverNode == &f.node {
		f.core.receiverWaiting = false
		f.core.receiverNode = nil
	}
	f.state = leafDone
}
