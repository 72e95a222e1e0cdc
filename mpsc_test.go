package asyncrt

import (
	"sort"
	"testing"
	"time"

	"github.com/joeycumines/go-asyncrt/toyreactor"
	"github.com/stretchr/testify/require"
)

// fanInFuture spawns three cloned senders (all parking, since the receiver
// hasn't been polled yet) and one receiver loop into a Scope, exercising the
// FIFO sender queue end to end: every sent value must eventually reach the
// receiver. The assertion sorts what was received, so it checks which values
// arrived, not their order.
type fanInFuture struct {
	rt       *Runtime[*toyreactor.ToyReactor]
	received []int
}

func (f *fanInFuture) Poll(cx *Context) (struct{}, bool) {
	s := NewScope(f.rt)
	sender, receiver := NewChannel[*toyreactor.ToyReactor, int](f.rt)

	for i := 0; i < 3; i++ {
		v := i
		var snd *ChanSender[int]
		if i == 0 {
			snd = sender
		} else {
			snd = sender.Clone()
		}
		Spawn[*toyreactor.ToyReactor, error](s, &sendAndClose[int]{sender: snd, value: v})
	}

	Spawn[*toyreactor.ToyReactor, struct{}](s, &recvAllFuture{receiver: receiver, count: 3, out: &f.received})

	s.Close()
	return struct{}{}, true
}

// sendAndClose sends one value then closes its sender handle, so the channel
// only transitions to closed once every spawned sender has both sent and
// retired.
type sendAndClose[T any] struct {
	sender *ChanSender[T]
	value  T
	send   Future[SendResult[T]]
	state  int
}

func (f *sendAndClose[T]) Poll(cx *Context) (error, bool) {
	switch f.state {
	case 0:
		f.send = f.sender.Send(f.value)
		f.state = 1
		fallthrough
	default:
		v, ready := f.send.Poll(cx)
		if !ready {
			return nil, false
		}
		f.sender.Close()
		return v.Err, true
	}
}

// recvAllFuture drains exactly count values (or until disconnected) from
// receiver, recording them in arrival order into out.
type recvAllFuture struct {
	receiver *ChanReceiver[int]
	count    int
	out      *[]int
	next     Future[RecvResult[int]]
}

func (f *recvAllFuture) Poll(cx *Context) (struct{}, bool) {
	for len(*f.out) < f.count {
		if f.next == nil {
			f.next = f.receiver.Next()
		}
		v, ready := f.next.Poll(cx)
		if !ready {
			return struct{}{}, false
		}
		f.next = nil
		if v.Err != nil {
			return struct{}{}, true
		}
		*f.out = append(*f.out, v.Value)
	}
	return struct{}{}, true
}

func TestChannel_FanInDeliversEveryValue(t *testing.T) {
	rt := NewRuntime(toyreactor.New(toyreactor.Emulated))
	probe := &fanInFuture{rt: rt}
	BlockOn[*toyreactor.ToyReactor, struct{}](rt, probe)

	got := append([]int(nil), probe.received...)
	sort.Ints(got)
	require.Equal(t, []int{0, 1, 2}, got)
}

// closedChannelFuture closes every sender up front (no values ever sent) and
// verifies Next reports disconnection instead of parking forever.
type closedChannelFuture struct {
	rt *Runtime[*toyreactor.ToyReactor]
}

func (f closedChannelFuture) Poll(cx *Context) (RecvResult[int], bool) {
	sender, receiver := NewChannel[*toyreactor.ToyReactor, int](f.rt)
	sender.Close()
	return receiver.Next().Poll(cx)
}

func TestChannel_NextOnClosedChannelReportsDisconnected(t *testing.T) {
	rt := NewRuntime(toyreactor.New(toyreactor.Emulated))
	got := BlockOn[*toyreactor.ToyReactor, RecvResult[int]](rt, closedChannelFuture{rt: rt})
	require.ErrorIs(t, got.Err, ErrDisconnected)
}

func TestChannel_TrySendReportsTryLaterWithNoReceiver(t *testing.T) {
	rt := NewRuntime(toyreactor.New(toyreactor.Emulated))
	sender, _ := NewChannel[*toyreactor.ToyReactor, int](rt)
	require.Equal(t, SendTryLater, sender.TrySend(1))
}

// channelLoseRaceProbeFuture races a fast Sleep against a ChanReceiver.Next
// that nothing ever sends to. The sleep always wins, so Next must be
// cancelled — exercised by checking that a subsequent TrySend on the
// abandoned channel reports SendTryLater instead of delivering to (or
// deadlocking on) a receiver registration that will never poll again.
type channelLoseRaceProbeFuture struct {
	rt     *Runtime[*toyreactor.ToyReactor]
	race   Future[OneOf2[struct{}, RecvResult[int]]]
	sender *ChanSender[int]
	state  int
}

func (f *channelLoseRaceProbeFuture) Poll(cx *Context) (SendAttempt, bool) {
	switch f.state {
	case 0:
		sender, receiver := NewChannel[*toyreactor.ToyReactor, int](f.rt)
		f.sender = sender
		f.race = AnyOf2(Sleep(f.rt, time.Millisecond), receiver.Next())
		f.state = 1
		fallthrough
	case 1:
		if _, ready := f.race.Poll(cx); !ready {
			return SendTryLater, false
		}
		f.state = 2
		fallthrough
	default:
		return f.sender.TrySend(42), true
	}
}

func TestChannel_NextCancelledByLostRaceReportsTrySendLater(t *testing.T) {
	rt := NewRuntime(toyreactor.New(toyreactor.Emulated))
	got := BlockOn[*toyreactor.ToyReactor, SendAttempt](rt, &channelLoseRaceProbeFuture{rt: rt})
	require.Equal(t, SendTryLater, got)
}
