package asyncrt

import (
	"testing"
	"time"

	"github.com/joeycumines/go-asyncrt/toyreactor"
	"github.com/stretchr/testify/require"
)

func TestAnyOf2_FasterBranchWinsAndCancelsTheOther(t *testing.T) {
	reactor := toyreactor.New(toyreactor.Emulated)
	rt := NewRuntime(reactor)

	got := BlockOn[*toyreactor.ToyReactor, OneOf2[struct{}, struct{}]](rt, &anyOf2Probe{rt: rt})
	require.Equal(t, 0, got.Index)

	// The slower branch's timer must have been cancelled rather than left
	// registered: the fast timer fired and the slow one is flagged cancelled,
	// so no live timer remains and Wait panics.
	require.PanicsWithValue(t, "toyreactor: Wait called with no timers registered", func() {
		reactor.Wait()
	})
}

type anyOf2Probe struct {
	rt   *Runtime[*toyreactor.ToyReactor]
	race Future[OneOf2[struct{}, struct{}]]
}

func (f *anyOf2Probe) Poll(cx *Context) (OneOf2[struct{}, struct{}], bool) {
	if f.race == nil {
		fast := Sleep(f.rt, 1*time.Millisecond)
		slow := Sleep(f.rt, 50*time.Millisecond)
		f.race = AnyOf2(fast, slow)
	}
	return f.race.Poll(cx)
}

func TestAnyOfSlice_FirstReadyWinsAmongManyBranches(t *testing.T) {
	rt := NewRuntime(toyreactor.New(toyreactor.Emulated))
	got := BlockOn[*toyreactor.ToyReactor, AnyOfResult[struct{}]](rt, &anyOfSliceProbe{rt: rt})
	require.Equal(t, 2, got.Index)
}

type anyOfSliceProbe struct {
	rt   *Runtime[*toyreactor.ToyReactor]
	race Future[AnyOfResult[struct{}]]
}

func (f *anyOfSliceProbe) Poll(cx *Context) (AnyOfResult[struct{}], bool) {
	if f.race == nil {
		futs := []Future[struct{}]{
			Sleep(f.rt, 30*time.Millisecond),
			Sleep(f.rt, 20*time.Millisecond),
			Sleep(f.rt, 2*time.Millisecond),
			Sleep(f.rt, 40*time.Millisecond),
		}
		f.race = AnyOfSlice(futs)
	}
	return f.race.Poll(cx)
}

func TestAnyOfSlice_PanicsWithNoBranches(t *testing.T) {
	require.Panics(t, func() {
		AnyOfSlice[struct{}](nil)
	})
}
