package asyncrt

import (
	"testing"
	"time"

	"github.com/joeycumines/go-asyncrt/toyreactor"
	"github.com/stretchr/testify/require"
)

func TestSleep_PanicsWhenDurationExceedsMax(t *testing.T) {
	rt := NewRuntime(toyreactor.New(toyreactor.Emulated))
	require.Panics(t, func() {
		Sleep(rt, MaxTimerDuration+time.Second)
	})
}

func TestSleep_AllowsExactlyMaxDuration(t *testing.T) {
	rt := NewRuntime(toyreactor.New(toyreactor.Emulated))
	require.NotPanics(t, func() {
		Sleep(rt, MaxTimerDuration)
	})
}

func TestSleep_PollAfterCompletionPanics(t *testing.T) {
	reactor := toyreactor.New(toyreactor.Emulated)
	rt := NewRuntime(reactor)

	fut := Sleep(rt, time.Millisecond)
	BlockOn[*toyreactor.ToyReactor, struct{}](rt, fut)

	require.Panics(t, func() {
		fut.Poll(&Context{})
	})
}
