package asyncrt

import (
	"testing"
	"time"

	"github.com/joeycumines/go-asyncrt/toyreactor"
	"github.com/stretchr/testify/require"
)

func TestWithRuntime_ConstructsRuntimeAndBlocksOnResult(t *testing.T) {
	got := WithRuntime[*toyreactor.ToyReactor, time.Duration, string](
		func() *toyreactor.ToyReactor { return toyreactor.New(toyreactor.Emulated) },
		func(rt *Runtime[*toyreactor.ToyReactor], d time.Duration) Future[string] {
			return &sleepThenReturn{rt: rt, d: d}
		},
		5*time.Millisecond,
	)
	require.Equal(t, "done", got)
}

type sleepThenReturn struct {
	rt    *Runtime[*toyreactor.ToyReactor]
	d     time.Duration
	sleep Future[struct{}]
}

func (f *sleepThenReturn) Poll(cx *Context) (string, bool) {
	if f.sleep == nil {
		f.sleep = Sleep(f.rt, f.d)
	}
	if _, ready := f.sleep.Poll(cx); !ready {
		return "", false
	}
	return "done", true
}
