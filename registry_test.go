package asyncrt

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDiagRegistry_NilReceiverIsInert(t *testing.T) {
	var r *diagRegistry
	require.Equal(t, 0, r.Len())
	require.NotPanics(t, func() { r.Scavenge(64) })
	require.Zero(t, registerCore(r, "oneshot", new(int)))
}

func TestDiagRegistry_RegisterCoreAddsEntry(t *testing.T) {
	r := newDiagRegistry()
	ptr := new(int)
	id := registerCore(r, "oneshot", ptr)

	require.NotZero(t, id)
	require.Equal(t, 1, r.Len())
	runtime.KeepAlive(ptr)
}

func TestDiagRegistry_ScavengeZeroBatchIsNoop(t *testing.T) {
	r := newDiagRegistry()
	ptr := new(int)
	registerCore(r, "oneshot", ptr)

	r.Scavenge(0)
	require.Equal(t, 1, r.Len())
	runtime.KeepAlive(ptr)
}

func TestDiagRegistry_ScavengeEmptyRegistryIsNoop(t *testing.T) {
	r := newDiagRegistry()
	require.NotPanics(t, func() { r.Scavenge(100) })
	require.Equal(t, 0, r.Len())
}

// TestDiagRegistry_WeakReferenceGCCleanup exercises the GC-driven reclamation
// path: an entry whose pointer has become unreachable should be pruned by the
// next Scavenge call. GC timing is inherently non-deterministic, so this logs
// the outcome rather than failing on it.
func TestDiagRegistry_WeakReferenceGCCleanup(t *testing.T) {
	r := newDiagRegistry()

	var idGC uint64
	func() {
		doomed := new(int)
		idGC = registerCore(r, "channel", doomed)
	}()

	for range 5 {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}

	r.Scavenge(100)

	_, found := r.entries[idGC]
	if found {
		t.Log("Note: GC'd entry was not cleaned up (non-deterministic GC behavior)")
	} else {
		t.Log("GC'd entry was successfully cleaned up")
	}
}
