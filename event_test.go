package asyncrt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventID_ZeroValueIsZero(t *testing.T) {
	var id EventID
	require.True(t, id.IsZero())
}

func TestEventID_OnPinProducesNonZeroDistinctIDs(t *testing.T) {
	var a, b eventNode
	hdr := &taskHeader{}
	cx := &Context{waker: Waker{header: hdr}}

	idA := a.onPin(cx)
	idB := b.onPin(cx)

	require.False(t, idA.IsZero())
	require.False(t, idB.IsZero())
	require.NotEqual(t, idA, idB)
	require.Equal(t, idA, EventID{node: &a})
}

func TestEventNode_AssertUnlinkedPanicsWhileLinked(t *testing.T) {
	hdr := &taskHeader{}
	var n eventNode
	hdr.pushBack(&n)

	require.Panics(t, func() { n.assertUnlinked("test") })

	hdr.popFront()
	require.NotPanics(t, func() { n.assertUnlinked("test") })
}

func TestTaskHeader_FrozenListIsFIFO(t *testing.T) {
	hdr := &taskHeader{}
	var a, b, c eventNode

	require.False(t, hdr.hasFrozen())

	hdr.pushBack(&a)
	hdr.pushBack(&b)
	hdr.pushBack(&c)
	require.True(t, hdr.hasFrozen())

	require.Same(t, &a, hdr.popFront())
	require.Same(t, &b, hdr.popFront())
	require.Same(t, &c, hdr.popFront())
	require.False(t, hdr.hasFrozen())
	require.Nil(t, hdr.popFront())
}
