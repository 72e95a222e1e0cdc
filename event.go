package asyncrt

// EventID is an opaque, comparable identity for a single registration with a
// reactor, oneshot, or channel peer. Two EventIDs compare equal if and only if
// they refer to the same eventNode. The zero value is the null id and is never
// produced by onPin.
type EventID struct {
	node *eventNode
}

// IsZero reports whether id is the null event id.
func (id EventID) IsZero() bool {
	return id.node == nil
}

// eventNode is the pinned identity a leaf future registers when it starts
// waiting on something external (a reactor, or a rendezvous peer). It is always
// a field of a heap-allocated leaf future struct reached only by pointer from
// the moment it is first polled — Go's non-moving garbage collector is what
// keeps its address stable, standing in for the pinning guarantee the design
// this module follows relies on.
type eventNode struct {
	// owner is the task whose waker should be used to wake this node. Resolved
	// once, at onPin time, from the polling Context — not re-resolved later,
	// even if the owning task is itself a JoinTasksN child whose waker
	// delegates elsewhere (that redirection happens inside Waker.Wake, not here).
	owner *taskHeader

	// linked is true while this node sits in owner's frozen list.
	linked bool
	prev, next *eventNode
}

// onPin registers n with the task currently polling (identified by cx) and
// returns its EventID. It may be called at most once per node's lifetime.
func (n *eventNode) onPin(cx *Context) EventID {
	n.owner = cx.waker.header
	return EventID{node: n}
}

// waker returns the waker that should be invoked to wake whatever is waiting on
// n's event — bound to n's own EventID, so the resulting dispatch carries
// enough information for AnyOfN-style selection to know this specific node is
// what fired.
func (n *eventNode) waker() Waker {
	return Waker{header: n.owner, event: EventID{node: n}}
}

// isAwokenFor reports whether the event currently being dispatched is this
// exact node's registration.
func (n *eventNode) isAwokenFor(cx *Context) bool {
	return cx.IsAwokenFor(EventID{node: n})
}

// assertUnlinked panics if n is still linked into a frozen list, catching the
// bug where a frozen event is abandoned without ever being redelivered. No
// leaf future in this package calls it: sleepFuture.cancel clears n.linked
// instead of asserting on it.
func (n *eventNode) assertUnlinked(op string) {
	if n.linked {
		panicf(op, "event node dropped while still linked into a frozen list")
	}
}

// pushBack appends node to h's frozen list (FIFO order of arrival).
func (h *taskHeader) pushBack(node *eventNode) {
	node.linked = true
	node.prev = h.frozenTail
	node.next = nil
	if h.frozenTail != nil {
		h.frozenTail.next = node
	} else {
		h.frozenHead = node
	}
	h.frozenTail = node
}

// popFront removes and returns the oldest parked node, or nil if the list is empty.
func (h *taskHeader) popFront() *eventNode {
	node := h.frozenHead
	if node == nil {
		return nil
	}
	h.frozenHead = node.next
	if h.frozenHead != nil {
		h.frozenHead.prev = nil
	} else {
		h.frozenTail = nil
	}
	node.next = nil
	node.linked = false
	return node
}

// hasFrozen reports whether h has any parked events awaiting redelivery.
func (h *taskHeader) hasFrozen() bool {
	return h.frozenHead != nil
}
