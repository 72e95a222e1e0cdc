package asyncrt

import "weak"

// diagRegistry is an optional, purely diagnostic table of live rendezvous cores
// (oneshot and channel), for introspection only — nothing on the correctness
// path ever reads it. Unlike its teacher, it carries no mutex: a Runtime and
// everything registered with it live on exactly one goroutine, so the map and
// ring buffer below are safe to mutate directly.
type diagRegistry struct {
	entries map[uint64]diagEntry
	ring    []uint64
	head    int
	nextID  uint64
}

type diagEntry struct {
	kind  string
	alive func() bool
}

func newDiagRegistry() *diagRegistry {
	return &diagRegistry{
		entries: make(map[uint64]diagEntry),
		ring:    make([]uint64, 0, 64),
		nextID:  1,
	}
}

// registerCore records ptr under kind and returns a handle id. The entry is
// considered alive for as long as ptr is reachable from elsewhere in the
// program; once it is garbage collected, Scavenge will reclaim the entry.
func registerCore[T any](r *diagRegistry, kind string, ptr *T) uint64 {
	if r == nil {
		return 0
	}
	wp := weak.Make(ptr)
	id := r.nextID
	r.nextID++
	r.entries[id] = diagEntry{kind: kind, alive: func() bool { return wp.Value() != nil }}
	r.ring = append(r.ring, id)
	return id
}

// Scavenge inspects up to batchSize entries starting from where the previous
// call left off, removing any whose pointer has been garbage collected.
func (r *diagRegistry) Scavenge(batchSize int) {
	if r == nil || batchSize <= 0 || len(r.ring) == 0 {
		return
	}

	start := r.head
	end := min(start+batchSize, len(r.ring))

	write := start
	for i := start; i < end; i++ {
		id := r.ring[i]
		if id == 0 {
			continue
		}
		entry, ok := r.entries[id]
		if !ok || !entry.alive() {
			delete(r.entries, id)
			continue
		}
		r.ring[write] = id
		write++
	}
	copy(r.ring[write:], r.ring[end:])
	r.ring = r.ring[:write+len(r.ring)-end]

	r.head = write
	if r.head >= len(r.ring) {
		r.head = 0
	}
}

// Len reports how many entries are currently tracked (including not-yet-
// scavenged dead ones).
func (r *diagRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
