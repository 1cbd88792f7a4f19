package sim

// table is the entity arena. Slots are reused through a free list and
// each reuse bumps the slot generation so old handles go stale.
type table struct {
	slots  []slot
	free   []uint32
	counts [numCategories]int
}

type slot struct {
	ent *Entity
	gen uint32
}

// insert places e in a slot and assigns its handle.
func (t *table) insert(e *Entity) Handle {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot{})
	}

	s := &t.slots[idx]
	s.gen++
	s.ent = e
	e.handle = Handle{index: idx, gen: s.gen}
	e.alive = true
	t.counts[e.category]++
	return e.handle
}

// get returns the live entity for h, or nil if h is stale or dead.
func (t *table) get(h Handle) *Entity {
	if !h.Valid() || int(h.index) >= len(t.slots) {
		return nil
	}
	s := t.slots[h.index]
	if s.gen != h.gen || s.ent == nil || !s.ent.alive {
		return nil
	}
	return s.ent
}

// kill marks the entity dead without freeing its slot. Dead entities are
// invisible to get and each.
func (t *table) kill(e *Entity) {
	if !e.alive {
		return
	}
	e.alive = false
	t.counts[e.category]--
}

// release frees the slot held by a dead entity.
func (t *table) release(e *Entity) {
	idx := e.handle.index
	if int(idx) >= len(t.slots) || t.slots[idx].ent != e {
		return
	}
	t.slots[idx].ent = nil
	t.free = append(t.free, idx)
}

// each calls fn for every live entity in slot order. Entities inserted
// during iteration may or may not be visited.
func (t *table) each(fn func(e *Entity)) {
	for i := 0; i < len(t.slots); i++ {
		if e := t.slots[i].ent; e != nil && e.alive {
			fn(e)
		}
	}
}

// count returns the number of live entities in category c.
func (t *table) count(c Category) int {
	return t.counts[c]
}

// len returns the number of live entities.
func (t *table) len() int {
	n := 0
	for _, c := range t.counts {
		n += c
	}
	return n
}
