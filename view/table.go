// SPDX-License-Identifier: Unlicense OR MIT

package view

// A Handle is a weak reference to a View. A Handle remains valid until
// its View is removed from the tree or its window is closed, after
// which lookups report failure instead of reaching freed state.
//
// The zero Handle never resolves.
type Handle struct {
	idx uint32
	gen uint32
}

// Valid reports whether h was ever issued by a Table. It says nothing
// about whether the referent is still alive; use Table.Get for that.
func (h Handle) Valid() bool {
	return h.gen != 0
}

// A Table issues generation checked handles for views. Slots are
// recycled, with the generation bumped on every drop so stale handles
// from a previous occupant miss.
type Table struct {
	slots []slot
	free  []uint32
}

type slot struct {
	gen  uint32
	view *View
}

// Put registers v and returns a live handle for it.
func (t *Table) Put(v *View) Handle {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot{})
		idx = uint32(len(t.slots) - 1)
	}
	s := &t.slots[idx]
	if s.gen == 0 {
		s.gen = 1
	}
	s.view = v
	return Handle{idx: idx, gen: s.gen}
}

// Get resolves h, or returns nil if the referent is gone.
func (t *Table) Get(h Handle) *View {
	if !h.Valid() || int(h.idx) >= len(t.slots) {
		return nil
	}
	s := &t.slots[h.idx]
	if s.gen != h.gen {
		return nil
	}
	return s.view
}

// Drop invalidates h. Any copies of h held elsewhere stop resolving.
// Dropping a dead handle is a no-op.
func (t *Table) Drop(h Handle) {
	if t.Get(h) == nil {
		return
	}
	s := &t.slots[h.idx]
	s.view = nil
	s.gen++
	t.free = append(t.free, h.idx)
}
