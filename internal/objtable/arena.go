package objtable

// Ref is a generational handle into an Arena. The zero value never refers to
// a live object (the first real slot's generation starts at 1), so Ref{} is
// used as "no parent" / "no object".
//
// Parent back-references use Ref rather than *Object so that a destroyed
// parent's storage can be reused without leaving a dangling pointer: looking
// a stale Ref up after its slot has been recycled reports "not found"
// instead of returning an unrelated object.
type Ref struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether r is the zero Ref ("no object").
func (r Ref) IsZero() bool { return r.Index == 0 && r.Gen == 0 }

type slot struct {
	obj      *Object
	gen      uint32
	occupied bool
}

// Arena is a generational-index object store. It is the sole strong owner
// of every Object it holds; everything else (parent pointers, endpoint ID
// tables) holds a weak Ref and must re-resolve through the Arena.
type Arena struct {
	slots    []slot
	freeList []uint32
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// Insert stores obj and returns its handle.
func (a *Arena) Insert(obj *Object) Ref {
	if n := len(a.freeList); n > 0 {
		idx := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		s := &a.slots[idx]
		s.obj = obj
		s.occupied = true
		return Ref{Index: idx, Gen: s.gen}
	}
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot{obj: obj, gen: 1, occupied: true})
	return Ref{Index: idx, Gen: 1}
}

// Get resolves ref to its Object. ok is false if ref is stale (the slot was
// removed and possibly reused for a different object since).
func (a *Arena) Get(ref Ref) (*Object, bool) {
	if ref.Gen == 0 || int(ref.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[ref.Index]
	if !s.occupied || s.gen != ref.Gen {
		return nil, false
	}
	return s.obj, true
}

// Remove drops the object at ref, bumping its generation so stale refs can
// no longer resolve, and recycles the slot index.
func (a *Arena) Remove(ref Ref) {
	if ref.Gen == 0 || int(ref.Index) >= len(a.slots) {
		return
	}
	s := &a.slots[ref.Index]
	if !s.occupied || s.gen != ref.Gen {
		return
	}
	s.occupied = false
	s.obj = nil
	s.gen++
	a.freeList = append(a.freeList, ref.Index)
}

// Len reports the number of live objects.
func (a *Arena) Len() int {
	n := 0
	for _, s := range a.slots {
		if s.occupied {
			n++
		}
	}
	return n
}
