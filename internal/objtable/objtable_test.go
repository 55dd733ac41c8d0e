package objtable

import (
	"testing"

	"github.com/wlrelay/wlrelay/internal/wire"
)

func TestArenaInsertGetRemove(t *testing.T) {
	a := NewArena()
	obj := NewObject(1, 1, ClientHandle{}, Ref{})
	ref := a.Insert(obj)
	obj.Self = ref

	got, ok := a.Get(ref)
	if !ok || got != obj {
		t.Fatalf("Get after Insert failed: ok=%v", ok)
	}

	a.Remove(ref)
	if _, ok := a.Get(ref); ok {
		t.Fatalf("Get after Remove should fail")
	}
}

func TestArenaStaleRefAfterReuse(t *testing.T) {
	a := NewArena()
	first := a.Insert(NewObject(1, 1, ClientHandle{}, Ref{}))
	a.Remove(first)

	second := a.Insert(NewObject(2, 1, ClientHandle{}, Ref{}))
	if second.Index != first.Index {
		t.Fatalf("expected slot reuse, got different index")
	}
	if second.Gen == first.Gen {
		t.Fatalf("expected generation to change on reuse")
	}
	if _, ok := a.Get(first); ok {
		t.Fatalf("stale ref must not resolve after reuse")
	}
	if obj, ok := a.Get(second); !ok || obj.Tag != 2 {
		t.Fatalf("fresh ref should resolve to the new object")
	}
}

func TestZeroRefIsNeverValid(t *testing.T) {
	a := NewArena()
	a.Insert(NewObject(1, 1, ClientHandle{}, Ref{}))
	if _, ok := a.Get(Ref{}); ok {
		t.Fatalf("zero Ref must never resolve")
	}
}

func TestAllocatorPartitioning(t *testing.T) {
	client := NewAllocator(PartitionClientAllocated)
	id, err := client.Alloc()
	if err != nil || id != 1 {
		t.Fatalf("id=%d err=%v, want 1,nil", id, err)
	}
	if PartitionOf(id) != PartitionClientAllocated {
		t.Fatalf("expected client partition")
	}

	server := NewAllocator(PartitionServerAllocated)
	sid, err := server.Alloc()
	if err != nil || sid != ServerAllocatedBase {
		t.Fatalf("sid=%x err=%v, want %x,nil", sid, err, ServerAllocatedBase)
	}
	if PartitionOf(sid) != PartitionServerAllocated {
		t.Fatalf("expected server partition")
	}
}

func TestAllocatorReclaimBeforeFreshAlloc(t *testing.T) {
	a := NewAllocator(PartitionClientAllocated)
	first, _ := a.Alloc()
	second, _ := a.Alloc()
	a.Reclaim(first)

	reused, err := a.Alloc()
	if err != nil || reused != first {
		t.Fatalf("expected reclaimed id %d to be reused first, got %d (err=%v)", first, reused, err)
	}
	fresh, err := a.Alloc()
	if err != nil || fresh == second {
		t.Fatalf("expected a new id distinct from %d, got %d", second, fresh)
	}
}

func TestIDTableBindLookupUnbind(t *testing.T) {
	tbl := NewIDTable(PartitionServerAllocated)
	ref := Ref{Index: 3, Gen: 1}
	tbl.Bind(42, ref)

	got, ok := tbl.Lookup(42)
	if !ok || got != ref {
		t.Fatalf("Lookup failed: got=%v ok=%v", got, ok)
	}

	tbl.Unbind(42)
	if _, ok := tbl.Lookup(42); ok {
		t.Fatalf("expected Lookup to fail after Unbind")
	}
}

// fakeHandler is a minimal MessageHandler used to exercise the borrow guard.
type fakeHandler struct{}

func (fakeHandler) HandleRequest(*Object, uint16, *wire.Decoder) (bool, error) { return false, nil }
func (fakeHandler) HandleEvent(*Object, uint16, *wire.Decoder) (bool, error)   { return false, nil }

func TestHandlerBorrowGuardRejectsReentry(t *testing.T) {
	obj := NewObject(1, 1, ClientHandle{}, Ref{})
	obj.SetHandler(fakeHandler{})

	_, done, ok := obj.BorrowHandler()
	if !ok {
		t.Fatalf("first borrow should succeed")
	}
	if _, _, ok := obj.BorrowHandler(); ok {
		t.Fatalf("second concurrent borrow must fail")
	}
	done()
	if _, _, ok := obj.BorrowHandler(); !ok {
		t.Fatalf("borrow should succeed again after release")
	}
}

func TestObjectStateTransitions(t *testing.T) {
	obj := NewObject(1, 1, ClientHandle{}, Ref{})
	if obj.State() != StateNew {
		t.Fatalf("expected StateNew")
	}
	obj.ClientID = 5
	if obj.State() != StateBoundOneSide {
		t.Fatalf("expected StateBoundOneSide")
	}
	obj.ServerID = 0xff000001
	if obj.State() != StateBoundBothSides {
		t.Fatalf("expected StateBoundBothSides")
	}
	obj.MarkDestroyed()
	if obj.State() != StateDestroyed {
		t.Fatalf("expected StateDestroyed")
	}
	if !obj.Destroyed() {
		t.Fatalf("expected Destroyed() true")
	}
}
