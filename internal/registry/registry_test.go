package registry

import (
	"testing"

	"github.com/wlrelay/wlrelay/internal/objtable"
)

func TestDefaultRegistryResolvesCoreInterfaces(t *testing.T) {
	for _, name := range []string{"wl_display", "wl_registry", "wl_callback", "wl_compositor", "river_window_v1"} {
		tag, ok := Default.FromWireName(name)
		if !ok {
			t.Fatalf("expected %s to resolve", name)
		}
		if Default.Name(tag) != name {
			t.Fatalf("round trip mismatch for %s: got %s", name, Default.Name(tag))
		}
	}
}

func TestUnknownInterfaceNameFails(t *testing.T) {
	if _, ok := Default.FromWireName("wl_nonexistent"); ok {
		t.Fatalf("expected unknown interface to fail resolution")
	}
}

func TestCreateObjectRejectsVersionAboveMax(t *testing.T) {
	tag, ok := Default.FromWireName("wl_compositor")
	if !ok {
		t.Fatalf("wl_compositor must resolve")
	}
	if _, err := Default.CreateObject(tag, 99, objtable.ClientHandle{}, objtable.Ref{}); err != ErrMaxVersion {
		t.Fatalf("expected ErrMaxVersion, got %v", err)
	}
	obj, err := Default.CreateObject(tag, 3, objtable.ClientHandle{}, objtable.Ref{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Version != 3 {
		t.Fatalf("expected version 3, got %d", obj.Version)
	}
}

func TestCreateObjectDefaultsVersionToOne(t *testing.T) {
	tag, _ := Default.FromWireName("wl_callback")
	obj, err := Default.CreateObject(tag, 0, objtable.ClientHandle{}, objtable.Ref{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Version != 1 {
		t.Fatalf("expected default version 1, got %d", obj.Version)
	}
}

func TestCreateObjectUnknownInterface(t *testing.T) {
	if _, err := Default.CreateObject(Tag(9999), 1, objtable.ClientHandle{}, objtable.Ref{}); err != ErrUnknownInterface {
		t.Fatalf("expected ErrUnknownInterface, got %v", err)
	}
}

func TestOpSchemaLooksUpRequestAndEvent(t *testing.T) {
	tag, _ := Default.FromWireName("wl_display")
	req, ok := Default.OpSchema(tag, 0, true)
	if !ok || req.Name != "sync" {
		t.Fatalf("expected wl_display request 0 to be sync, got %+v ok=%v", req, ok)
	}
	ev, ok := Default.OpSchema(tag, 1, false)
	if !ok || ev.Name != "delete_id" {
		t.Fatalf("expected wl_display event 1 to be delete_id, got %+v ok=%v", ev, ok)
	}
}

func TestOpSchemaOutOfRangeFails(t *testing.T) {
	tag, _ := Default.FromWireName("wl_display")
	if _, ok := Default.OpSchema(tag, 50, true); ok {
		t.Fatalf("expected out-of-range opcode to fail")
	}
}

func TestDestructorFlagsPropagate(t *testing.T) {
	tag, _ := Default.FromWireName("wl_buffer")
	op, ok := Default.OpSchema(tag, 0, true)
	if !ok || !op.Destructor {
		t.Fatalf("expected wl_buffer.destroy to be flagged as destructor")
	}
}

func TestDuplicateInterfaceNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate interface name")
		}
	}()
	New([]InterfaceSchema{{Name: "dup", MaxVersion: 1}, {Name: "dup", MaxVersion: 1}})
}
