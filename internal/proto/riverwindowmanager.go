package proto

import (
	"github.com/wlrelay/wlrelay/internal/dispatch"
	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/wire"
)

// RiverWindowManagerV1 wraps the river_window_manager_v1 global: the
// window manager client's single point of contact with the compositor for
// this protocol. The compositor (server side) announces new windows and
// the end of a manage/render sequence on it; the window manager (client
// side) only ever destroys it.
type RiverWindowManagerV1 struct {
	Object *objtable.Object
}

// MsgDestroySince is the version the destroy request has been available
// since.
const MsgDestroySince = uint32(1)

// TrySendDestroy emits the destroy request toward the server. Per the
// object lifecycle in spec.md §4.7, a destroyed receiver fails fast rather
// than enqueuing a message that would never be dispatched.
func (m RiverWindowManagerV1) TrySendDestroy(s Emitter) error {
	if m.Object.Destroyed() {
		return dispatch.ErrReceiverDestroyed
	}
	if err := s.EmitToServer(m.Object, opRiverWindowManagerDestroy, nil, nil); err != nil {
		return err
	}
	m.Object.MarkDestroyed()
	return nil
}

// SendDestroy is the panic-free wrapper around TrySendDestroy: failures are
// reported through trace rather than propagated, matching the
// try_send_*/send_* pairing the original generated code uses.
func (m RiverWindowManagerV1) SendDestroy(s Emitter, trace func(format string, args ...any)) {
	if err := m.TrySendDestroy(s); err != nil && trace != nil {
		trace("river_window_manager_v1.destroy: %v", err)
	}
}

// MsgWindowSince is the version the window event has been available since.
const MsgWindowSince = uint32(1)

// TrySendWindow emits the window event, announcing a new river_window_v1
// new_id to the window manager.
func (m RiverWindowManagerV1) TrySendWindow(s Emitter, window *objtable.Object) error {
	id := objectID(clientID, window)
	if window != nil && id == 0 {
		return ErrReceiverNoClientID
	}
	enc := wire.NewEncoder()
	enc.PutNewIDNumeric(id)
	return s.EmitToClient(m.Object, opRiverWindowManagerWindow, enc.Bytes(), nil)
}

// MsgManageStartSince is the version the manage_start event has been
// available since.
const MsgManageStartSince = uint32(1)

// TrySendManageStart emits the manage_start event, marking the beginning of
// a manage sequence.
func (m RiverWindowManagerV1) TrySendManageStart(s Emitter) error {
	return s.EmitToClient(m.Object, opRiverWindowManagerManageStart, nil, nil)
}

// MsgManageEndSince is the version the manage_end event has been available
// since.
const MsgManageEndSince = uint32(1)

// TrySendManageEnd emits the manage_end event, ending a manage sequence.
func (m RiverWindowManagerV1) TrySendManageEnd(s Emitter) error {
	return s.EmitToClient(m.Object, opRiverWindowManagerManageEnd, nil, nil)
}

// MsgFinishedSince is the version the finished event has been available
// since.
const MsgFinishedSince = uint32(1)

// TrySendFinished emits the finished event: the compositor will send no
// further requests on this object or any river_window_v1 it created.
func (m RiverWindowManagerV1) TrySendFinished(s Emitter) error {
	return s.EmitToClient(m.Object, opRiverWindowManagerFinished, nil, nil)
}

// RiverWindowManagerV1Handler is the user-overridable trait for
// river_window_manager_v1 requests and events. As with river_window_v1,
// each method's bool return is suppressDefault: the dispatcher forwards the
// message after the handler returns unless it is suppressed, so
// DefaultRiverWindowManagerV1Handler's methods are no-ops.
type RiverWindowManagerV1Handler interface {
	HandleDestroy(obj RiverWindowManagerV1) (suppressDefault bool)
	HandleWindow(obj RiverWindowManagerV1, window *objtable.Object) (suppressDefault bool)
	HandleManageStart(obj RiverWindowManagerV1) (suppressDefault bool)
	HandleManageEnd(obj RiverWindowManagerV1) (suppressDefault bool)
	HandleFinished(obj RiverWindowManagerV1) (suppressDefault bool)
}

// DefaultRiverWindowManagerV1Handler is the transparent-forward default:
// every method is a no-op returning false. Embed it and override only the
// methods a policy needs to intercept.
type DefaultRiverWindowManagerV1Handler struct{}

func (DefaultRiverWindowManagerV1Handler) HandleDestroy(RiverWindowManagerV1) bool { return false }
func (DefaultRiverWindowManagerV1Handler) HandleWindow(RiverWindowManagerV1, *objtable.Object) bool {
	return false
}
func (DefaultRiverWindowManagerV1Handler) HandleManageStart(RiverWindowManagerV1) bool { return false }
func (DefaultRiverWindowManagerV1Handler) HandleManageEnd(RiverWindowManagerV1) bool   { return false }
func (DefaultRiverWindowManagerV1Handler) HandleFinished(RiverWindowManagerV1) bool    { return false }

// Opcodes, fixed by the interface's request/event declaration order in
// internal/registry's river_window_manager_v1 schema.
const (
	opRiverWindowManagerDestroy = 0

	opRiverWindowManagerWindow      = 0
	opRiverWindowManagerManageStart = 1
	opRiverWindowManagerManageEnd   = 2
	opRiverWindowManagerFinished    = 3
)

// RiverWindowManagerV1Adapter wires a RiverWindowManagerV1Handler into the
// generic objtable.MessageHandler dispatch surface. Its only object-typed
// argument (window, a new_id) is carried on an event, so only an event-side
// resolver is needed.
type RiverWindowManagerV1Adapter struct {
	Handler      RiverWindowManagerV1Handler
	ResolveEvent ObjectResolver
}

var _ objtable.MessageHandler = (*RiverWindowManagerV1Adapter)(nil)

func (a *RiverWindowManagerV1Adapter) HandleRequest(obj *objtable.Object, opcode uint16, dec *wire.Decoder) (bool, error) {
	m := RiverWindowManagerV1{Object: obj}
	switch opcode {
	case opRiverWindowManagerDestroy:
		return a.Handler.HandleDestroy(m), nil
	default:
		return false, nil
	}
}

func (a *RiverWindowManagerV1Adapter) HandleEvent(obj *objtable.Object, opcode uint16, dec *wire.Decoder) (bool, error) {
	m := RiverWindowManagerV1{Object: obj}
	switch opcode {
	case opRiverWindowManagerWindow:
		id, err := dec.NewIDNumeric()
		if err != nil {
			return false, err
		}
		window, err := resolveObjectArg(a.ResolveEvent, id)
		if err != nil {
			return false, err
		}
		return a.Handler.HandleWindow(m, window), nil
	case opRiverWindowManagerManageStart:
		return a.Handler.HandleManageStart(m), nil
	case opRiverWindowManagerManageEnd:
		return a.Handler.HandleManageEnd(m), nil
	case opRiverWindowManagerFinished:
		return a.Handler.HandleFinished(m), nil
	default:
		return false, nil
	}
}
