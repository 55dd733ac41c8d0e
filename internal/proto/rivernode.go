package proto

import (
	"github.com/wlrelay/wlrelay/internal/dispatch"
	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/wire"
)

// RiverNodeV1 wraps a river_node_v1 object: a handle into the compositor's
// scene-graph node hierarchy for a window, created via
// river_window_v1.get_node. It has no events; requests are destroy only.
type RiverNodeV1 struct {
	Object *objtable.Object
}

const opRiverNodeDestroy = 0

// MsgDestroyNodeSince is the version the destroy request has been available
// since.
const MsgDestroyNodeSince = uint32(1)

// TrySendDestroy releases the node handle.
func (n RiverNodeV1) TrySendDestroy(s Emitter) error {
	if n.Object.Destroyed() {
		return dispatch.ErrReceiverDestroyed
	}
	if err := s.EmitToServer(n.Object, opRiverNodeDestroy, nil, nil); err != nil {
		return err
	}
	n.Object.MarkDestroyed()
	return nil
}

func (n RiverNodeV1) SendDestroy(s Emitter, trace func(format string, args ...any)) {
	if err := n.TrySendDestroy(s); err != nil && trace != nil {
		trace("river_node_v1.destroy: %v", err)
	}
}

// RiverNodeV1Handler is the user-overridable trait for river_node_v1's one
// opcode. suppressDefault follows the same convention as river_window_v1's
// trait: the dispatcher forwards the message after the handler returns,
// unless the handler suppresses it.
type RiverNodeV1Handler interface {
	HandleDestroy(obj RiverNodeV1) (suppressDefault bool)
}

// DefaultRiverNodeV1Handler is a no-op, leaving the engine's forward of
// destroy unmodified.
type DefaultRiverNodeV1Handler struct{}

func (DefaultRiverNodeV1Handler) HandleDestroy(RiverNodeV1) bool { return false }

// RiverNodeV1Adapter wires a RiverNodeV1Handler into the generic
// objtable.MessageHandler dispatch surface.
type RiverNodeV1Adapter struct {
	Handler RiverNodeV1Handler
}

var _ objtable.MessageHandler = (*RiverNodeV1Adapter)(nil)

func (a *RiverNodeV1Adapter) HandleRequest(obj *objtable.Object, opcode uint16, dec *wire.Decoder) (bool, error) {
	if opcode == opRiverNodeDestroy {
		return a.Handler.HandleDestroy(RiverNodeV1{Object: obj}), nil
	}
	return false, nil
}

func (a *RiverNodeV1Adapter) HandleEvent(obj *objtable.Object, opcode uint16, dec *wire.Decoder) (bool, error) {
	return false, nil
}
