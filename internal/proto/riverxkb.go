package proto

import (
	"github.com/wlrelay/wlrelay/internal/dispatch"
	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/wire"
)

// RiverXkbConfigV1 wraps the river_xkb_config_v1 global, the companion
// xkbcommon-keymap-configuration protocol the original proxy declares
// alongside river_window_management_v1 (see river_xkb_config_v1.rs's
// module declaration in the source this spec traces to — only the module
// layout survived distillation, not the per-keyboard opcodes). It is kept
// here deliberately minimal: a single destructor opcode, as a second,
// much smaller sample of the generated shape next to river_window_v1's
// large one.
type RiverXkbConfigV1 struct {
	Object *objtable.Object
}

const opRiverXkbConfigDestroy = 0

// MsgDestroyXkbConfigSince is the version the destroy request has been
// available since.
const MsgDestroyXkbConfigSince = uint32(1)

// TrySendDestroy releases the global.
func (x RiverXkbConfigV1) TrySendDestroy(s Emitter) error {
	if x.Object.Destroyed() {
		return dispatch.ErrReceiverDestroyed
	}
	if err := s.EmitToServer(x.Object, opRiverXkbConfigDestroy, nil, nil); err != nil {
		return err
	}
	x.Object.MarkDestroyed()
	return nil
}

func (x RiverXkbConfigV1) SendDestroy(s Emitter, trace func(format string, args ...any)) {
	if err := x.TrySendDestroy(s); err != nil && trace != nil {
		trace("river_xkb_config_v1.destroy: %v", err)
	}
}

// RiverXkbConfigV1Handler is the user-overridable trait for
// river_xkb_config_v1's one opcode.
type RiverXkbConfigV1Handler interface {
	HandleDestroy(obj RiverXkbConfigV1) (suppressDefault bool)
}

// DefaultRiverXkbConfigV1Handler is a no-op, leaving the engine's forward
// of destroy unmodified.
type DefaultRiverXkbConfigV1Handler struct{}

func (DefaultRiverXkbConfigV1Handler) HandleDestroy(RiverXkbConfigV1) bool { return false }

// RiverXkbConfigV1Adapter wires a RiverXkbConfigV1Handler into the generic
// objtable.MessageHandler dispatch surface.
type RiverXkbConfigV1Adapter struct {
	Handler RiverXkbConfigV1Handler
}

var _ objtable.MessageHandler = (*RiverXkbConfigV1Adapter)(nil)

func (a *RiverXkbConfigV1Adapter) HandleRequest(obj *objtable.Object, opcode uint16, dec *wire.Decoder) (bool, error) {
	if opcode == opRiverXkbConfigDestroy {
		return a.Handler.HandleDestroy(RiverXkbConfigV1{Object: obj}), nil
	}
	return false, nil
}

func (a *RiverXkbConfigV1Adapter) HandleEvent(obj *objtable.Object, opcode uint16, dec *wire.Decoder) (bool, error) {
	return false, nil
}
