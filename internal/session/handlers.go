package session

import (
	"github.com/wlrelay/wlrelay/internal/dispatch"
	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/proto"
)

// installDefaultHandlers wires sess.OnObjectCreated to attach the
// internal/proto transparent-forward handler to every object of an
// interface internal/proto knows how to intercept. Every other interface
// is left with a nil handler slot, which dispatch.Session.Step treats as
// "use the engine's default forwarding" — exactly the same behavior the
// attached handlers produce, but without the per-message type switch.
// Attaching them anyway demonstrates the generated-style handler surface
// end to end and gives a caller a concrete struct to embed and override.
func installDefaultHandlers(sess *dispatch.Session) {
	sess.OnObjectCreated = func(obj *objtable.Object) {
		switch sess.Registry.Name(obj.Tag) {
		case "river_window_manager_v1":
			obj.SetHandler(&proto.RiverWindowManagerV1Adapter{
				Handler:      proto.DefaultRiverWindowManagerV1Handler{},
				ResolveEvent: sess.Upstream.Resolve,
			})
		case "river_window_v1":
			obj.SetHandler(&proto.RiverWindowV1Adapter{
				Handler:        proto.DefaultRiverWindowV1Handler{},
				ResolveRequest: sess.Downstream.Resolve,
				ResolveEvent:   sess.Upstream.Resolve,
			})
		case "river_node_v1":
			obj.SetHandler(&proto.RiverNodeV1Adapter{
				Handler: proto.DefaultRiverNodeV1Handler{},
			})
		case "river_xkb_config_v1":
			obj.SetHandler(&proto.RiverXkbConfigV1Adapter{
				Handler: proto.DefaultRiverXkbConfigV1Handler{},
			})
		}
	}
}
