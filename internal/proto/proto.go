// Package proto holds the per-interface generated-style code described in
// spec.md §4.7: a concrete Go type per interface wrapping the generic
// *objtable.Object, typed send_*/try_send_* emitters, a Handler interface
// with default (embeddable) no-op bodies, and Since version constants.
//
// The shape mirrors the original proxy's generated Rust
// (ConcreteObject + HandlerHolder + try_send_*/send_* pairs +
// MSG__*__SINCE constants in river_window_v1.rs): a fallible TrySend that
// surfaces a typed error, and a Send that swallows it via the session's
// trace hook instead of panicking. Unlike the generic translate-and-forward
// path in internal/dispatch, these types exist for handler code that wants
// to originate traffic on an object rather than merely forward what arrived
// — e.g. synthesizing a river_window_v1.closed event from policy code
// layered on top of the proxy.
//
// Only the interfaces this proxy was originally built to intermediate
// (river_window_manager_v1, river_window_v1, river_node_v1 and the
// single-opcode river_xkb_config_v1) get this treatment; the rest of the
// registry's interfaces are exercised purely through the generic dispatch
// engine, exactly as spec.md §1 describes the per-interface schema data as
// "not specified here" beyond what the core consumes.
package proto

import (
	"errors"

	"github.com/wlrelay/wlrelay/internal/dispatch"
	"github.com/wlrelay/wlrelay/internal/objtable"
)

// ObjectResolver looks up the *objtable.Object bound to a wire id on the
// side the incoming message was decoded from. An Adapter's HandleRequest
// sees wire ids in the downstream endpoint's numbering (the message arrived
// from there, pre-translation); HandleEvent sees the upstream endpoint's. The
// session supplies this closed over the appropriate side's IDTable and
// Arena — Adapters never touch those directly, keeping this package free
// of any dependency on dispatch.Session's internals beyond the Emitter
// surface.
type ObjectResolver func(wireID uint32) (*objtable.Object, bool)

// resolveObjectArg turns a decoded object/new_id wire id into an
// *objtable.Object, tolerating the nullable-null encoding (id 0 resolves
// to a nil *objtable.Object with no error).
func resolveObjectArg(resolve ObjectResolver, id uint32) (*objtable.Object, error) {
	if id == 0 {
		return nil, nil
	}
	obj, ok := resolve(id)
	if !ok {
		return nil, dispatch.ErrWrongSession
	}
	return obj, nil
}

// ErrReceiverNoClientID is returned by a try_send_* emitter addressing the
// downstream endpoint when an object or new_id argument it must name there
// has no client-side id.
var ErrReceiverNoClientID = errors.New("proto: receiver has no client id")

// ErrReceiverNoServerID is the upstream-endpoint analogue of
// ErrReceiverNoClientID.
var ErrReceiverNoServerID = errors.New("proto: receiver has no server id")

// Emitter is the subset of *dispatch.Session a generated type needs to send
// messages: resolve ids lazily and enqueue on either endpoint. Depending on
// the narrower interface rather than *dispatch.Session directly keeps this
// package's types testable against a fake in unit tests.
type Emitter interface {
	EmitToClient(obj *objtable.Object, opcode uint16, body []byte, fds []int) error
	EmitToServer(obj *objtable.Object, opcode uint16, body []byte, fds []int) error
	SameSession(obj *objtable.Object) bool
}

var _ Emitter = (*dispatch.Session)(nil)

// checkSameSession validates every object-typed argument of a try_send_*
// call was allocated from the same session as the receiver, mirroring the
// "object argument belongs to a different session" failure spec.md §4.7
// requires of generated emitters.
func checkSameSession(s Emitter, objs ...*objtable.Object) error {
	for _, o := range objs {
		if o == nil {
			continue
		}
		if !s.SameSession(o) {
			return dispatch.ErrWrongSession
		}
	}
	return nil
}

// objectID returns obj's wire id for the object-typed argument encoding, or
// 0 (the nullable-null encoding) if obj is nil.
func objectID(side func(*objtable.Object) uint32, obj *objtable.Object) uint32 {
	if obj == nil {
		return 0
	}
	return side(obj)
}

func clientID(o *objtable.Object) uint32 { return o.ClientID }
func serverID(o *objtable.Object) uint32 { return o.ServerID }
