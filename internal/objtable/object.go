// Package objtable implements the per-object state and id bookkeeping
// shared by both endpoints of a session: a generational arena owning every
// Object, the partitioned id allocators, and per-endpoint id tables that
// bind wire ids to objects.
package objtable

import "sync/atomic"

// Tag identifies an interface at runtime. It is assigned by the registry
// that defines the interface set; objtable treats it as an opaque,
// comparable value.
type Tag uint16

// State is an object's position in its creation/binding/destruction
// lifecycle.
type State uint8

const (
	// StateNew is a constructed object with no id on either endpoint yet.
	StateNew State = iota
	// StateBoundOneSide has an id on exactly one endpoint.
	StateBoundOneSide
	// StateBoundBothSides has an id on both endpoints.
	StateBoundBothSides
	// StateDestroyed is terminal: no further request or event may be
	// dispatched to this object's handler.
	StateDestroyed
)

// ClientHandle is a weak, purely informational back-reference to the
// session a downstream-originated object belongs to. objtable never
// dereferences it; it exists so callers (the dispatcher, per-interface
// handlers) can recover "which client does this belong to" without the
// arena holding a strong pointer into session state.
type ClientHandle struct {
	SessionID uint64
}

// Object is one protocol object as seen by both endpoints of a session.
type Object struct {
	Self Ref // this object's own handle, set at insertion

	Tag     Tag
	Version uint32

	// ClientID and ServerID are the wire ids identifying this object on
	// the downstream and upstream endpoints respectively. 0 means unset
	// (the object is not yet visible on that endpoint).
	ClientID uint32
	ServerID uint32

	Owner ClientHandle

	// Parent is the object whose destruction cascades to this one, for
	// objects whose lifetime is subordinate (e.g. a new_id created inside
	// another object's request). The zero Ref means no parent.
	Parent Ref

	// ForwardToServer and ForwardToClient gate the engine's default
	// translate-and-forward behavior per direction. Both default to true;
	// a handler (or policy code) may flip either to suppress forwarding
	// without writing a full custom handler.
	ForwardToServer bool
	ForwardToClient bool

	destroyed atomic.Bool
	handler   handlerSlot
}

// NewObject returns a freshly constructed object in StateNew, with both
// forwarding flags enabled by default.
func NewObject(tag Tag, version uint32, owner ClientHandle, parent Ref) *Object {
	return &Object{
		Tag:             tag,
		Version:         version,
		Owner:           owner,
		Parent:          parent,
		ForwardToServer: true,
		ForwardToClient: true,
	}
}

// State reports the object's current lifecycle state.
func (o *Object) State() State {
	if o.destroyed.Load() {
		return StateDestroyed
	}
	switch {
	case o.ClientID != 0 && o.ServerID != 0:
		return StateBoundBothSides
	case o.ClientID != 0 || o.ServerID != 0:
		return StateBoundOneSide
	default:
		return StateNew
	}
}

// Destroyed reports whether the object has been destroyed. Destruction is
// monotonic: once true, it is never false again.
func (o *Object) Destroyed() bool {
	return o.destroyed.Load()
}

// MarkDestroyed transitions the object to StateDestroyed. It is idempotent;
// calling it on an already-destroyed object is a no-op.
func (o *Object) MarkDestroyed() {
	o.destroyed.Store(true)
}

// SetHandler installs h as the object's handler, replacing any previous
// one. Passing nil reverts to the engine's default forwarding behavior.
func (o *Object) SetHandler(h MessageHandler) {
	o.handler.Set(h)
}

// Handler returns the currently installed handler, or nil.
func (o *Object) Handler() MessageHandler {
	return o.handler.Get()
}

// BorrowHandler attempts to take out a re-entry-guarded borrow of the
// object's handler for the duration of one dispatch. See handlerSlot for
// the re-entry semantics.
func (o *Object) BorrowHandler() (h MessageHandler, done func(), ok bool) {
	return o.handler.TryBorrow()
}
