// Package registry is the static, closed enumeration of every interface the
// proxy understands: wire name, maximum version, and per-opcode argument
// schema in each direction. It is produced once at process start and is
// read-only afterward — the only process-wide state in the system.
package registry

import (
	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/wire"
)

// Tag identifies an interface. It is the same type objtable.Object carries,
// so a registry lookup result can be stored on an object directly.
type Tag = objtable.Tag

// ArgSchema describes one argument position in a request or event.
type ArgSchema struct {
	Name string
	Type wire.ArgType

	// Nullable applies to String, Array, Object and NewID arguments.
	Nullable bool

	// Interface is the expected interface name for Object and NewID
	// arguments. Empty means either "no constraint" (Object arguments on
	// wl_display.error, which may name any object) or, for a NewID
	// argument, that the interface is carried polymorphically in the
	// message itself (only wl_registry.bind does this) — Polymorphic
	// distinguishes the two cases.
	Interface string

	// Polymorphic marks a new_id argument whose interface name, version
	// and id are carried inline as (string, uint, uint) rather than the
	// schema fixing the interface ahead of time. Only wl_registry.bind
	// uses this.
	Polymorphic bool
}

// OpSchema describes one opcode.
type OpSchema struct {
	Name       string
	Args       []ArgSchema
	Destructor bool
}

// InterfaceSchema describes one interface's wire shape.
type InterfaceSchema struct {
	Name       string
	MaxVersion uint32
	Requests   []OpSchema
	Events     []OpSchema
}
