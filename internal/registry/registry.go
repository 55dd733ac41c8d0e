package registry

import (
	"errors"

	"github.com/wlrelay/wlrelay/internal/objtable"
)

var (
	// ErrUnknownInterface reports that a wire name (from wl_registry.bind,
	// or any other source of interface names) does not match any compiled-in
	// interface.
	ErrUnknownInterface = errors.New("registry: unknown interface")

	// ErrMaxVersion reports a requested version greater than the
	// interface's compile-time maximum.
	ErrMaxVersion = errors.New("registry: version exceeds interface maximum")
)

// Registry is a closed, immutable-after-construction set of interfaces.
type Registry struct {
	schemas []*InterfaceSchema // index 0 unused; tags start at 1
	byName  map[string]Tag
}

// New builds a Registry from entries, assigning each a Tag in slice order
// starting at 1. Panics on a duplicate name: this is process-startup data,
// not runtime input.
func New(entries []InterfaceSchema) *Registry {
	r := &Registry{
		schemas: make([]*InterfaceSchema, 1, len(entries)+1),
		byName:  make(map[string]Tag, len(entries)),
	}
	for i := range entries {
		e := entries[i]
		tag := Tag(len(r.schemas))
		if _, dup := r.byName[e.Name]; dup {
			panic("registry: duplicate interface name " + e.Name)
		}
		r.schemas = append(r.schemas, &e)
		r.byName[e.Name] = tag
	}
	return r
}

// FromWireName resolves a wire interface name to its Tag.
func (r *Registry) FromWireName(name string) (Tag, bool) {
	tag, ok := r.byName[name]
	return tag, ok
}

// Schema returns the schema for tag.
func (r *Registry) Schema(tag Tag) (*InterfaceSchema, bool) {
	if int(tag) <= 0 || int(tag) >= len(r.schemas) {
		return nil, false
	}
	return r.schemas[tag], true
}

// Name returns the wire name for tag, or "" if unknown.
func (r *Registry) Name(tag Tag) string {
	if s, ok := r.Schema(tag); ok {
		return s.Name
	}
	return ""
}

// CreateObject constructs a fresh object of the given interface at the
// given version, failing if the interface is unknown or the version
// exceeds its compile-time maximum.
func (r *Registry) CreateObject(tag Tag, version uint32, owner objtable.ClientHandle, parent objtable.Ref) (*objtable.Object, error) {
	schema, ok := r.Schema(tag)
	if !ok {
		return nil, ErrUnknownInterface
	}
	if version == 0 {
		version = 1
	}
	if version > schema.MaxVersion {
		return nil, ErrMaxVersion
	}
	return objtable.NewObject(tag, version, owner, parent), nil
}

// OpSchema looks up the schema for one opcode in one direction.
func (r *Registry) OpSchema(tag Tag, opcode uint16, isRequest bool) (OpSchema, bool) {
	schema, ok := r.Schema(tag)
	if !ok {
		return OpSchema{}, false
	}
	ops := schema.Events
	if isRequest {
		ops = schema.Requests
	}
	if int(opcode) < 0 || int(opcode) >= len(ops) {
		return OpSchema{}, false
	}
	return ops[opcode], true
}
