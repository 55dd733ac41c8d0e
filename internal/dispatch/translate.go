package dispatch

import (
	"errors"

	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/registry"
	"github.com/wlrelay/wlrelay/internal/wire"
	"golang.org/x/sys/unix"
)

// translated is one message re-encoded for the destination endpoint's id
// space: the target object's destination-side wire id, the re-encoded body,
// and the destination-side fd list in declaration order.
type translated struct {
	target uint32
	body   []byte
	fds    []int
}

// translate decodes body against op's schema, resolving and rewriting every
// object, new_id and fd argument into dst's numbering, and returns the
// re-encoded message ready to enqueue on dst. A malformed argument or a
// protocol-level violation (bad partition, wrong interface, a version the
// registry rejects) is reported as a *ProtocolError; a new_id version above
// the interface's maximum is capped by bindNewID rather than rejected.
// Anything else (id space exhaustion) is returned unwrapped as a
// session-fatal transport error.
func (s *Session) translate(src, dst *Side, obj *objtable.Object, op registry.OpSchema, body []byte, fds []int) (translated, error) {
	dec := wire.NewDecoder(body, fds)
	enc := wire.NewEncoder()

	for _, arg := range op.Args {
		switch arg.Type {
		case wire.Int:
			v, err := dec.Int()
			if err != nil {
				return translated{}, s.argFault(obj, op, err)
			}
			enc.PutInt(v)

		case wire.Uint:
			v, err := dec.Uint()
			if err != nil {
				return translated{}, s.argFault(obj, op, err)
			}
			enc.PutUint(v)

		case wire.Fixed:
			v, err := dec.FixedArg()
			if err != nil {
				return translated{}, s.argFault(obj, op, err)
			}
			enc.PutFixedArg(v)

		case wire.String:
			v, isNull, err := dec.String()
			if err != nil {
				return translated{}, s.argFault(obj, op, err)
			}
			if isNull && !arg.Nullable {
				return translated{}, s.argProtoFault(obj, "unexpected null string argument")
			}
			enc.PutString(v, isNull)

		case wire.Array:
			v, isNull, err := dec.Array()
			if err != nil {
				return translated{}, s.argFault(obj, op, err)
			}
			if isNull && !arg.Nullable {
				return translated{}, s.argProtoFault(obj, "unexpected null array argument")
			}
			enc.PutArray(v, isNull)

		case wire.FD:
			fd, err := dec.FD()
			if err != nil {
				return translated{}, s.argFault(obj, op, err)
			}
			enc.PutFD(fd)

		case wire.Object:
			wireID, err := dec.Object()
			if err != nil {
				return translated{}, s.argFault(obj, op, err)
			}
			if wireID == 0 {
				if !arg.Nullable {
					return translated{}, s.argProtoFault(obj, "unexpected null object argument")
				}
				enc.PutObject(0)
				continue
			}
			oref, found := src.IDs.Lookup(wireID)
			if !found {
				return translated{}, s.argProtoFault(obj, "object argument names unknown id")
			}
			oobj, found := s.Arena.Get(oref)
			if !found {
				return translated{}, s.argProtoFault(obj, "object argument names unknown id")
			}
			if arg.Interface != "" && s.Registry.Name(oobj.Tag) != arg.Interface {
				return translated{}, s.argProtoFault(obj, "object argument has wrong interface")
			}
			targetID, berr := s.ensureBound(dst, oobj)
			if berr != nil {
				return translated{}, berr
			}
			enc.PutObject(targetID)

		case wire.NewID:
			if arg.Polymorphic {
				ifaceName, version, wireID, derr := dec.PolymorphicNewID()
				if derr != nil {
					return translated{}, s.argFault(obj, op, derr)
				}
				newObj, dstID, terr := s.bindNewID(src, dst, obj, wireID, ifaceName, version)
				if terr != nil {
					return translated{}, terr
				}
				enc.PutPolymorphicNewID(ifaceName, newObj.Version, dstID)
			} else {
				wireID, derr := dec.NewIDNumeric()
				if derr != nil {
					return translated{}, s.argFault(obj, op, derr)
				}
				_, dstID, terr := s.bindNewID(src, dst, obj, wireID, arg.Interface, 0)
				if terr != nil {
					return translated{}, terr
				}
				enc.PutNewIDNumeric(dstID)
			}
		}
	}

	target, err := s.ensureBound(dst, obj)
	if err != nil {
		return translated{}, err
	}
	return translated{target: target, body: enc.Bytes(), fds: enc.Fds}, nil
}

// bindNewID materializes the object a new_id argument announces: validates
// the wire id falls in the partition the remote peer (not the proxy) owns
// on src, constructs the object at the given or inherited version, binds it
// on src, and eagerly resolves its dst-side id so the re-encoded message can
// carry it inline.
//
// requestedVersion of 0 means "inherit from the creating object", the rule
// ordinary (non-bind) new_id arguments follow since they carry no explicit
// version on the wire.
func (s *Session) bindNewID(src, dst *Side, creator *objtable.Object, wireID uint32, ifaceName string, requestedVersion uint32) (*objtable.Object, uint32, error) {
	if objtable.PartitionOf(wireID) != src.IDs.Own.Partition().Other() {
		return nil, 0, s.argProtoFault(creator, "new_id argument uses a partition it does not own")
	}
	tag, found := s.Registry.FromWireName(ifaceName)
	if !found {
		return nil, 0, &ProtocolError{ObjectID: creator.ClientID, Interface: s.Registry.Name(creator.Tag), Code: ErrCodeInvalidMethod, Reason: "unknown interface in new_id: " + ifaceName}
	}
	schema, _ := s.Registry.Schema(tag)
	version := requestedVersion
	if version == 0 {
		version = creator.Version
	}
	if version > schema.MaxVersion {
		version = schema.MaxVersion
	}
	newObj, err := s.Registry.CreateObject(tag, version, creator.Owner, creator.Self)
	if err != nil {
		if errors.Is(err, registry.ErrMaxVersion) || errors.Is(err, registry.ErrUnknownInterface) {
			return nil, 0, &ProtocolError{ObjectID: creator.ClientID, Interface: s.Registry.Name(creator.Tag), Code: ErrCodeMaxVersion, Reason: err.Error()}
		}
		return nil, 0, err
	}
	ref := s.Arena.Insert(newObj)
	newObj.Self = ref
	s.bindSide(src, newObj, wireID)

	dstID, err := s.ensureBound(dst, newObj)
	if err != nil {
		return nil, 0, err
	}
	if s.OnObjectCreated != nil {
		s.OnObjectCreated(newObj)
	}
	return newObj, dstID, nil
}

// ensureBound returns obj's wire id on side, lazily allocating and binding
// one from side's own partition if obj has not yet been announced there.
func (s *Session) ensureBound(side *Side, obj *objtable.Object) (uint32, error) {
	if id := s.sideID(side, obj); id != 0 {
		return id, nil
	}
	id, err := side.IDs.Own.Alloc()
	if err != nil {
		return 0, err
	}
	s.bindSide(side, obj, id)
	return id, nil
}

func (s *Session) sideID(side *Side, obj *objtable.Object) uint32 {
	if side == s.Downstream {
		return obj.ClientID
	}
	return obj.ServerID
}

func (s *Session) bindSide(side *Side, obj *objtable.Object, id uint32) {
	if side == s.Downstream {
		obj.ClientID = id
	} else {
		obj.ServerID = id
	}
	side.IDs.Bind(id, obj.Self)
}

func (s *Session) argFault(obj *objtable.Object, op registry.OpSchema, cause error) error {
	return &ProtocolError{
		ObjectID:  obj.ClientID,
		Interface: s.Registry.Name(obj.Tag),
		Code:      ErrCodeInvalidMethod,
		Reason:    "malformed argument for " + op.Name + ": " + cause.Error(),
	}
}

func (s *Session) argProtoFault(obj *objtable.Object, reason string) error {
	return &ProtocolError{
		ObjectID:  obj.ClientID,
		Interface: s.Registry.Name(obj.Tag),
		Code:      ErrCodeInvalidObject,
		Reason:    reason,
	}
}

func (s *Session) reclaimFDs(fds []int) {
	for _, fd := range fds {
		_ = unix.Close(fd)
	}
}
