package dispatch

import (
	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/wire"
)

// fault builds a ProtocolError, reports it to the client as wl_display.error
// and tears the session down, returning the error for Step to propagate.
func (s *Session) fault(objectID uint32, iface string, code uint32, reason string) error {
	return s.emitFault(&ProtocolError{ObjectID: objectID, Interface: iface, Code: code, Reason: reason})
}

// emitFault sends wl_display.error to the downstream client naming pe, then
// tears the session down. wl_display.error is always addressed to the
// display singleton regardless of which side's object actually faulted,
// per the protocol's convention of reporting all errors through it.
func (s *Session) emitFault(pe *ProtocolError) error {
	s.tracef("dispatch: protocol fault: %v", pe)
	enc := wire.NewEncoder()
	enc.PutObject(pe.ObjectID)
	enc.PutUint(pe.Code)
	enc.PutString(pe.Reason, false)
	s.Downstream.EP.EnqueueMessage(wire.PutMessage(nil, displayClientID, displayErrorOpcode, enc.Bytes()), nil)
	s.Close()
	return pe
}

const (
	// displayClientID is wl_display's downstream-side wire id, fixed at 1
	// by SeedDisplay for the lifetime of the session.
	displayClientID = 1

	// Opcodes match wl_display's fixed event layout: error is 0, delete_id
	// is 1.
	displayErrorOpcode    = 0
	displayDeleteIDOpcode = 1
)

// handleDeleteID implements the one hand-rolled translation path in the
// dispatcher: wl_display.delete_id's argument is a bare id, not an object
// reference, so the generic translate-and-forward logic cannot apply to it.
// It retires the id on the upstream side unconditionally, and relays a
// translated delete_id downstream only if the object had ever actually been
// announced to the real client; an id that never crossed is dropped
// silently rather than synthesized.
func (s *Session) handleDeleteID(rawID uint32) {
	ref, found := s.Upstream.IDs.Lookup(rawID)
	if !found {
		s.tracef("dispatch: delete_id for unknown upstream id %d", rawID)
		return
	}
	s.Upstream.IDs.Unbind(rawID)
	if objtable.PartitionOf(rawID) == s.Upstream.IDs.Own.Partition() {
		s.Upstream.IDs.Own.Reclaim(rawID)
	}

	obj, found := s.Arena.Get(ref)
	if !found {
		return
	}
	obj.ServerID = 0

	downstreamID := obj.ClientID
	if downstreamID != 0 {
		enc := wire.NewEncoder()
		enc.PutUint(downstreamID)
		s.Downstream.EP.EnqueueMessage(wire.PutMessage(nil, displayClientID, displayDeleteIDOpcode, enc.Bytes()), nil)
		s.Downstream.IDs.Unbind(downstreamID)
		if objtable.PartitionOf(downstreamID) == s.Downstream.IDs.Own.Partition() {
			s.Downstream.IDs.Own.Reclaim(downstreamID)
		}
		obj.ClientID = 0
	}

	if obj.ClientID == 0 && obj.ServerID == 0 {
		s.Arena.Remove(ref)
	}
}
