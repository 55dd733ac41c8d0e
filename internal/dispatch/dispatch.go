package dispatch

import (
	"github.com/wlrelay/wlrelay/internal/registry"
	"github.com/wlrelay/wlrelay/internal/wire"
)

// Direction names which socket a message is being read from.
type Direction uint8

const (
	// FromClient: downstream → upstream. Always a request.
	FromClient Direction = iota
	// FromServer: upstream → downstream. Always an event.
	FromServer
)

func (s *Session) sides(dir Direction) (src, dst *Side) {
	if dir == FromClient {
		return s.Downstream, s.Upstream
	}
	return s.Upstream, s.Downstream
}

// Step decodes and dispatches at most one message waiting in dir's source
// endpoint. It reports progressed=false, err=nil both when no complete
// message is buffered yet and when a complete message is present but is
// waiting on more ancillary fd data to arrive; either way the caller should
// pump more bytes and retry.
//
// A non-nil error is always session-fatal. On a *ProtocolError the session
// has already had wl_display.error reported to the downstream endpoint and
// Close called; any other error means the caller should tear the session
// down itself. Step never returns a recoverable per-message error — those
// (handler failures, re-entrant borrows) are traced and swallowed so the
// caller keeps pumping.
func (s *Session) Step(dir Direction) (progressed bool, err error) {
	if s.closing {
		return false, ErrSessionClosed
	}
	src, dst := s.sides(dir)

	hdr, body, consumed, ok, perr := wire.TryReadMessage(src.EP.Incoming())
	if perr != nil {
		return false, s.fault(0, "", ErrCodeInvalidMethod, "malformed message header: "+perr.Error())
	}
	if !ok {
		return false, nil
	}

	ref, found := src.IDs.Lookup(hdr.Target)
	if !found {
		return false, s.fault(hdr.Target, "", ErrCodeInvalidObject, "unknown object id")
	}
	obj, found := s.Arena.Get(ref)
	if !found {
		return false, s.fault(hdr.Target, "", ErrCodeInvalidObject, "unknown object id")
	}
	if obj.Destroyed() {
		return false, s.fault(hdr.Target, s.Registry.Name(obj.Tag), ErrCodeInvalidObject, "receiver destroyed")
	}

	isRequest := dir == FromClient
	opSchema, ok := s.Registry.OpSchema(obj.Tag, hdr.Opcode, isRequest)
	if !ok {
		return false, s.fault(hdr.Target, s.Registry.Name(obj.Tag), ErrCodeInvalidMethod, "unknown opcode")
	}

	// wl_display.delete_id is the one opcode the generic translate-and-
	// forward path cannot handle: its single argument is a bare integer
	// naming an id, not an object reference, and the id must still be
	// translated between the two endpoints' numbering.
	if !isRequest && s.Registry.Name(obj.Tag) == "wl_display" && hdr.Opcode == 1 {
		dec := wire.NewDecoder(body, nil)
		rawID, derr := dec.Uint()
		if derr != nil {
			return false, s.fault(hdr.Target, "wl_display", ErrCodeInvalidMethod, "malformed delete_id")
		}
		src.EP.ConsumeIncoming(consumed)
		s.handleDeleteID(rawID)
		return true, nil
	}

	nFDs := countFDArgs(opSchema)
	fds, ok := src.EP.PopFDs(nFDs)
	if !ok {
		return false, nil
	}

	out, derr := s.translate(src, dst, obj, opSchema, body, fds)
	if derr != nil {
		if pe, isProto := derr.(*ProtocolError); isProto {
			// fds were already popped off src's incoming queue before
			// translate ran, so Endpoint.Close has no way to find and
			// close them itself; a fault here would otherwise leak every
			// descriptor the faulting message carried.
			s.reclaimFDs(fds)
			return false, s.emitFault(pe)
		}
		return false, derr
	}
	src.EP.ConsumeIncoming(consumed)

	if opSchema.Destructor {
		obj.MarkDestroyed()
		src.IDs.Unbind(hdr.Target)
	}

	h, done, borrowed := obj.BorrowHandler()
	if !borrowed {
		s.tracef("dispatch: handler busy on %s, dropping message", s.Registry.Name(obj.Tag))
		s.reclaimFDs(out.fds)
		return true, nil
	}
	if h != nil {
		var suppress bool
		var herr error
		if isRequest {
			suppress, herr = h.HandleRequest(obj, hdr.Opcode, wire.NewDecoder(body, fds))
		} else {
			suppress, herr = h.HandleEvent(obj, hdr.Opcode, wire.NewDecoder(body, fds))
		}
		done()
		if herr != nil {
			s.tracef("dispatch: handler error on %s: %v", s.Registry.Name(obj.Tag), herr)
			s.reclaimFDs(out.fds)
			return true, nil
		}
		if suppress {
			s.reclaimFDs(out.fds)
			return true, nil
		}
	} else {
		done()
	}

	forward := isRequest && obj.ForwardToServer || !isRequest && obj.ForwardToClient
	if !forward {
		s.reclaimFDs(out.fds)
		return true, nil
	}

	dst.EP.EnqueueMessage(wire.PutMessage(nil, out.target, hdr.Opcode, out.body), out.fds)
	return true, nil
}

func countFDArgs(op registry.OpSchema) int {
	n := 0
	for _, a := range op.Args {
		if a.Type == wire.FD {
			n++
		}
	}
	return n
}
