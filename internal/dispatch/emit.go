package dispatch

import (
	"errors"

	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/wire"
)

// ErrReceiverDestroyed is returned by EmitToClient/EmitToServer when the
// target object has already been destroyed. Per §4.7's state machine,
// emitters on a DESTROYED object must fail rather than silently forward.
var ErrReceiverDestroyed = errors.New("dispatch: receiver destroyed")

// ErrWrongSession is returned when an object argument passed to a typed
// emitter was not allocated from this session's arena.
var ErrWrongSession = errors.New("dispatch: object argument belongs to a different session")

// EmitToClient addresses obj on the downstream endpoint (lazily allocating
// its client-side id if this is the first time the proxy names it there)
// and enqueues opcode/body/fds as an event. It is the primitive the
// internal/proto package's typed send_* emitters build on for
// handler-initiated traffic that isn't a plain forward of an inbound
// message.
func (s *Session) EmitToClient(obj *objtable.Object, opcode uint16, body []byte, fds []int) error {
	return s.emit(s.Downstream, obj, opcode, body, fds)
}

// EmitToServer addresses obj on the upstream endpoint and enqueues
// opcode/body/fds as a request.
func (s *Session) EmitToServer(obj *objtable.Object, opcode uint16, body []byte, fds []int) error {
	return s.emit(s.Upstream, obj, opcode, body, fds)
}

func (s *Session) emit(side *Side, obj *objtable.Object, opcode uint16, body []byte, fds []int) error {
	if obj.Destroyed() {
		return ErrReceiverDestroyed
	}
	if owned, ok := s.Arena.Get(obj.Self); !ok || owned != obj {
		return ErrWrongSession
	}
	id, err := s.ensureBound(side, obj)
	if err != nil {
		return err
	}
	side.EP.EnqueueMessage(wire.PutMessage(nil, id, opcode, body), fds)
	return nil
}

// SameSession reports whether obj was allocated from this session's arena,
// the check a typed emitter makes before letting an object-typed argument
// reference cross into a message addressed to a different session.
func (s *Session) SameSession(obj *objtable.Object) bool {
	owned, ok := s.Arena.Get(obj.Self)
	return ok && owned == obj
}
