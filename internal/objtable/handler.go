package objtable

import (
	"errors"
	"sync"

	"github.com/wlrelay/wlrelay/internal/wire"
)

// ErrHandlerBorrowed is the recoverable "handler slot already borrowed"
// error: dispatch on this object re-entered while a previous dispatch on the
// same object was still running. The dispatcher drops the single offending
// message rather than treating this as fatal.
var ErrHandlerBorrowed = errors.New("objtable: handler already borrowed")

// MessageHandler is the generic request/event dispatch surface an Object's
// handler slot may hold. A nil handler slot means "use the engine's default
// forwarding behavior"; a non-nil handler is consulted first and may itself
// delegate back to the default forward.
//
// suppressDefault tells the caller whether the handler already did
// everything needed for this message (true) or whether the engine's default
// translate-and-forward should still run (false).
type MessageHandler interface {
	HandleRequest(obj *Object, opcode uint16, dec *wire.Decoder) (suppressDefault bool, err error)
	HandleEvent(obj *Object, opcode uint16, dec *wire.Decoder) (suppressDefault bool, err error)
}

// handlerSlot is a single mutable, re-entrancy-guarded slot. Borrowing is a
// runtime check (Go has no compile-time borrow checker); dispatch is
// single-threaded per session, so this is strictly a re-entry guard, not a
// concurrency lock.
type handlerSlot struct {
	mu       sync.Mutex
	borrowed bool
	h        MessageHandler
}

// Set installs a new handler, replacing any previous one. It does not
// require the slot to be unborrowed; retargeting may happen between
// messages at any time.
func (s *handlerSlot) Set(h MessageHandler) {
	s.mu.Lock()
	s.h = h
	s.mu.Unlock()
}

// Get returns the currently installed handler, if any.
func (s *handlerSlot) Get() MessageHandler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h
}

// release is returned by TryBorrow to end the borrow.
type release func()

// TryBorrow attempts to borrow the slot's handler for the duration of one
// dispatch. ok is false if the slot is already borrowed (re-entrant
// dispatch on the same object), in which case the caller must treat this as
// ErrHandlerBorrowed and drop the message.
func (s *handlerSlot) TryBorrow() (h MessageHandler, done release, ok bool) {
	s.mu.Lock()
	if s.borrowed {
		s.mu.Unlock()
		return nil, nil, false
	}
	s.borrowed = true
	h = s.h
	s.mu.Unlock()
	return h, func() {
		s.mu.Lock()
		s.borrowed = false
		s.mu.Unlock()
	}, true
}
