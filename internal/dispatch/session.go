package dispatch

import (
	"time"

	"github.com/wlrelay/wlrelay/internal/endpoint"
	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/registry"
)

// Side is one endpoint of a session together with the local id table the
// dispatcher resolves wire ids against on that socket.
type Side struct {
	EP    *endpoint.Endpoint
	IDs   *objtable.IDTable
	Arena *objtable.Arena
}

// Resolve looks up the object bound to wireID on this side, in the shape
// internal/proto.ObjectResolver expects. It is the seam that lets a
// Handler adapter resolve an object/new_id argument without the proto
// package importing objtable.IDTable or Arena internals directly.
func (side *Side) Resolve(wireID uint32) (*objtable.Object, bool) {
	ref, ok := side.IDs.Lookup(wireID)
	if !ok {
		return nil, false
	}
	return side.Arena.Get(ref)
}

// Session is a paired downstream/upstream connection: one real client
// talking to the proxy, one proxy talking to the real compositor on the
// client's behalf. It owns the shared object arena both sides' id tables
// point into.
//
// Per §3's partitioning invariant, the party that initiates an endpoint's
// connection owns the low (client-allocated) id range there. The proxy
// initiates the upstream connection, so it owns the low range upstream and
// the high (server-allocated) range downstream — the reverse of how it
// might look from the real client's point of view.
type Session struct {
	ID       uint64
	Registry *registry.Registry
	Arena    *objtable.Arena

	Downstream *Side
	Upstream   *Side

	// Trace is an optional hook for diagnostic logging, nil by default.
	// The proxy core carries no logging dependency of its own; wiring a
	// real logger here is left to the caller, matching the teacher's
	// texture of shipping no ambient logging library in the core.
	Trace func(format string, args ...any)

	// OnObjectCreated is an optional hook invoked whenever a new object is
	// materialized (by SeedDisplay or by a new_id argument in translate).
	// internal/session uses it to install an internal/proto handler
	// adapter on objects of interfaces it knows how to intercept,
	// without internal/dispatch needing to import internal/proto.
	OnObjectCreated func(obj *objtable.Object)

	closing bool
}

// NewSession constructs a Session over an already-connected pair of
// endpoints. The caller is responsible for seeding the wl_display singleton
// with SeedDisplay before any traffic is pumped.
func NewSession(id uint64, reg *registry.Registry, downstream, upstream *endpoint.Endpoint) *Session {
	arena := objtable.NewArena()
	return &Session{
		ID:         id,
		Registry:   reg,
		Arena:      arena,
		Downstream: &Side{EP: downstream, IDs: objtable.NewIDTable(objtable.PartitionServerAllocated), Arena: arena},
		Upstream:   &Side{EP: upstream, IDs: objtable.NewIDTable(objtable.PartitionClientAllocated), Arena: arena},
	}
}

// SeedDisplay creates the wl_display singleton and binds it to wire id 1 on
// both endpoints, per §4.8 step 2.
func (s *Session) SeedDisplay() error {
	tag, ok := s.Registry.FromWireName("wl_display")
	if !ok {
		return &ProtocolError{Reason: "registry missing wl_display"}
	}
	obj, err := s.Registry.CreateObject(tag, 1, objtable.ClientHandle{SessionID: s.ID}, objtable.Ref{})
	if err != nil {
		return err
	}
	ref := s.Arena.Insert(obj)
	obj.Self = ref
	obj.ClientID = 1
	obj.ServerID = 1
	s.Downstream.IDs.Bind(1, ref)
	s.Upstream.IDs.Bind(1, ref)
	// id 1 is bound directly rather than handed out by either side's own
	// allocator; whichever side owns the client-allocated partition must
	// not hand it out again.
	s.Downstream.IDs.Own.Reserve(1)
	s.Upstream.IDs.Own.Reserve(1)
	if s.OnObjectCreated != nil {
		s.OnObjectCreated(obj)
	}
	return nil
}

func (s *Session) tracef(format string, args ...any) {
	if s.Trace != nil {
		s.Trace(format, args...)
	}
}

// Closing reports whether the session has already faulted and is tearing
// down; the supervisor stops driving a closing session.
func (s *Session) Closing() bool { return s.closing }

// closeDrainBudget bounds how long Close spends trying to flush each
// endpoint's outgoing buffer before giving up, per §4.8's "drain outgoing
// buffers best-effort (bounded time)". It exists so the one message the
// proxy emits on its own initiative (wl_display.error, enqueued immediately
// before Close is called) has a real chance of reaching the socket instead
// of being discarded still sitting in the endpoint's userspace buffer.
const closeDrainBudget = 50 * time.Millisecond

// Close releases both endpoints. Any descriptors still queued (received but
// unconsumed, or enqueued but unsent) are closed by Endpoint.Close rather
// than leaked.
func (s *Session) Close() {
	s.closing = true
	drainBestEffort(s.Downstream.EP)
	drainBestEffort(s.Upstream.EP)
	_ = s.Downstream.EP.Close()
	_ = s.Upstream.EP.Close()
}

func drainBestEffort(ep *endpoint.Endpoint) {
	deadline := time.Now().Add(closeDrainBudget)
	for ep.Pending() {
		_, err := ep.Flush()
		if err == nil {
			return
		}
		if err != endpoint.ErrMore && err != endpoint.ErrWouldBlock {
			return
		}
		if time.Now().After(deadline) {
			return
		}
	}
}
