package proto

import (
	"github.com/wlrelay/wlrelay/internal/dispatch"
	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/wire"
)

// RiverWindowV1 wraps one river_window_v1 object: a logical window, as in
// the original protocol's doc comment, that may correspond to an
// xdg_toplevel or Xwayland window. A window is not displayed until the
// window manager proposes dimensions, the server replies with a dimensions
// event, and the render sequence finishes.
type RiverWindowV1 struct {
	Object *objtable.Object
}

// Request opcodes, in the river_window_v1 schema's declared order.
const (
	opRiverWindowDestroy            = 0
	opRiverWindowClose              = 1
	opRiverWindowGetNode            = 2
	opRiverWindowProposeDimensions  = 3
	opRiverWindowSetTiled           = 4
	opRiverWindowInformMaximized    = 5
	opRiverWindowInformUnmaximized  = 6
	opRiverWindowFullscreen         = 7
	opRiverWindowExitFullscreen     = 8
	opRiverWindowSetCapabilities    = 9
	opRiverWindowUnreliablePid      = 10
)

// Event opcodes, in the river_window_v1 schema's declared order.
const (
	opRiverWindowClosed                     = 0
	opRiverWindowDimensionsHint              = 1
	opRiverWindowDimensions                  = 2
	opRiverWindowHide                        = 3
	opRiverWindowShow                        = 4
	opRiverWindowAppID                       = 5
	opRiverWindowTitle                       = 6
	opRiverWindowParent                      = 7
	opRiverWindowDecorationHint              = 8
	opRiverWindowUseCSD                      = 9
	opRiverWindowUseSSD                      = 10
	opRiverWindowShowWindowMenuRequested     = 11
	opRiverWindowMaximizeRequested           = 12
	opRiverWindowUnmaximizeRequested         = 13
	opRiverWindowFullscreenRequested         = 14
	opRiverWindowExitFullscreenRequested     = 15
	opRiverWindowMinimizeRequested           = 16
)

// MsgDestroyWindowSince is the version the destroy request has been
// available since.
const MsgDestroyWindowSince = uint32(1)

// TrySendDestroy indicates the window manager will no longer use this
// window object; it should be sent after river_window_v1.closed or
// river_window_manager_v1.finished.
func (w RiverWindowV1) TrySendDestroy(s Emitter) error {
	if w.Object.Destroyed() {
		return dispatch.ErrReceiverDestroyed
	}
	if err := s.EmitToServer(w.Object, opRiverWindowDestroy, nil, nil); err != nil {
		return err
	}
	w.Object.MarkDestroyed()
	return nil
}

func (w RiverWindowV1) SendDestroy(s Emitter, trace func(format string, args ...any)) {
	if err := w.TrySendDestroy(s); err != nil && trace != nil {
		trace("river_window_v1.destroy: %v", err)
	}
}

// TrySendClose requests that the server close the window, analogous to
// xdg_toplevel's close-by-client-request behavior layered on top of this
// protocol.
func (w RiverWindowV1) TrySendClose(s Emitter) error {
	return s.EmitToServer(w.Object, opRiverWindowClose, nil, nil)
}

// TrySendGetNode creates a river_node_v1 new_id tying this window into the
// compositor's scene-graph node hierarchy.
func (w RiverWindowV1) TrySendGetNode(s Emitter, node *objtable.Object) error {
	id := objectID(serverID, node)
	if node != nil && id == 0 {
		return ErrReceiverNoServerID
	}
	enc := wire.NewEncoder()
	enc.PutNewIDNumeric(id)
	return s.EmitToServer(w.Object, opRiverWindowGetNode, enc.Bytes(), nil)
}

// TrySendProposeDimensions proposes width x height for the window as part
// of a manage sequence, tagged with serial so the eventual
// river_window_v1.dimensions event (or its absence) can be correlated.
func (w RiverWindowV1) TrySendProposeDimensions(s Emitter, width, height int32, serial uint32) error {
	enc := wire.NewEncoder()
	enc.PutInt(width)
	enc.PutInt(height)
	enc.PutUint(serial)
	return s.EmitToServer(w.Object, opRiverWindowProposeDimensions, enc.Bytes(), nil)
}

// TrySendSetTiled sets which edges of the window are tiled, as a bitmask of
// the protocol's tiled-edge enum.
func (w RiverWindowV1) TrySendSetTiled(s Emitter, edges uint32) error {
	enc := wire.NewEncoder()
	enc.PutUint(edges)
	return s.EmitToServer(w.Object, opRiverWindowSetTiled, enc.Bytes(), nil)
}

func (w RiverWindowV1) TrySendInformMaximized(s Emitter) error {
	return s.EmitToServer(w.Object, opRiverWindowInformMaximized, nil, nil)
}

func (w RiverWindowV1) TrySendInformUnmaximized(s Emitter) error {
	return s.EmitToServer(w.Object, opRiverWindowInformUnmaximized, nil, nil)
}

// TrySendFullscreen requests fullscreen, optionally pinned to a specific
// output.
func (w RiverWindowV1) TrySendFullscreen(s Emitter, output *objtable.Object) error {
	if err := checkSameSession(s, output); err != nil {
		return err
	}
	enc := wire.NewEncoder()
	enc.PutObject(objectID(serverID, output))
	return s.EmitToServer(w.Object, opRiverWindowFullscreen, enc.Bytes(), nil)
}

func (w RiverWindowV1) TrySendExitFullscreen(s Emitter) error {
	return s.EmitToServer(w.Object, opRiverWindowExitFullscreen, nil, nil)
}

// TrySendSetCapabilities advertises which window-manager-side capabilities
// (move, resize, minimize, ...) are currently honored for this window.
func (w RiverWindowV1) TrySendSetCapabilities(s Emitter, capabilities uint32) error {
	enc := wire.NewEncoder()
	enc.PutUint(capabilities)
	return s.EmitToServer(w.Object, opRiverWindowSetCapabilities, enc.Bytes(), nil)
}

// TrySendUnreliablePid informs the server of the client process id that
// created this window, on a best-effort basis (hence "unreliable": pids are
// reused and this is sampled, not authoritative).
func (w RiverWindowV1) TrySendUnreliablePid(s Emitter, pid uint32) error {
	enc := wire.NewEncoder()
	enc.PutUint(pid)
	return s.EmitToServer(w.Object, opRiverWindowUnreliablePid, enc.Bytes(), nil)
}

// MsgClosedSince is the version the closed event has been available since.
const MsgClosedSince = uint32(1)

// TrySendClosed reports that the window has been closed by the server. No
// further events will be sent on this object; the window manager should
// respond with destroy.
func (w RiverWindowV1) TrySendClosed(s Emitter) error {
	if w.Object.Destroyed() {
		return dispatch.ErrReceiverDestroyed
	}
	return s.EmitToClient(w.Object, opRiverWindowClosed, nil, nil)
}

func (w RiverWindowV1) TrySendDimensionsHint(s Emitter, minWidth, minHeight, maxWidth, maxHeight int32) error {
	enc := wire.NewEncoder()
	enc.PutInt(minWidth)
	enc.PutInt(minHeight)
	enc.PutInt(maxWidth)
	enc.PutInt(maxHeight)
	return s.EmitToClient(w.Object, opRiverWindowDimensionsHint, enc.Bytes(), nil)
}

// TrySendDimensions replies to a propose_dimensions request, echoing its
// serial so the window manager can correlate the response.
func (w RiverWindowV1) TrySendDimensions(s Emitter, width, height int32, serial uint32) error {
	enc := wire.NewEncoder()
	enc.PutInt(width)
	enc.PutInt(height)
	enc.PutUint(serial)
	return s.EmitToClient(w.Object, opRiverWindowDimensions, enc.Bytes(), nil)
}

func (w RiverWindowV1) TrySendHide(s Emitter) error {
	return s.EmitToClient(w.Object, opRiverWindowHide, nil, nil)
}

func (w RiverWindowV1) TrySendShow(s Emitter) error {
	return s.EmitToClient(w.Object, opRiverWindowShow, nil, nil)
}

// TrySendAppID reports the window's application id, or null if unset.
func (w RiverWindowV1) TrySendAppID(s Emitter, appID string, isNull bool) error {
	enc := wire.NewEncoder()
	enc.PutString(appID, isNull)
	return s.EmitToClient(w.Object, opRiverWindowAppID, enc.Bytes(), nil)
}

// TrySendTitle reports the window's title, or null if unset.
func (w RiverWindowV1) TrySendTitle(s Emitter, title string, isNull bool) error {
	enc := wire.NewEncoder()
	enc.PutString(title, isNull)
	return s.EmitToClient(w.Object, opRiverWindowTitle, enc.Bytes(), nil)
}

// TrySendParent reports the window's parent window, or null if it has none.
func (w RiverWindowV1) TrySendParent(s Emitter, parent *objtable.Object) error {
	if err := checkSameSession(s, parent); err != nil {
		return err
	}
	enc := wire.NewEncoder()
	enc.PutObject(objectID(clientID, parent))
	return s.EmitToClient(w.Object, opRiverWindowParent, enc.Bytes(), nil)
}

func (w RiverWindowV1) TrySendDecorationHint(s Emitter, hint uint32) error {
	enc := wire.NewEncoder()
	enc.PutUint(hint)
	return s.EmitToClient(w.Object, opRiverWindowDecorationHint, enc.Bytes(), nil)
}

func (w RiverWindowV1) TrySendUseCSD(s Emitter) error {
	return s.EmitToClient(w.Object, opRiverWindowUseCSD, nil, nil)
}

func (w RiverWindowV1) TrySendUseSSD(s Emitter) error {
	return s.EmitToClient(w.Object, opRiverWindowUseSSD, nil, nil)
}

// TrySendShowWindowMenuRequested relays a compositor-originated request
// that the window manager show its window menu at (x, y) in response to
// the named seat's input.
func (w RiverWindowV1) TrySendShowWindowMenuRequested(s Emitter, seat *objtable.Object, serial uint32, x, y int32) error {
	if err := checkSameSession(s, seat); err != nil {
		return err
	}
	id := objectID(clientID, seat)
	if id == 0 {
		return ErrReceiverNoClientID
	}
	enc := wire.NewEncoder()
	enc.PutObject(id)
	enc.PutUint(serial)
	enc.PutInt(x)
	enc.PutInt(y)
	return s.EmitToClient(w.Object, opRiverWindowShowWindowMenuRequested, enc.Bytes(), nil)
}

func (w RiverWindowV1) TrySendMaximizeRequested(s Emitter) error {
	return s.EmitToClient(w.Object, opRiverWindowMaximizeRequested, nil, nil)
}

func (w RiverWindowV1) TrySendUnmaximizeRequested(s Emitter) error {
	return s.EmitToClient(w.Object, opRiverWindowUnmaximizeRequested, nil, nil)
}

// TrySendFullscreenRequested relays a compositor-originated fullscreen
// request, optionally pinned to output.
func (w RiverWindowV1) TrySendFullscreenRequested(s Emitter, output *objtable.Object) error {
	if err := checkSameSession(s, output); err != nil {
		return err
	}
	enc := wire.NewEncoder()
	enc.PutObject(objectID(clientID, output))
	return s.EmitToClient(w.Object, opRiverWindowFullscreenRequested, enc.Bytes(), nil)
}

func (w RiverWindowV1) TrySendExitFullscreenRequested(s Emitter) error {
	return s.EmitToClient(w.Object, opRiverWindowExitFullscreenRequested, nil, nil)
}

func (w RiverWindowV1) TrySendMinimizeRequested(s Emitter) error {
	return s.EmitToClient(w.Object, opRiverWindowMinimizeRequested, nil, nil)
}

// RiverWindowV1Handler is the user-overridable trait for river_window_v1.
// Each method's bool return is suppressDefault: the generic dispatcher in
// internal/dispatch translates every message before a handler is consulted
// and enqueues the translated forward after the handler returns (see
// internal/dispatch/dispatch.go Step), so the
// trait's job is narrower than the original generated Rust (where every
// handler method performs its own send): observe the decoded arguments and
// either leave the automatic forward alone (false) or, having emitted a
// replacement via one of the TrySend_* methods above, suppress it (true).
// DefaultRiverWindowV1Handler's methods are no-ops that always return
// false — "do nothing extra, let the engine's forward stand" — matching
// the original's transparent-forward default without sending the message a
// second time alongside the engine's own forward.
type RiverWindowV1Handler interface {
	HandleDestroy(obj RiverWindowV1) (suppressDefault bool)
	HandleClose(obj RiverWindowV1) (suppressDefault bool)
	HandleGetNode(obj RiverWindowV1, node *objtable.Object) (suppressDefault bool)
	HandleProposeDimensions(obj RiverWindowV1, width, height int32, serial uint32) (suppressDefault bool)
	HandleSetTiled(obj RiverWindowV1, edges uint32) (suppressDefault bool)
	HandleInformMaximized(obj RiverWindowV1) (suppressDefault bool)
	HandleInformUnmaximized(obj RiverWindowV1) (suppressDefault bool)
	HandleFullscreen(obj RiverWindowV1, output *objtable.Object) (suppressDefault bool)
	HandleExitFullscreen(obj RiverWindowV1) (suppressDefault bool)
	HandleSetCapabilities(obj RiverWindowV1, capabilities uint32) (suppressDefault bool)
	HandleUnreliablePid(obj RiverWindowV1, pid uint32) (suppressDefault bool)

	HandleClosed(obj RiverWindowV1) (suppressDefault bool)
	HandleDimensionsHint(obj RiverWindowV1, minWidth, minHeight, maxWidth, maxHeight int32) (suppressDefault bool)
	HandleDimensions(obj RiverWindowV1, width, height int32, serial uint32) (suppressDefault bool)
	HandleHide(obj RiverWindowV1) (suppressDefault bool)
	HandleShow(obj RiverWindowV1) (suppressDefault bool)
	HandleAppID(obj RiverWindowV1, appID string, isNull bool) (suppressDefault bool)
	HandleTitle(obj RiverWindowV1, title string, isNull bool) (suppressDefault bool)
	HandleParent(obj RiverWindowV1, parent *objtable.Object) (suppressDefault bool)
	HandleDecorationHint(obj RiverWindowV1, hint uint32) (suppressDefault bool)
	HandleUseCSD(obj RiverWindowV1) (suppressDefault bool)
	HandleUseSSD(obj RiverWindowV1) (suppressDefault bool)
	HandleShowWindowMenuRequested(obj RiverWindowV1, seat *objtable.Object, serial uint32, x, y int32) (suppressDefault bool)
	HandleMaximizeRequested(obj RiverWindowV1) (suppressDefault bool)
	HandleUnmaximizeRequested(obj RiverWindowV1) (suppressDefault bool)
	HandleFullscreenRequested(obj RiverWindowV1, output *objtable.Object) (suppressDefault bool)
	HandleExitFullscreenRequested(obj RiverWindowV1) (suppressDefault bool)
	HandleMinimizeRequested(obj RiverWindowV1) (suppressDefault bool)
}

// DefaultRiverWindowV1Handler is the transparent-forward default: every
// method is a no-op returning false, so the engine's own translate-and-
// forward stands unmodified. Embed it in a struct that overrides only the
// handful of methods a policy cares about.
type DefaultRiverWindowV1Handler struct{}

func (DefaultRiverWindowV1Handler) HandleDestroy(RiverWindowV1) bool                 { return false }
func (DefaultRiverWindowV1Handler) HandleClose(RiverWindowV1) bool                   { return false }
func (DefaultRiverWindowV1Handler) HandleGetNode(RiverWindowV1, *objtable.Object) bool { return false }
func (DefaultRiverWindowV1Handler) HandleProposeDimensions(RiverWindowV1, int32, int32, uint32) bool {
	return false
}
func (DefaultRiverWindowV1Handler) HandleSetTiled(RiverWindowV1, uint32) bool          { return false }
func (DefaultRiverWindowV1Handler) HandleInformMaximized(RiverWindowV1) bool           { return false }
func (DefaultRiverWindowV1Handler) HandleInformUnmaximized(RiverWindowV1) bool         { return false }
func (DefaultRiverWindowV1Handler) HandleFullscreen(RiverWindowV1, *objtable.Object) bool {
	return false
}
func (DefaultRiverWindowV1Handler) HandleExitFullscreen(RiverWindowV1) bool      { return false }
func (DefaultRiverWindowV1Handler) HandleSetCapabilities(RiverWindowV1, uint32) bool { return false }
func (DefaultRiverWindowV1Handler) HandleUnreliablePid(RiverWindowV1, uint32) bool   { return false }
func (DefaultRiverWindowV1Handler) HandleClosed(RiverWindowV1) bool              { return false }
func (DefaultRiverWindowV1Handler) HandleDimensionsHint(RiverWindowV1, int32, int32, int32, int32) bool {
	return false
}
func (DefaultRiverWindowV1Handler) HandleDimensions(RiverWindowV1, int32, int32, uint32) bool {
	return false
}
func (DefaultRiverWindowV1Handler) HandleHide(RiverWindowV1) bool { return false }
func (DefaultRiverWindowV1Handler) HandleShow(RiverWindowV1) bool { return false }
func (DefaultRiverWindowV1Handler) HandleAppID(RiverWindowV1, string, bool) bool { return false }
func (DefaultRiverWindowV1Handler) HandleTitle(RiverWindowV1, string, bool) bool { return false }
func (DefaultRiverWindowV1Handler) HandleParent(RiverWindowV1, *objtable.Object) bool { return false }
func (DefaultRiverWindowV1Handler) HandleDecorationHint(RiverWindowV1, uint32) bool   { return false }
func (DefaultRiverWindowV1Handler) HandleUseCSD(RiverWindowV1) bool                   { return false }
func (DefaultRiverWindowV1Handler) HandleUseSSD(RiverWindowV1) bool                   { return false }
func (DefaultRiverWindowV1Handler) HandleShowWindowMenuRequested(RiverWindowV1, *objtable.Object, uint32, int32, int32) bool {
	return false
}
func (DefaultRiverWindowV1Handler) HandleMaximizeRequested(RiverWindowV1) bool   { return false }
func (DefaultRiverWindowV1Handler) HandleUnmaximizeRequested(RiverWindowV1) bool { return false }
func (DefaultRiverWindowV1Handler) HandleFullscreenRequested(RiverWindowV1, *objtable.Object) bool {
	return false
}
func (DefaultRiverWindowV1Handler) HandleExitFullscreenRequested(RiverWindowV1) bool { return false }
func (DefaultRiverWindowV1Handler) HandleMinimizeRequested(RiverWindowV1) bool       { return false }

// RiverWindowV1Adapter wires a RiverWindowV1Handler into the generic
// objtable.MessageHandler dispatch surface: it decodes each opcode's
// arguments in schema order from the raw incoming message (the same body
// internal/dispatch's translate already consumed into the re-encoded
// outgoing message) and resolves object/new_id arguments to *objtable.Object.
// Requests arrive numbered in the downstream endpoint's id space and events
// in the upstream endpoint's, so the two directions need distinct
// resolvers — both supplied by the session, each closed over the matching
// Side's id table and arena.
type RiverWindowV1Adapter struct {
	Handler        RiverWindowV1Handler
	ResolveRequest ObjectResolver
	ResolveEvent   ObjectResolver
}

var _ objtable.MessageHandler = (*RiverWindowV1Adapter)(nil)

// HandleRequest decodes a river_window_v1 request in schema order and
// dispatches it to the matching trait method.
func (a *RiverWindowV1Adapter) HandleRequest(obj *objtable.Object, opcode uint16, dec *wire.Decoder) (bool, error) {
	w := RiverWindowV1{Object: obj}
	switch opcode {
	case opRiverWindowDestroy:
		return a.Handler.HandleDestroy(w), nil
	case opRiverWindowClose:
		return a.Handler.HandleClose(w), nil
	case opRiverWindowGetNode:
		id, err := dec.NewIDNumeric()
		if err != nil {
			return false, err
		}
		node, err := resolveObjectArg(a.ResolveRequest, id)
		if err != nil {
			return false, err
		}
		return a.Handler.HandleGetNode(w, node), nil
	case opRiverWindowProposeDimensions:
		width, err := dec.Int()
		if err != nil {
			return false, err
		}
		height, err := dec.Int()
		if err != nil {
			return false, err
		}
		serial, err := dec.Uint()
		if err != nil {
			return false, err
		}
		return a.Handler.HandleProposeDimensions(w, width, height, serial), nil
	case opRiverWindowSetTiled:
		edges, err := dec.Uint()
		if err != nil {
			return false, err
		}
		return a.Handler.HandleSetTiled(w, edges), nil
	case opRiverWindowInformMaximized:
		return a.Handler.HandleInformMaximized(w), nil
	case opRiverWindowInformUnmaximized:
		return a.Handler.HandleInformUnmaximized(w), nil
	case opRiverWindowFullscreen:
		id, err := dec.Object()
		if err != nil {
			return false, err
		}
		output, err := resolveObjectArg(a.ResolveRequest, id)
		if err != nil {
			return false, err
		}
		return a.Handler.HandleFullscreen(w, output), nil
	case opRiverWindowExitFullscreen:
		return a.Handler.HandleExitFullscreen(w), nil
	case opRiverWindowSetCapabilities:
		capabilities, err := dec.Uint()
		if err != nil {
			return false, err
		}
		return a.Handler.HandleSetCapabilities(w, capabilities), nil
	case opRiverWindowUnreliablePid:
		pid, err := dec.Uint()
		if err != nil {
			return false, err
		}
		return a.Handler.HandleUnreliablePid(w, pid), nil
	default:
		return false, nil
	}
}

// HandleEvent decodes a river_window_v1 event in schema order and
// dispatches it to the matching trait method.
func (a *RiverWindowV1Adapter) HandleEvent(obj *objtable.Object, opcode uint16, dec *wire.Decoder) (bool, error) {
	w := RiverWindowV1{Object: obj}
	switch opcode {
	case opRiverWindowClosed:
		return a.Handler.HandleClosed(w), nil
	case opRiverWindowDimensionsHint:
		minWidth, err := dec.Int()
		if err != nil {
			return false, err
		}
		minHeight, err := dec.Int()
		if err != nil {
			return false, err
		}
		maxWidth, err := dec.Int()
		if err != nil {
			return false, err
		}
		maxHeight, err := dec.Int()
		if err != nil {
			return false, err
		}
		return a.Handler.HandleDimensionsHint(w, minWidth, minHeight, maxWidth, maxHeight), nil
	case opRiverWindowDimensions:
		width, err := dec.Int()
		if err != nil {
			return false, err
		}
		height, err := dec.Int()
		if err != nil {
			return false, err
		}
		serial, err := dec.Uint()
		if err != nil {
			return false, err
		}
		return a.Handler.HandleDimensions(w, width, height, serial), nil
	case opRiverWindowHide:
		return a.Handler.HandleHide(w), nil
	case opRiverWindowShow:
		return a.Handler.HandleShow(w), nil
	case opRiverWindowAppID:
		appID, isNull, err := dec.String()
		if err != nil {
			return false, err
		}
		return a.Handler.HandleAppID(w, appID, isNull), nil
	case opRiverWindowTitle:
		title, isNull, err := dec.String()
		if err != nil {
			return false, err
		}
		return a.Handler.HandleTitle(w, title, isNull), nil
	case opRiverWindowParent:
		id, err := dec.Object()
		if err != nil {
			return false, err
		}
		parent, err := resolveObjectArg(a.ResolveEvent, id)
		if err != nil {
			return false, err
		}
		return a.Handler.HandleParent(w, parent), nil
	case opRiverWindowDecorationHint:
		hint, err := dec.Uint()
		if err != nil {
			return false, err
		}
		return a.Handler.HandleDecorationHint(w, hint), nil
	case opRiverWindowUseCSD:
		return a.Handler.HandleUseCSD(w), nil
	case opRiverWindowUseSSD:
		return a.Handler.HandleUseSSD(w), nil
	case opRiverWindowShowWindowMenuRequested:
		id, err := dec.Object()
		if err != nil {
			return false, err
		}
		seat, err := resolveObjectArg(a.ResolveEvent, id)
		if err != nil {
			return false, err
		}
		serial, err := dec.Uint()
		if err != nil {
			return false, err
		}
		x, err := dec.Int()
		if err != nil {
			return false, err
		}
		y, err := dec.Int()
		if err != nil {
			return false, err
		}
		return a.Handler.HandleShowWindowMenuRequested(w, seat, serial, x, y), nil
	case opRiverWindowMaximizeRequested:
		return a.Handler.HandleMaximizeRequested(w), nil
	case opRiverWindowUnmaximizeRequested:
		return a.Handler.HandleUnmaximizeRequested(w), nil
	case opRiverWindowFullscreenRequested:
		id, err := dec.Object()
		if err != nil {
			return false, err
		}
		output, err := resolveObjectArg(a.ResolveEvent, id)
		if err != nil {
			return false, err
		}
		return a.Handler.HandleFullscreenRequested(w, output), nil
	case opRiverWindowExitFullscreenRequested:
		return a.Handler.HandleExitFullscreenRequested(w), nil
	case opRiverWindowMinimizeRequested:
		return a.Handler.HandleMinimizeRequested(w), nil
	default:
		return false, nil
	}
}

