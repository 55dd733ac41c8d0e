package proto

import (
	"errors"
	"testing"

	"github.com/wlrelay/wlrelay/internal/dispatch"
	"github.com/wlrelay/wlrelay/internal/objtable"
	"github.com/wlrelay/wlrelay/internal/wire"
)

// recordedSend captures one Emitter.EmitToClient/EmitToServer call.
type recordedSend struct {
	obj    *objtable.Object
	opcode uint16
	body   []byte
	fds    []int
}

// fakeEmitter is a scripted Emitter: it records every emitted message and
// lets a test force SameSession to fail, without needing a real
// dispatch.Session or a socket pair.
type fakeEmitter struct {
	toClient []recordedSend
	toServer []recordedSend
	sameSess bool
	emitErr  error
}

func newFakeEmitter() *fakeEmitter {
	return &fakeEmitter{sameSess: true}
}

func (f *fakeEmitter) EmitToClient(obj *objtable.Object, opcode uint16, body []byte, fds []int) error {
	if f.emitErr != nil {
		return f.emitErr
	}
	f.toClient = append(f.toClient, recordedSend{obj, opcode, body, fds})
	return nil
}

func (f *fakeEmitter) EmitToServer(obj *objtable.Object, opcode uint16, body []byte, fds []int) error {
	if f.emitErr != nil {
		return f.emitErr
	}
	f.toServer = append(f.toServer, recordedSend{obj, opcode, body, fds})
	return nil
}

func (f *fakeEmitter) SameSession(obj *objtable.Object) bool { return f.sameSess }

var _ Emitter = (*fakeEmitter)(nil)

func newTestObject(tag objtable.Tag) *objtable.Object {
	obj := objtable.NewObject(tag, 1, objtable.ClientHandle{SessionID: 1}, objtable.Ref{})
	obj.ClientID = 10
	obj.ServerID = 20
	return obj
}

func TestRiverWindowTrySendDestroyMarksDestroyedOnce(t *testing.T) {
	obj := newTestObject(1)
	em := newFakeEmitter()
	w := RiverWindowV1{Object: obj}

	if err := w.TrySendDestroy(em); err != nil {
		t.Fatalf("TrySendDestroy: %v", err)
	}
	if !obj.Destroyed() {
		t.Fatalf("object not marked destroyed after TrySendDestroy")
	}
	if len(em.toServer) != 1 || em.toServer[0].opcode != opRiverWindowDestroy {
		t.Fatalf("toServer = %+v, want one destroy message", em.toServer)
	}

	if err := w.TrySendDestroy(em); !errors.Is(err, dispatch.ErrReceiverDestroyed) {
		t.Fatalf("second TrySendDestroy = %v, want ErrReceiverDestroyed", err)
	}
	if len(em.toServer) != 1 {
		t.Fatalf("destroy re-sent after receiver already destroyed")
	}
}

func TestRiverWindowSendDestroySwallowsErrorIntoTrace(t *testing.T) {
	obj := newTestObject(1)
	obj.MarkDestroyed()
	em := newFakeEmitter()

	var traced string
	w := RiverWindowV1{Object: obj}
	w.SendDestroy(em, func(format string, args ...any) {
		traced = format
		_ = args
	})
	if traced == "" {
		t.Fatalf("SendDestroy on an already-destroyed object did not trace the failure")
	}
}

func TestRiverWindowGetNodeEncodesServerSideID(t *testing.T) {
	obj := newTestObject(1)
	node := newTestObject(2)
	em := newFakeEmitter()

	w := RiverWindowV1{Object: obj}
	if err := w.TrySendGetNode(em, node); err != nil {
		t.Fatalf("TrySendGetNode: %v", err)
	}
	if len(em.toServer) != 1 {
		t.Fatalf("expected one emitted message, got %d", len(em.toServer))
	}
	dec := wire.NewDecoder(em.toServer[0].body, nil)
	id, err := dec.NewIDNumeric()
	if err != nil {
		t.Fatalf("decode new_id: %v", err)
	}
	if id != node.ServerID {
		t.Fatalf("encoded new_id = %d, want node.ServerID = %d", id, node.ServerID)
	}
}

func TestRiverWindowGetNodeUnboundNodeFails(t *testing.T) {
	obj := newTestObject(1)
	node := newTestObject(2)
	node.ServerID = 0 // not yet bound upstream
	em := newFakeEmitter()

	w := RiverWindowV1{Object: obj}
	if err := w.TrySendGetNode(em, node); !errors.Is(err, ErrReceiverNoServerID) {
		t.Fatalf("TrySendGetNode with unbound node = %v, want ErrReceiverNoServerID", err)
	}
}

func TestRiverWindowProposeDimensionsEncodesArgsInOrder(t *testing.T) {
	obj := newTestObject(1)
	em := newFakeEmitter()

	w := RiverWindowV1{Object: obj}
	if err := w.TrySendProposeDimensions(em, 800, 600, 42); err != nil {
		t.Fatalf("TrySendProposeDimensions: %v", err)
	}
	dec := wire.NewDecoder(em.toServer[0].body, nil)
	width, err := dec.Int()
	if err != nil || width != 800 {
		t.Fatalf("width = %d, %v", width, err)
	}
	height, err := dec.Int()
	if err != nil || height != 600 {
		t.Fatalf("height = %d, %v", height, err)
	}
	serial, err := dec.Uint()
	if err != nil || serial != 42 {
		t.Fatalf("serial = %d, %v", serial, err)
	}
}

func TestRiverWindowFullscreenRejectsCrossSessionOutput(t *testing.T) {
	obj := newTestObject(1)
	output := newTestObject(3)
	em := newFakeEmitter()
	em.sameSess = false

	w := RiverWindowV1{Object: obj}
	if err := w.TrySendFullscreen(em, output); !errors.Is(err, dispatch.ErrWrongSession) {
		t.Fatalf("TrySendFullscreen across sessions = %v, want ErrWrongSession", err)
	}
	if len(em.toServer) != 0 {
		t.Fatalf("fullscreen request emitted despite failed session check")
	}
}

func TestRiverWindowClosedFailsOnDestroyedReceiver(t *testing.T) {
	obj := newTestObject(1)
	obj.MarkDestroyed()
	em := newFakeEmitter()

	w := RiverWindowV1{Object: obj}
	if err := w.TrySendClosed(em); !errors.Is(err, dispatch.ErrReceiverDestroyed) {
		t.Fatalf("TrySendClosed on destroyed receiver = %v, want ErrReceiverDestroyed", err)
	}
}

func TestRiverWindowAdapterHandleRequestProposeDimensions(t *testing.T) {
	obj := newTestObject(1)
	var gotWidth, gotHeight int32
	var gotSerial uint32
	adapter := &RiverWindowV1Adapter{Handler: recordingWindowHandler{
		RiverWindowV1Handler: DefaultRiverWindowV1Handler{},
		onPropose: func(width, height int32, serial uint32) {
			gotWidth, gotHeight, gotSerial = width, height, serial
		},
	}}

	enc := wire.NewEncoder()
	enc.PutInt(1920)
	enc.PutInt(1080)
	enc.PutUint(7)
	dec := wire.NewDecoder(enc.Bytes(), nil)

	suppress, err := adapter.HandleRequest(obj, opRiverWindowProposeDimensions, dec)
	if err != nil {
		t.Fatalf("HandleRequest: %v", err)
	}
	if suppress {
		t.Fatalf("DefaultRiverWindowV1Handler-backed adapter suppressed the default forward")
	}
	if gotWidth != 1920 || gotHeight != 1080 || gotSerial != 7 {
		t.Fatalf("decoded args = (%d, %d, %d), want (1920, 1080, 7)", gotWidth, gotHeight, gotSerial)
	}
}

func TestRiverWindowAdapterHandleRequestUnknownOpcodeIsNoop(t *testing.T) {
	obj := newTestObject(1)
	adapter := &RiverWindowV1Adapter{Handler: DefaultRiverWindowV1Handler{}}
	dec := wire.NewDecoder(nil, nil)
	suppress, err := adapter.HandleRequest(obj, 255, dec)
	if err != nil || suppress {
		t.Fatalf("unknown opcode: suppress=%v err=%v, want false, nil", suppress, err)
	}
}

// recordingWindowHandler embeds a RiverWindowV1Handler and overrides only
// HandleProposeDimensions, exercising the embeddable-default pattern the
// type documents.
type recordingWindowHandler struct {
	RiverWindowV1Handler
	onPropose func(width, height int32, serial uint32)
}

func (r recordingWindowHandler) HandleProposeDimensions(_ RiverWindowV1, width, height int32, serial uint32) bool {
	if r.onPropose != nil {
		r.onPropose(width, height, serial)
	}
	return false
}

func TestRiverNodeTrySendDestroy(t *testing.T) {
	obj := newTestObject(5)
	em := newFakeEmitter()
	n := RiverNodeV1{Object: obj}
	if err := n.TrySendDestroy(em); err != nil {
		t.Fatalf("TrySendDestroy: %v", err)
	}
	if !obj.Destroyed() {
		t.Fatalf("node not marked destroyed")
	}
	if len(em.toServer) != 1 || em.toServer[0].opcode != opRiverNodeDestroy {
		t.Fatalf("toServer = %+v", em.toServer)
	}
}

func TestRiverXkbConfigTrySendDestroy(t *testing.T) {
	obj := newTestObject(6)
	em := newFakeEmitter()
	x := RiverXkbConfigV1{Object: obj}
	if err := x.TrySendDestroy(em); err != nil {
		t.Fatalf("TrySendDestroy: %v", err)
	}
	if len(em.toServer) != 1 || em.toServer[0].opcode != opRiverXkbConfigDestroy {
		t.Fatalf("toServer = %+v", em.toServer)
	}

	adapter := &RiverXkbConfigV1Adapter{Handler: DefaultRiverXkbConfigV1Handler{}}
	dec := wire.NewDecoder(nil, nil)
	if _, err := adapter.HandleRequest(obj, opRiverXkbConfigDestroy, dec); err != nil {
		t.Fatalf("HandleRequest: %v", err)
	}
}

func TestRiverWindowManagerTrySendWindowNilEncodesNull(t *testing.T) {
	obj := newTestObject(7)
	em := newFakeEmitter()
	m := RiverWindowManagerV1{Object: obj}

	if err := m.TrySendWindow(em, nil); err != nil {
		t.Fatalf("TrySendWindow(nil): %v", err)
	}
	dec := wire.NewDecoder(em.toClient[0].body, nil)
	id, err := dec.NewIDNumeric()
	if err != nil || id != 0 {
		t.Fatalf("TrySendWindow(nil) encoded id = %d, %v, want 0", id, err)
	}
}

func TestRiverWindowManagerAdapterHandleEventWindow(t *testing.T) {
	obj := newTestObject(7)
	window := newTestObject(8)
	resolver := func(wireID uint32) (*objtable.Object, bool) {
		if wireID == window.ClientID {
			return window, true
		}
		return nil, false
	}

	var got *objtable.Object
	adapter := &RiverWindowManagerV1Adapter{
		Handler: recordingManagerHandler{
			RiverWindowManagerV1Handler: DefaultRiverWindowManagerV1Handler{},
			onWindow: func(w *objtable.Object) { got = w },
		},
		ResolveEvent: resolver,
	}

	enc := wire.NewEncoder()
	enc.PutNewIDNumeric(window.ClientID)
	dec := wire.NewDecoder(enc.Bytes(), nil)
	if _, err := adapter.HandleEvent(obj, opRiverWindowManagerWindow, dec); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if got != window {
		t.Fatalf("resolved window = %v, want %v", got, window)
	}
}

type recordingManagerHandler struct {
	RiverWindowManagerV1Handler
	onWindow func(*objtable.Object)
}

func (r recordingManagerHandler) HandleWindow(_ RiverWindowManagerV1, window *objtable.Object) bool {
	if r.onWindow != nil {
		r.onWindow(window)
	}
	return false
}
