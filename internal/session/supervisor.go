package session

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"github.com/wlrelay/wlrelay/internal/dispatch"
	"github.com/wlrelay/wlrelay/internal/endpoint"
	"github.com/wlrelay/wlrelay/internal/iodriver"
)

// Supervisor accepts downstream clients on a UNIX socket, dials the
// upstream compositor once per client, and drives every resulting
// dispatch.Session's non-blocking I/O off one shared epoll driver.
type Supervisor struct {
	opts Options

	driver   *iodriver.Driver
	listener *net.UnixListener

	mu    sync.Mutex
	conns map[int]*conn // keyed by endpoint fd

	nextID atomic.Uint64
}

// conn is one registered endpoint (either half of a session) together with
// enough context to drive it from a readiness event.
type conn struct {
	sess *dispatch.Session
	ep   *endpoint.Endpoint
	dir  dispatch.Direction
}

// New validates opts and creates the epoll driver and listening socket, but
// does not yet accept connections; call Serve to run the accept/drive loop.
func New(opts ...Option) (*Supervisor, error) {
	o := resolveOptions(opts)
	if o.ListenPath == "" {
		return nil, ErrNoListenPath
	}
	if o.Dial == nil {
		return nil, ErrNoUpstreamDialer
	}

	_ = os.Remove(o.ListenPath)
	addr, err := net.ResolveUnixAddr("unix", o.ListenPath)
	if err != nil {
		return nil, err
	}
	ln, err := net.ListenUnix("unix", addr)
	if err != nil {
		return nil, err
	}
	if o.SocketMode != 0 {
		_ = os.Chmod(o.ListenPath, os.FileMode(o.SocketMode))
	}

	driver, err := iodriver.New(o.MaxEvents)
	if err != nil {
		_ = ln.Close()
		return nil, err
	}

	return &Supervisor{
		opts:     o,
		driver:   driver,
		listener: ln,
		conns:    make(map[int]*conn),
	}, nil
}

// Serve runs the accept loop (in a background goroutine) and the epoll
// drive loop (on the calling goroutine) until ctx is cancelled or the
// listener fails. It always closes the listener and driver before
// returning.
func (sup *Supervisor) Serve(ctx context.Context) error {
	defer sup.listener.Close()
	defer sup.driver.Close()

	acceptErrs := make(chan error, 1)
	go sup.acceptLoop(ctx, acceptErrs)

	var events []iodriver.Event
	for {
		select {
		case <-ctx.Done():
			sup.closeAll()
			return ctx.Err()
		case err := <-acceptErrs:
			sup.closeAll()
			return err
		default:
		}

		var err error
		events, err = sup.driver.Wait(sup.opts.PollTimeout, events[:0])
		if err != nil {
			sup.closeAll()
			return err
		}
		for _, ev := range events {
			sup.handleEvent(ev)
		}
	}
}

func (sup *Supervisor) acceptLoop(ctx context.Context, errs chan<- error) {
	for {
		downstream, err := sup.listener.AcceptUnix()
		if err != nil {
			if ctx.Err() != nil {
				errs <- ctx.Err()
				return
			}
			errs <- err
			return
		}
		if err := sup.accept(downstream); err != nil {
			sup.tracef("session: dropping connection: %v", err)
			_ = downstream.Close()
		}
	}
}

// accept completes one client's handshake: dial upstream, wrap both sides
// as endpoints, build the dispatch.Session, seed wl_display, register both
// fds with the epoll driver.
func (sup *Supervisor) accept(downstreamConn *net.UnixConn) error {
	upstreamConn, err := sup.opts.Dial()
	if err != nil {
		return err
	}

	downEP, err := endpoint.New(downstreamConn)
	if err != nil {
		_ = upstreamConn.Close()
		return err
	}
	upUnix, ok := upstreamConn.(*net.UnixConn)
	if !ok {
		_ = upstreamConn.Close()
		return errors.New("session: upstream dialer did not return a unix socket")
	}
	upEP, err := endpoint.New(upUnix)
	if err != nil {
		_ = upUnix.Close()
		return err
	}

	id := sup.nextID.Add(1)
	sess := dispatch.NewSession(id, sup.opts.Registry, downEP, upEP)
	sess.Trace = sup.opts.Trace
	installDefaultHandlers(sess)
	if err := sess.SeedDisplay(); err != nil {
		sess.Close()
		return err
	}

	downFD, err := downEP.FD()
	if err != nil {
		sess.Close()
		return err
	}
	upFD, err := upEP.FD()
	if err != nil {
		sess.Close()
		return err
	}

	downC := &conn{sess: sess, ep: downEP, dir: dispatch.FromClient}
	upC := &conn{sess: sess, ep: upEP, dir: dispatch.FromServer}

	sup.mu.Lock()
	sup.conns[downFD] = downC
	sup.conns[upFD] = upC
	sup.mu.Unlock()

	if err := sup.driver.Add(downFD, iodriver.Readable); err != nil {
		sup.teardown(sess, downFD, upFD)
		return err
	}
	if err := sup.driver.Add(upFD, iodriver.Readable); err != nil {
		sup.teardown(sess, downFD, upFD)
		return err
	}
	return nil
}

func (sup *Supervisor) handleEvent(ev iodriver.Event) {
	sup.mu.Lock()
	c, ok := sup.conns[ev.FD]
	sup.mu.Unlock()
	if !ok {
		return
	}

	if ev.Readable {
		sup.pumpAndDispatch(c)
	}
	if c.sess.Closing() {
		return
	}
	if ev.Writable {
		sup.flush(c)
	}
	if ev.HangUp || ev.Err {
		sup.faultOut(c.sess)
	}
}

// pumpAndDispatch drains as many whole messages as are currently bufferable
// off one endpoint, feeding them through the session's dispatcher, per
// spec.md §4.8 step 3's read-drain-dispatch loop.
func (sup *Supervisor) pumpAndDispatch(c *conn) {
	for {
		_, err := c.ep.PumpIncoming()
		if err != nil {
			if errors.Is(err, endpoint.ErrWouldBlock) {
				break
			}
			if errors.Is(err, io.EOF) {
				sup.faultOut(c.sess)
				return
			}
			sup.tracef("session: pump error: %v", err)
			sup.faultOut(c.sess)
			return
		}
	}

	for {
		progressed, err := c.sess.Step(c.dir)
		if err != nil {
			if !errors.Is(err, dispatch.ErrSessionClosed) {
				sup.tracef("session: dispatch error: %v", err)
			}
			sup.faultOut(c.sess)
			return
		}
		if !progressed {
			break
		}
	}

	sup.syncWriteInterest(c.sess)
}

func (sup *Supervisor) flush(c *conn) {
	_, err := c.ep.Flush()
	if err != nil && !errors.Is(err, endpoint.ErrMore) && !errors.Is(err, endpoint.ErrWouldBlock) {
		sup.tracef("session: flush error: %v", err)
		sup.faultOut(c.sess)
		return
	}
	sup.syncWriteInterest(c.sess)
}

// syncWriteInterest flushes both of a session's endpoints once and updates
// each fd's epoll interest mask to ask for EPOLLOUT only while that
// endpoint still has data queued, matching iodriver.Modify's documented
// use.
func (sup *Supervisor) syncWriteInterest(sess *dispatch.Session) {
	for _, side := range []*dispatch.Side{sess.Downstream, sess.Upstream} {
		_, _ = side.EP.Flush()
		fd, err := side.EP.FD()
		if err != nil {
			continue
		}
		interest := iodriver.Readable
		if side.EP.Pending() {
			interest |= iodriver.Writable
		}
		_ = sup.driver.Modify(fd, interest)
	}
}

func (sup *Supervisor) faultOut(sess *dispatch.Session) {
	if sess.Closing() {
		return
	}
	downFD, derr := sess.Downstream.EP.FD()
	if derr != nil {
		downFD = -1
	}
	upFD, uerr := sess.Upstream.EP.FD()
	if uerr != nil {
		upFD = -1
	}
	sup.teardown(sess, downFD, upFD)
}

func (sup *Supervisor) teardown(sess *dispatch.Session, downFD, upFD int) {
	sess.Close()
	sup.mu.Lock()
	if downFD >= 0 {
		delete(sup.conns, downFD)
		_ = sup.driver.Remove(downFD)
	}
	if upFD >= 0 {
		delete(sup.conns, upFD)
		_ = sup.driver.Remove(upFD)
	}
	sup.mu.Unlock()
}

func (sup *Supervisor) closeAll() {
	sup.mu.Lock()
	seen := make(map[*dispatch.Session]bool)
	for _, c := range sup.conns {
		if !seen[c.sess] {
			seen[c.sess] = true
			c.sess.Close()
		}
	}
	sup.conns = make(map[int]*conn)
	sup.mu.Unlock()
}

func (sup *Supervisor) tracef(format string, args ...any) {
	if sup.opts.Trace != nil {
		sup.opts.Trace(format, args...)
	}
}
