// Package endpoint wraps one side of the proxy's relay — a non-blocking
// unix domain socket plus the byte and file-descriptor buffering needed to
// decode and encode whole Wayland wire messages across partial reads and
// writes and across SCM_RIGHTS ancillary-data boundaries that rarely line
// up with message boundaries.
//
// Non-blocking semantics follow the two-sentinel vocabulary this module
// inherited from code.hybscloud.com/iox: ErrWouldBlock means try again once
// the fd is ready, ErrMore means the call made usable progress but is not
// finished. Callers are driven by an iodriver that watches the underlying
// fd with epoll; Endpoint itself never parks a goroutine waiting for
// readiness.
package endpoint

import (
	"io"
	"net"

	"golang.org/x/sys/unix"
)

const (
	readChunkSize = 64 * 1024
	oobChunkSize  = 4096

	// maxFDsPerSendmsg bounds how many descriptors ride a single sendmsg
	// call. Linux caps SCM_RIGHTS at SCM_MAX_FD (253 on all supported
	// kernels); batching at that limit avoids EINVAL from the kernel when
	// the outgoing fd queue backs up.
	maxFDsPerSendmsg = 253
)

// Endpoint is one side of the relay: the downstream socket a real client
// dialed, or the upstream socket the proxy itself dialed towards the real
// compositor.
type Endpoint struct {
	conn *net.UnixConn
	raw  interface {
		Control(f func(fd uintptr)) error
	}

	readScratch []byte
	oobScratch  []byte

	inBuf []byte
	inFDs []int

	outBuf []byte
	outFDs []int

	closed bool
}

// New wraps conn, switching its underlying fd to non-blocking mode so every
// read and write this package performs returns immediately instead of
// parking the calling goroutine in the Go runtime poller.
func New(conn *net.UnixConn) (*Endpoint, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return nil, err
	}
	var nbErr error
	if cerr := raw.Control(func(fd uintptr) {
		nbErr = unix.SetNonblock(int(fd), true)
	}); cerr != nil {
		return nil, cerr
	}
	if nbErr != nil {
		return nil, nbErr
	}
	return &Endpoint{
		conn:        conn,
		raw:         raw,
		readScratch: make([]byte, readChunkSize),
		oobScratch:  make([]byte, oobChunkSize),
	}, nil
}

// FD returns the underlying socket's raw descriptor, for registration with
// an iodriver. The descriptor remains owned by Endpoint; callers must not
// close it directly.
func (e *Endpoint) FD() (fd int, err error) {
	cerr := e.raw.Control(func(f uintptr) { fd = int(f) })
	return fd, cerr
}

// PumpIncoming performs one non-blocking recvmsg, appending any bytes and
// any received descriptors to the endpoint's internal queues. It returns
// ErrWouldBlock if the socket had nothing to offer, io.EOF as soon as a read
// finds the peer shut down; bytes buffered by earlier reads stay queued for
// callers to drain.
func (e *Endpoint) PumpIncoming() (n int, err error) {
	if e.closed {
		return 0, ErrClosed
	}
	var rn, roob int
	var recvErr error
	cerr := e.raw.Control(func(fd uintptr) {
		rn, roob, _, _, recvErr = unix.Recvmsg(int(fd), e.readScratch, e.oobScratch, unix.MSG_DONTWAIT)
	})
	if cerr != nil {
		return 0, cerr
	}
	if recvErr != nil {
		if recvErr == unix.EAGAIN || recvErr == unix.EWOULDBLOCK {
			return 0, ErrWouldBlock
		}
		return 0, recvErr
	}
	if rn == 0 && roob == 0 {
		return 0, io.EOF
	}
	if rn > 0 {
		e.inBuf = append(e.inBuf, e.readScratch[:rn]...)
	}
	if roob > 0 {
		fds, ferr := parseRights(e.oobScratch[:roob])
		if ferr != nil {
			return rn, ferr
		}
		e.inFDs = append(e.inFDs, fds...)
	}
	return rn, nil
}

// Incoming returns the bytes buffered so far, for the dispatcher to attempt
// a TryReadMessage against.
func (e *Endpoint) Incoming() []byte { return e.inBuf }

// ConsumeIncoming drops the first n bytes of the incoming buffer, called
// once the dispatcher has decoded a complete message from it.
func (e *Endpoint) ConsumeIncoming(n int) {
	e.inBuf = e.inBuf[n:]
}

// PopFDs removes and returns the first n descriptors from the incoming fd
// queue. It reports ok=false without consuming anything if fewer than n are
// currently queued — the caller should treat that as "wait for more
// ancillary data to arrive", since fd delivery rarely lines up exactly with
// message boundaries.
func (e *Endpoint) PopFDs(n int) (fds []int, ok bool) {
	if n == 0 {
		return nil, true
	}
	if len(e.inFDs) < n {
		return nil, false
	}
	fds = append([]int(nil), e.inFDs[:n]...)
	e.inFDs = e.inFDs[n:]
	return fds, true
}

// EnqueueMessage appends one encoded message and its out-of-band descriptors
// to the outgoing queues. Flush performs the actual non-blocking send.
func (e *Endpoint) EnqueueMessage(body []byte, fds []int) {
	e.outBuf = append(e.outBuf, body...)
	if len(fds) > 0 {
		e.outFDs = append(e.outFDs, fds...)
	}
}

// Flush attempts to drain the outgoing queues with non-blocking sendmsg
// calls. It returns ErrMore if it made progress but the queues are not yet
// empty, ErrWouldBlock if no progress was possible at all.
func (e *Endpoint) Flush() (n int, err error) {
	if e.closed {
		return 0, ErrClosed
	}
	for len(e.outBuf) > 0 || len(e.outFDs) > 0 {
		batch := e.outFDs
		if len(batch) > maxFDsPerSendmsg {
			batch = batch[:maxFDsPerSendmsg]
		}
		var oob []byte
		if len(batch) > 0 {
			oob = unix.UnixRights(batch...)
		}

		var sn int
		var sendErr error
		cerr := e.raw.Control(func(fd uintptr) {
			sn, sendErr = unix.SendmsgN(int(fd), e.outBuf, oob, nil, unix.MSG_DONTWAIT)
		})
		if cerr != nil {
			return n, cerr
		}
		if sendErr != nil {
			if sendErr == unix.EAGAIN || sendErr == unix.EWOULDBLOCK {
				if n > 0 {
					return n, ErrMore
				}
				return n, ErrWouldBlock
			}
			return n, sendErr
		}

		n += sn
		e.outBuf = e.outBuf[sn:]
		if len(batch) > 0 {
			e.outFDs = e.outFDs[len(batch):]
		}
		if sn == 0 {
			// sendmsg accepted the ancillary data but no bytes were queued;
			// nothing left to retry in this call.
			break
		}
	}
	if len(e.outBuf) > 0 || len(e.outFDs) > 0 {
		return n, ErrMore
	}
	return n, nil
}

// Pending reports whether outgoing data is still queued.
func (e *Endpoint) Pending() bool {
	return len(e.outBuf) > 0 || len(e.outFDs) > 0
}

// Close closes the underlying connection. Any descriptors still sitting in
// the incoming queue (received but never consumed by the dispatcher) and
// any still queued for send are closed here rather than silently dropped,
// so a torn-down session never leaks descriptors into the proxy process.
func (e *Endpoint) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	for _, fd := range e.inFDs {
		_ = unix.Close(fd)
	}
	for _, fd := range e.outFDs {
		_ = unix.Close(fd)
	}
	e.inFDs = nil
	e.outFDs = nil
	return e.conn.Close()
}

func parseRights(oob []byte) ([]int, error) {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, err
	}
	var fds []int
	for i := range msgs {
		rights, err := unix.ParseUnixRights(&msgs[i])
		if err != nil {
			return nil, err
		}
		fds = append(fds, rights...)
	}
	return fds, nil
}
