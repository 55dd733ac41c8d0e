// Package iodriver is a minimal epoll-based readiness driver: it tells the
// session supervisor which registered descriptors are readable, writable,
// or have hung up, so endpoints are only pumped/flushed when the kernel
// says there is something to do instead of being polled in a busy loop.
package iodriver

import (
	"time"

	"golang.org/x/sys/unix"
)

// Interest is a bitmask of readiness a registered descriptor should report.
type Interest uint32

const (
	Readable Interest = unix.EPOLLIN
	Writable Interest = unix.EPOLLOUT
)

// Event reports one descriptor's readiness state after a Wait call.
type Event struct {
	FD       int
	Readable bool
	Writable bool
	HangUp   bool
	Err      bool
}

// Driver owns one epoll instance.
type Driver struct {
	epfd   int
	events []unix.EpollEvent
}

// New creates an epoll instance sized to report up to maxEvents readiness
// events per Wait call.
func New(maxEvents int) (*Driver, error) {
	if maxEvents <= 0 {
		maxEvents = 64
	}
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &Driver{epfd: epfd, events: make([]unix.EpollEvent, maxEvents)}, nil
}

// Add registers fd for the given interest. fd must not already be registered.
func (d *Driver) Add(fd int, interest Interest) error {
	ev := unix.EpollEvent{Events: uint32(interest), Fd: int32(fd)}
	return unix.EpollCtl(d.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

// Modify changes the interest mask for an already-registered fd. Endpoints
// use this to stop asking for EPOLLOUT once their outgoing queue drains, and
// to start asking for it again once a Flush returns ErrMore.
func (d *Driver) Modify(fd int, interest Interest) error {
	ev := unix.EpollEvent{Events: uint32(interest), Fd: int32(fd)}
	return unix.EpollCtl(d.epfd, unix.EPOLL_CTL_MOD, fd, &ev)
}

// Remove unregisters fd. Safe to call even if fd is about to be closed by
// the caller; closing an fd implicitly drops it from any epoll instance.
func (d *Driver) Remove(fd int) error {
	return unix.EpollCtl(d.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

// Wait blocks up to timeout (negative means forever) for readiness events,
// appending them to dst (which may be nil) and returning the result. A
// return that appends no events and no error means the timeout elapsed or
// the wait was interrupted; either way the caller should simply call Wait
// again.
func (d *Driver) Wait(timeout time.Duration, dst []Event) ([]Event, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout.Milliseconds())
	}
	n, err := unix.EpollWait(d.epfd, d.events, ms)
	if err != nil {
		if err == unix.EINTR {
			return dst, nil
		}
		return dst, err
	}
	for i := 0; i < n; i++ {
		ev := d.events[i]
		dst = append(dst, Event{
			FD:       int(ev.Fd),
			Readable: ev.Events&uint32(unix.EPOLLIN) != 0,
			Writable: ev.Events&uint32(unix.EPOLLOUT) != 0,
			HangUp:   ev.Events&uint32(unix.EPOLLHUP) != 0 || ev.Events&uint32(unix.EPOLLRDHUP) != 0,
			Err:      ev.Events&uint32(unix.EPOLLERR) != 0,
		})
	}
	return dst, nil
}

// Close releases the epoll instance.
func (d *Driver) Close() error {
	return unix.Close(d.epfd)
}
