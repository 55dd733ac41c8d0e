// Package session is the connection supervisor (spec.md §4.8): it accepts
// downstream clients on a UNIX socket, dials the real compositor upstream
// once per accepted client, seeds wl_display on both sides of the resulting
// dispatch.Session, and drives both endpoints' non-blocking I/O off a
// shared epoll readiness driver until either side closes or faults.
//
// Configuration follows the teacher's functional-options shape
// (framer.Option/Options/With*): every knob is a With* constructor applied
// at construction time, never parsed from a file or environment at runtime.
package session

import (
	"net"
	"time"

	"github.com/wlrelay/wlrelay/internal/registry"
)

// Options configures a Supervisor.
type Options struct {
	// ListenPath is the filesystem path of the UNIX socket downstream
	// clients dial, conventionally $XDG_RUNTIME_DIR/wayland-N.
	ListenPath string

	// Dial connects to the real compositor for one accepted downstream
	// client. Called once per accepted connection; its result becomes
	// that session's upstream endpoint.
	Dial func() (net.Conn, error)

	// Registry supplies the interface schemas new objects are created
	// against. Defaults to registry.Default.
	Registry *registry.Registry

	// Trace is an optional diagnostic logging hook, nil by default,
	// plumbed straight through to each dispatch.Session.
	Trace func(format string, args ...any)

	// MaxEvents bounds how many readiness events a single epoll_wait call
	// may report. Zero selects the iodriver package's own default.
	MaxEvents int

	// PollTimeout bounds how long Serve's epoll wait blocks with no
	// ready descriptors, so it can periodically check ctx.Done(). Zero
	// selects a built-in default.
	PollTimeout time.Duration

	// SocketMode is the permission bits applied to ListenPath after
	// creating it, mirroring the real Wayland compositor's convention
	// that the socket directory (not the socket itself) carries the
	// access control. Zero leaves the umask-applied default in place.
	SocketMode uint32
}

var defaultOptions = Options{
	MaxEvents:   64,
	PollTimeout: 250 * time.Millisecond,
}

// Option mutates Options at construction time.
type Option func(*Options)

// WithListenPath sets the downstream UNIX socket path.
func WithListenPath(path string) Option {
	return func(o *Options) { o.ListenPath = path }
}

// WithUpstreamDialer sets the per-connection upstream dial function.
func WithUpstreamDialer(dial func() (net.Conn, error)) Option {
	return func(o *Options) { o.Dial = dial }
}

// WithUpstreamUnixPath is a convenience wrapper around WithUpstreamDialer
// for the common case of an upstream compositor socket at a fixed path.
func WithUpstreamUnixPath(path string) Option {
	return WithUpstreamDialer(func() (net.Conn, error) {
		return net.Dial("unix", path)
	})
}

// WithRegistry overrides the interface registry new sessions are built
// against. Defaults to registry.Default.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *Options) { o.Registry = reg }
}

// WithTrace installs a diagnostic logging hook.
func WithTrace(trace func(format string, args ...any)) Option {
	return func(o *Options) { o.Trace = trace }
}

// WithMaxEvents bounds the epoll readiness batch size.
func WithMaxEvents(n int) Option {
	return func(o *Options) { o.MaxEvents = n }
}

// WithPollTimeout bounds how long Serve's epoll wait blocks between
// ctx.Done() checks.
func WithPollTimeout(d time.Duration) Option {
	return func(o *Options) { o.PollTimeout = d }
}

// WithSocketMode sets the permission bits applied to ListenPath.
func WithSocketMode(mode uint32) Option {
	return func(o *Options) { o.SocketMode = mode }
}

func resolveOptions(opts []Option) Options {
	o := defaultOptions
	o.Registry = registry.Default
	for _, apply := range opts {
		apply(&o)
	}
	if o.PollTimeout == 0 {
		o.PollTimeout = defaultOptions.PollTimeout
	}
	return o
}
