// Package wlrelay is a transparent, interposing proxy for the Wayland wire
// protocol: it sits between a real client and the real compositor on a pair
// of UNIX domain sockets, forwarding every message while renumbering object
// ids and rethreading SCM_RIGHTS file descriptors across the two
// independent id spaces, so that handler code (internal/proto) may observe
// or selectively rewrite specific messages without either peer noticing the
// proxy is there.
//
// Serve is the package's one public entry point, mirroring the teacher's
// root-package-as-public-API shape (framer.NewReader/NewWriter/
// NewForwarder at root, mechanics in internal/bo): construct Options with
// With* functions, then call Serve with a context that bounds its
// lifetime.
package wlrelay

import (
	"context"

	"github.com/wlrelay/wlrelay/internal/session"
)

// Option configures a Serve call. See With* constructors.
type Option = session.Option

// Re-exported With* constructors; see internal/session.Options for field
// documentation.
var (
	WithListenPath       = session.WithListenPath
	WithUpstreamDialer   = session.WithUpstreamDialer
	WithUpstreamUnixPath = session.WithUpstreamUnixPath
	WithTrace            = session.WithTrace
	WithMaxEvents        = session.WithMaxEvents
	WithPollTimeout      = session.WithPollTimeout
	WithSocketMode       = session.WithSocketMode
)

// Serve accepts downstream clients on the configured listen path, relaying
// each to the configured upstream compositor until ctx is cancelled or an
// unrecoverable transport error occurs. It blocks for the lifetime of the
// proxy; run it in its own goroutine to serve multiple displays
// concurrently from one process.
func Serve(ctx context.Context, opts ...Option) error {
	sup, err := session.New(opts...)
	if err != nil {
		return err
	}
	return sup.Serve(ctx)
}
