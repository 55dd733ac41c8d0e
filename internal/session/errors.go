package session

import "errors"

var (
	// ErrNoListenPath reports a Supervisor constructed without
	// WithListenPath.
	ErrNoListenPath = errors.New("session: no listen path configured")

	// ErrNoUpstreamDialer reports a Supervisor constructed without
	// WithUpstreamDialer or WithUpstreamUnixPath.
	ErrNoUpstreamDialer = errors.New("session: no upstream dialer configured")
)
