package endpoint

import (
	"errors"

	"code.hybscloud.com/iox"
)

// These alias the semantic non-blocking control-flow sentinels so callers in
// this module never import code.hybscloud.com/iox directly.
var (
	// ErrWouldBlock means no further progress is possible without waiting
	// for readiness. Any returned byte/fd count still represents progress.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means the current call made usable progress and must be
	// retried to complete (a partial frame, a partial fd batch).
	ErrMore = iox.ErrMore
)

var (
	// ErrClosed reports an operation attempted on an endpoint already torn down.
	ErrClosed = errors.New("endpoint: closed")

	// ErrFDBacklog reports that the outgoing fd queue hit its bound before
	// the caller drained it with Flush. Wayland compositors are expected to
	// keep up with their own fd traffic; this is a protocol-level fault in
	// the peer, not a proxy bug.
	ErrFDBacklog = errors.New("endpoint: outgoing fd backlog exceeded")
)
