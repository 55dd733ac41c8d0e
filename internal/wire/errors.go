package wire

import "errors"

var (
	// ErrShortMessage reports that fewer than HeaderLen bytes, or fewer
	// bytes than Header.Size declares, are available. Callers should buffer
	// more and retry; it is not in itself a protocol violation.
	ErrShortMessage = errors.New("wire: short message")

	// ErrMalformedSize reports a header whose size is smaller than
	// HeaderLen or not a multiple of 4.
	ErrMalformedSize = errors.New("wire: malformed message size")

	// ErrUnexpectedNull reports a non-nullable string, array, object, or
	// new_id argument whose wire value was the null encoding.
	ErrUnexpectedNull = errors.New("wire: unexpected null argument")

	// ErrTruncatedArgument reports an argument whose declared length runs
	// past the end of the message body.
	ErrTruncatedArgument = errors.New("wire: truncated argument")

	// ErrFDQueueExhausted reports an fd-typed argument with no fd available
	// in the endpoint's incoming fd queue.
	ErrFDQueueExhausted = errors.New("wire: fd queue exhausted")
)
