// Package wire implements the Wayland message framing and argument codec:
// fixed-size 32-bit-word headers, 4-byte padding, and the typed argument
// encodings (int, uint, fixed, object, new_id, string, array, fd) described
// by the protocol.
package wire

import (
	"encoding/binary"

	"github.com/wlrelay/wlrelay/internal/wireorder"
)

// ByteOrder is the word order used on the wire: native to the host, per the
// Wayland protocol.
var ByteOrder binary.ByteOrder = wireorder.Native()

// HeaderLen is the size in bytes of a message header: target object id (one
// word) plus packed (size<<16 | opcode) (one word).
const HeaderLen = 8

// Header is the decoded form of a message's two-word header.
type Header struct {
	Target uint32 // target object id
	Opcode uint16
	Size   uint16 // total message size in bytes, including the header
}

// DecodeHeader reads a Header from the first HeaderLen bytes of b.
// b must have length >= HeaderLen.
func DecodeHeader(b []byte) Header {
	target := ByteOrder.Uint32(b[0:4])
	packed := ByteOrder.Uint32(b[4:8])
	return Header{
		Target: target,
		Opcode: uint16(packed & 0xffff),
		Size:   uint16(packed >> 16),
	}
}

// PutHeader writes h into the first HeaderLen bytes of b.
func PutHeader(b []byte, h Header) {
	ByteOrder.PutUint32(b[0:4], h.Target)
	ByteOrder.PutUint32(b[4:8], uint32(h.Size)<<16|uint32(h.Opcode))
}

// Pad4 rounds n up to the next multiple of 4.
func Pad4(n int) int {
	return (n + 3) &^ 3
}
