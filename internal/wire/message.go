package wire

// TryReadMessage attempts to split one complete message off the front of
// buf. It reports ok=false (with a nil error) when buf does not yet hold a
// full header and body; the caller should buffer more bytes and retry. The
// codec never reports a message ready until header and body are both
// buffered, per the framing contract.
func TryReadMessage(buf []byte) (hdr Header, body []byte, consumed int, ok bool, err error) {
	if len(buf) < HeaderLen {
		return Header{}, nil, 0, false, nil
	}
	hdr = DecodeHeader(buf)
	if int(hdr.Size) < HeaderLen || int(hdr.Size)%4 != 0 {
		return Header{}, nil, 0, false, ErrMalformedSize
	}
	if len(buf) < int(hdr.Size) {
		return Header{}, nil, 0, false, nil
	}
	body = buf[HeaderLen:hdr.Size]
	return hdr, body, int(hdr.Size), true, nil
}

// PutMessage appends a complete message (header + body) for the given
// target/opcode/body to dst and returns the extended slice.
func PutMessage(dst []byte, target uint32, opcode uint16, body []byte) []byte {
	size := HeaderLen + len(body)
	var hdr [HeaderLen]byte
	PutHeader(hdr[:], Header{Target: target, Opcode: opcode, Size: uint16(size)})
	dst = append(dst, hdr[:]...)
	dst = append(dst, body...)
	return dst
}
