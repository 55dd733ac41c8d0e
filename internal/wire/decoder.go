package wire

// Decoder reads typed Wayland message arguments from a message body in
// declared order, consuming fds from a side queue whose order matches
// declaration order across the message (per the protocol's fd-out-of-band
// rule).
type Decoder struct {
	body  []byte
	off   int
	fds   []int
	fdOff int
}

// NewDecoder returns a Decoder over body, pulling fd-typed arguments from
// fds in order.
func NewDecoder(body []byte, fds []int) *Decoder {
	return &Decoder{body: body, fds: fds}
}

// Remaining reports how many body bytes have not yet been consumed.
func (d *Decoder) Remaining() int {
	return len(d.body) - d.off
}

func (d *Decoder) takeWord() (uint32, error) {
	if d.off+4 > len(d.body) {
		return 0, ErrTruncatedArgument
	}
	v := ByteOrder.Uint32(d.body[d.off : d.off+4])
	d.off += 4
	return v, nil
}

// Int decodes a signed integer argument.
func (d *Decoder) Int() (int32, error) {
	v, err := d.takeWord()
	return int32(v), err
}

// Uint decodes an unsigned integer argument.
func (d *Decoder) Uint() (uint32, error) {
	return d.takeWord()
}

// FixedArg decodes a 24.8 fixed-point argument.
func (d *Decoder) FixedArg() (Fixed24_8, error) {
	v, err := d.takeWord()
	return Fixed24_8(v), err
}

// Object decodes an object-typed argument's wire id. A returned id of 0
// means the nullable-null encoding; the caller must reject a null value for
// a non-nullable argument.
func (d *Decoder) Object() (uint32, error) {
	return d.takeWord()
}

// NewIDNumeric decodes a plain (non-polymorphic) new_id argument's wire id.
func (d *Decoder) NewIDNumeric() (uint32, error) {
	return d.takeWord()
}

// PolymorphicNewID decodes the wl_registry.bind-style triple: an interface
// name string, a version word, and a new_id word.
func (d *Decoder) PolymorphicNewID() (iface string, version uint32, id uint32, err error) {
	iface, isNull, err := d.String()
	if err != nil {
		return "", 0, 0, err
	}
	if isNull {
		return "", 0, 0, ErrUnexpectedNull
	}
	version, err = d.takeWord()
	if err != nil {
		return "", 0, 0, err
	}
	id, err = d.takeWord()
	if err != nil {
		return "", 0, 0, err
	}
	return iface, version, id, nil
}

// String decodes a string argument. isNull reports the nullable-null
// encoding (length word 0); the caller must reject that for a non-nullable
// argument.
func (d *Decoder) String() (s string, isNull bool, err error) {
	n, err := d.takeWord()
	if err != nil {
		return "", false, err
	}
	if n == 0 {
		return "", true, nil
	}
	length := int(n)
	if d.off+length > len(d.body) {
		return "", false, ErrTruncatedArgument
	}
	// length includes the terminating NUL.
	raw := d.body[d.off : d.off+length]
	d.off += Pad4(length)
	if d.off > len(d.body) {
		return "", false, ErrTruncatedArgument
	}
	if length > 0 && raw[length-1] == 0 {
		raw = raw[:length-1]
	}
	return string(raw), false, nil
}

// Array decodes an array argument. isNull reports the nullable-null
// encoding (length word 0, no content).
func (d *Decoder) Array() (b []byte, isNull bool, err error) {
	n, err := d.takeWord()
	if err != nil {
		return nil, false, err
	}
	if n == 0 {
		return nil, true, nil
	}
	length := int(n)
	if d.off+length > len(d.body) {
		return nil, false, ErrTruncatedArgument
	}
	out := make([]byte, length)
	copy(out, d.body[d.off:d.off+length])
	d.off += Pad4(length)
	if d.off > len(d.body) {
		return nil, false, ErrTruncatedArgument
	}
	return out, false, nil
}

// FD consumes the next fd from the side queue.
func (d *Decoder) FD() (int, error) {
	if d.fdOff >= len(d.fds) {
		return -1, ErrFDQueueExhausted
	}
	fd := d.fds[d.fdOff]
	d.fdOff++
	return fd, nil
}
