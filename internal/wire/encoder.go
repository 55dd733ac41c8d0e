package wire

// Encoder builds up a message body (and the list of fds it carries) in
// declared argument order. Fd-typed arguments do not contribute bytes to
// the body; they are appended to Fds in declaration order.
type Encoder struct {
	body []byte
	Fds  []int
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded body accumulated so far.
func (e *Encoder) Bytes() []byte {
	return e.body
}

func (e *Encoder) putWord(v uint32) {
	var b [4]byte
	ByteOrder.PutUint32(b[:], v)
	e.body = append(e.body, b[:]...)
}

// PutInt encodes a signed integer argument.
func (e *Encoder) PutInt(v int32) {
	e.putWord(uint32(v))
}

// PutUint encodes an unsigned integer argument.
func (e *Encoder) PutUint(v uint32) {
	e.putWord(v)
}

// PutFixedArg encodes a 24.8 fixed-point argument.
func (e *Encoder) PutFixedArg(v Fixed24_8) {
	e.putWord(uint32(v))
}

// PutObject encodes an object-typed argument's wire id; 0 means null.
func (e *Encoder) PutObject(id uint32) {
	e.putWord(id)
}

// PutNewIDNumeric encodes a plain new_id argument's wire id.
func (e *Encoder) PutNewIDNumeric(id uint32) {
	e.putWord(id)
}

// PutPolymorphicNewID encodes the wl_registry.bind-style triple.
func (e *Encoder) PutPolymorphicNewID(iface string, version uint32, id uint32) {
	e.PutString(iface, false)
	e.putWord(version)
	e.putWord(id)
}

// PutString encodes a string argument. isNull emits the nullable-null
// encoding (length word 0).
func (e *Encoder) PutString(s string, isNull bool) {
	if isNull {
		e.putWord(0)
		return
	}
	length := len(s) + 1 // + terminating NUL
	e.putWord(uint32(length))
	e.body = append(e.body, s...)
	e.body = append(e.body, 0)
	pad := Pad4(length) - length
	for i := 0; i < pad; i++ {
		e.body = append(e.body, 0)
	}
}

// PutArray encodes an array argument. isNull emits the nullable-null
// encoding (length word 0, no content).
func (e *Encoder) PutArray(b []byte, isNull bool) {
	if isNull {
		e.putWord(0)
		return
	}
	e.putWord(uint32(len(b)))
	e.body = append(e.body, b...)
	pad := Pad4(len(b)) - len(b)
	for i := 0; i < pad; i++ {
		e.body = append(e.body, 0)
	}
}

// PutFD appends fd to the fd list carried alongside this message. It
// consumes no body bytes.
func (e *Encoder) PutFD(fd int) {
	e.Fds = append(e.Fds, fd)
}
