package codec

import "unicode/utf8"

// Output is a cursor that accepts code points.
type Output interface {
	// IsCont reports whether the output accepts a code point now.
	IsCont() bool
	// IsFull reports whether the output accepts nothing now but may after
	// its pending bytes are drained.
	IsFull() bool
	// IsDone reports whether the output is closed.
	IsDone() bool
	// IsError reports whether the downstream sink failed.
	IsError() bool
	// Write appends a code point. It must only be called when IsCont
	// reports true.
	Write(r rune)
	// Err returns the downstream error when IsError reports true.
	Err() error
}

// OutputBuffer is an Output that accumulates UTF-8 bytes.
//
// A positive limit caps the number of bytes accepted between drains, which
// makes writers suspend and resume the way they would against a socket.
type OutputBuffer struct {
	buf    []byte
	limit  int
	closed bool
	err    error
}

var _ Output = (*OutputBuffer)(nil)

// NewOutputBuffer returns an OutputBuffer accepting at most limit bytes
// between drains, or any number of bytes when limit is not positive.
func NewOutputBuffer(limit int) *OutputBuffer {
	return &OutputBuffer{limit: limit}
}

func (o *OutputBuffer) IsCont() bool {
	return o.err == nil && !o.closed && (o.limit <= 0 || len(o.buf) < o.limit)
}

func (o *OutputBuffer) IsFull() bool {
	return o.err == nil && !o.closed && o.limit > 0 && len(o.buf) >= o.limit
}

func (o *OutputBuffer) IsDone() bool {
	return o.err == nil && o.closed
}

func (o *OutputBuffer) IsError() bool {
	return o.err != nil
}

func (o *OutputBuffer) Write(r rune) {
	if !o.IsCont() {
		panic("codec: Write called on output that accepts no code points")
	}
	o.buf = utf8.AppendRune(o.buf, r)
}

func (o *OutputBuffer) Err() error {
	return o.err
}

// Bytes returns the pending bytes without draining them.
func (o *OutputBuffer) Bytes() []byte {
	return o.buf
}

// String returns the pending bytes as a string.
func (o *OutputBuffer) String() string {
	return string(o.buf)
}

// Drain returns a copy of the pending bytes and clears them.
func (o *OutputBuffer) Drain() []byte {
	p := append([]byte(nil), o.buf...)
	o.buf = o.buf[:0]
	return p
}

// Close marks the output as done.
func (o *OutputBuffer) Close() {
	o.closed = true
}

// Fail puts the output in the Error standing.
func (o *OutputBuffer) Fail(err error) {
	o.err = err
}
