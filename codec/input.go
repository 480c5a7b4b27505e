package codec

import (
	"errors"
	"unicode/utf8"
)

// ErrClosed is returned when writing to a closed Buffer or OutputBuffer.
var ErrClosed = errors.New("waml: write to closed buffer")

// Input is a cursor over a stream of code points.
type Input interface {
	// IsCont reports whether a code point is ready at Head.
	IsCont() bool
	// IsEmpty reports whether no code point is ready but more may arrive.
	IsEmpty() bool
	// IsDone reports whether the stream has ended.
	IsDone() bool
	// IsError reports whether the upstream source failed.
	IsError() bool
	// Head returns the current code point without consuming it.
	// It must only be called when IsCont reports true.
	Head() rune
	// Step consumes the current code point.
	// It must only be called when IsCont reports true.
	Step()
	// Position returns the position of the current code point.
	Position() Position
	// Err returns the upstream error when IsError reports true.
	Err() error
}

// Buffer is an Input over UTF-8 bytes that arrive incrementally.
//
// Bytes are appended with Write; Close marks the end of the stream. A UTF-8
// sequence split across two writes reads as Empty until it is complete.
type Buffer struct {
	buf    []byte
	off    int
	closed bool
	err    error
	pos    Position

	head rune
	size int
}

var _ Input = (*Buffer)(nil)

// NewBuffer returns an open, empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{pos: Position{Line: 1, Column: 1}}
}

// NewStringInput returns a closed Buffer holding s.
func NewStringInput(s string) *Buffer {
	b := NewBuffer()
	b.buf = []byte(s)
	b.closed = true
	return b
}

// NewBytesInput returns a closed Buffer holding a copy of p.
func NewBytesInput(p []byte) *Buffer {
	b := NewBuffer()
	b.buf = append([]byte(nil), p...)
	b.closed = true
	return b
}

// Write appends p to the unread portion of the buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}
	if b.off > 0 {
		n := copy(b.buf, b.buf[b.off:])
		b.buf = b.buf[:n]
		b.off = 0
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteString appends s to the unread portion of the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Close marks the end of the stream.
func (b *Buffer) Close() {
	b.closed = true
	b.size = 0
}

// Fail puts the buffer in the Error standing.
func (b *Buffer) Fail(err error) {
	b.err = err
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return len(b.buf) - b.off
}

func (b *Buffer) decode() bool {
	if b.size > 0 {
		return true
	}
	rest := b.buf[b.off:]
	if len(rest) == 0 {
		return false
	}
	if !b.closed && !utf8.FullRune(rest) {
		return false
	}
	b.head, b.size = utf8.DecodeRune(rest)
	return true
}

func (b *Buffer) IsCont() bool {
	return b.err == nil && b.decode()
}

func (b *Buffer) IsEmpty() bool {
	return b.err == nil && !b.closed && !b.decode()
}

func (b *Buffer) IsDone() bool {
	return b.err == nil && b.closed && b.off >= len(b.buf)
}

func (b *Buffer) IsError() bool {
	return b.err != nil
}

func (b *Buffer) Head() rune {
	if !b.decode() {
		panic("codec: Head called on input without a ready code point")
	}
	return b.head
}

func (b *Buffer) Step() {
	if !b.decode() {
		panic("codec: Step called on input without a ready code point")
	}
	b.pos = b.pos.next(b.head, b.size)
	b.off += b.size
	b.size = 0
}

func (b *Buffer) Position() Position {
	return b.pos
}

func (b *Buffer) Err() error {
	return b.err
}
