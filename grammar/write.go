package grammar

import (
	"errors"
	"unicode/utf8"

	"github.com/KimNorgaard/go-waml/codec"
)

var errOutputClosed = errors.New("waml: output closed")

// stall returns w unless out can no longer accept anything, in which case
// the write fails.
func stall(w codec.Writer, out codec.Output) codec.Writer {
	switch {
	case out.IsError():
		return codec.WriteFail(&codec.IOError{Err: out.Err()})
	case out.IsDone():
		return codec.WriteFail(errOutputClosed)
	}
	return w
}

type literalWriter struct {
	codec.WriterContinuation
	s string
}

// Literal returns a writer for the verbatim text s.
func Literal(s string) codec.Writer {
	if s == "" {
		return codec.Written()
	}
	return literalWriter{s: s}
}

func (w literalWriter) Pull(out codec.Output) codec.Writer {
	for w.s != "" {
		if !out.IsCont() {
			return stall(w, out)
		}
		r, n := utf8.DecodeRuneInString(w.s)
		out.Write(r)
		w.s = w.s[n:]
	}
	return codec.Written()
}

// seqWriter writes its parts in order, creating each one when the previous
// one is done.
type seqWriter struct {
	codec.WriterContinuation
	parts []func() codec.Writer
	cur   codec.Writer
}

// Sequence returns a writer for the concatenation of the writers built by
// parts.
func Sequence(parts ...func() codec.Writer) codec.Writer {
	return &seqWriter{parts: parts}
}

// Concat returns a writer for the concatenation of ws.
func Concat(ws ...codec.Writer) codec.Writer {
	parts := make([]func() codec.Writer, len(ws))
	for i, w := range ws {
		parts[i] = func() codec.Writer { return w }
	}
	return Sequence(parts...)
}

func (w *seqWriter) Pull(out codec.Output) codec.Writer {
	for {
		if w.cur == nil {
			if len(w.parts) == 0 {
				return codec.Written()
			}
			w.cur = w.parts[0]()
			w.parts = w.parts[1:]
		}
		w.cur = w.cur.Pull(out)
		switch {
		case w.cur.IsError():
			return w.cur
		case w.cur.IsDone():
			w.cur = nil
		default:
			return w
		}
	}
}
