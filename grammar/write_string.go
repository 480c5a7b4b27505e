package grammar

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-waml/codec"
)

type escapeMode int

const (
	quotedMode escapeMode = iota
	blockMode
	markupMode
)

// escapedWriter writes s between delimiters, escaping what mode requires.
// pending holds the rest of a delimiter or escape sequence being written.
type escapedWriter struct {
	codec.WriterContinuation
	s       string
	mode    escapeMode
	pending string
	close   string
	closed  bool
}

func newEscapedWriter(s string, mode escapeMode, open, close string) codec.Writer {
	return &escapedWriter{s: s, mode: mode, pending: open, close: close}
}

// WriteQuoted returns a writer for s as a quoted string.
func WriteQuoted(s string) codec.Writer {
	return newEscapedWriter(s, quotedMode, `"`, `"`)
}

func writeTextBlock(s string) codec.Writer {
	return newEscapedWriter(s, blockMode, `"""`, `"""`)
}

func writeMarkupText(s string) codec.Writer {
	return newEscapedWriter(s, markupMode, "", "")
}

// WriteString returns a writer for s as a bare identifier when it reads as
// one and is not a keyword, as a text block when it spans lines and the
// layout allows it, and as a quoted string otherwise.
func WriteString(s string, opts *WriterOptions) codec.Writer {
	opts = writerOptions(opts)
	switch {
	case !opts.ExprsEnabled && IsIdentifier(s) && !opts.isKeyword(s):
		return Literal(s)
	case opts.TextBlocks && opts.block() && strings.Contains(s, "\n"):
		return writeTextBlock(s)
	}
	return WriteQuoted(s)
}

// writeKey writes an object key or tuple label.
func writeKey(s string) codec.Writer {
	if IsIdentifier(s) {
		return Literal(s)
	}
	return WriteQuoted(s)
}

func (w *escapedWriter) Pull(out codec.Output) codec.Writer {
	for {
		for w.pending != "" {
			if !out.IsCont() {
				return stall(w, out)
			}
			r, n := utf8.DecodeRuneInString(w.pending)
			out.Write(r)
			w.pending = w.pending[n:]
		}
		if w.s == "" {
			if w.closed {
				return codec.Written()
			}
			w.closed = true
			w.pending = w.close
			continue
		}
		if !out.IsCont() {
			return stall(w, out)
		}
		r, n := utf8.DecodeRuneInString(w.s)
		w.s = w.s[n:]
		if e := w.escape(r); e != "" {
			w.pending = e
			continue
		}
		out.Write(r)
	}
}

// escape returns the escape sequence for r, or "" when r is written as is.
func (w *escapedWriter) escape(r rune) string {
	switch r {
	case '\\':
		return `\\`
	case '"':
		if w.mode != markupMode {
			return `\"`
		}
	case '<', '>', '@', '{':
		if w.mode == markupMode {
			return `\` + string(r)
		}
	case '\n':
		if w.mode == quotedMode {
			return `\n`
		}
	case '\t':
		if w.mode == quotedMode {
			return `\t`
		}
	case '\r':
		if w.mode != markupMode {
			return `\r`
		}
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	}
	if r < 0x20 && r != '\n' && r != '\t' && r != '\r' {
		return fmt.Sprintf(`\u%04x`, r)
	}
	return ""
}
