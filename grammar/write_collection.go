package grammar

import (
	"errors"
	"strings"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

var errEmptyLabel = errors.New("waml: empty tuple label")

// Member is one element, field or item of a collection being written.
type Member struct {
	// Key is the object key or tuple label, written when Labeled is set.
	Key     string
	Labeled bool
	// Scalar reports that the value writes as a single token, which lets
	// the collection stay on one line in block layout.
	Scalar bool
	Write  func(opts *WriterOptions, depth int) codec.Writer
}

func lit(s string) func() codec.Writer {
	return func() codec.Writer { return Literal(s) }
}

func newline(opts *WriterOptions, depth int) string {
	return "\n" + strings.Repeat(" ", opts.Indent*depth)
}

func inlinable(ms []Member, opts *WriterOptions) bool {
	if len(ms) > opts.InlineLimit {
		return false
	}
	for _, m := range ms {
		if !m.Scalar {
			return false
		}
	}
	return true
}

// WriteArray returns a writer for "[...]" preceded by attrs.
func WriteArray(attrs value.Attrs, ms []Member, opts *WriterOptions, depth int) codec.Writer {
	return writeCollection(attrs, "[", "]", ms, opts, depth)
}

// WriteObject returns a writer for "{...}" preceded by attrs. Every member
// is written with its key.
func WriteObject(attrs value.Attrs, ms []Member, opts *WriterOptions, depth int) codec.Writer {
	for i := range ms {
		ms[i].Labeled = true
	}
	return writeCollection(attrs, "{", "}", ms, opts, depth)
}

// WriteTuple returns a writer for "(...)" preceded by attrs. Labels must
// not be empty.
func WriteTuple(attrs value.Attrs, ms []Member, opts *WriterOptions, depth int) codec.Writer {
	for _, m := range ms {
		if m.Labeled && m.Key == "" {
			return codec.WriteFail(errEmptyLabel)
		}
	}
	return writeCollection(attrs, "(", ")", ms, opts, depth)
}

func writeCollection(attrs value.Attrs, open, close string, ms []Member, opts *WriterOptions, depth int) codec.Writer {
	opts = writerOptions(opts)
	var parts []func() codec.Writer
	if len(attrs) > 0 {
		parts = append(parts, func() codec.Writer { return WriteAttrs(attrs, opts) }, lit(" "))
	}
	parts = append(parts, lit(open))
	block := opts.block() && len(ms) > 0 && !inlinable(ms, opts)
	sep, colon := ",", ":"
	if opts.Whitespace {
		sep, colon = ", ", ": "
	}
	mopts := opts
	if !block {
		mopts = opts.inline()
	}
	for i, m := range ms {
		switch {
		case block:
			parts = append(parts, lit(newline(opts, depth+1)))
		case i > 0:
			parts = append(parts, lit(sep))
		}
		if m.Labeled {
			parts = append(parts, func() codec.Writer { return writeKey(m.Key) }, lit(colon))
		}
		parts = append(parts, func() codec.Writer { return m.Write(mopts, depth+1) })
	}
	if block {
		parts = append(parts, lit(newline(opts, depth)))
	}
	parts = append(parts, lit(close))
	return Sequence(parts...)
}

// WriteAttrs returns a writer for attrs. Arguments are written inline, a
// tuple argument without its parentheses.
func WriteAttrs(attrs value.Attrs, opts *WriterOptions) codec.Writer {
	opts = writerOptions(opts).inline()
	var parts []func() codec.Writer
	for i, a := range attrs {
		if i > 0 && opts.Whitespace {
			parts = append(parts, lit(" "))
		}
		parts = append(parts, lit("@"), func() codec.Writer { return writeKey(a.Name) })
		if _, unit := a.Value.(value.Unit); unit {
			continue
		}
		parts = append(parts, lit("("), func() codec.Writer {
			if t, ok := a.Value.(value.Tuple); ok {
				return writeItems(t.Items, opts, 1)
			}
			return writeValue(a.Value, opts, 1)
		}, lit(")"))
	}
	return Sequence(parts...)
}

// WriteAttributed returns a writer for attrs followed by the value written
// by body.
func WriteAttributed(attrs value.Attrs, body codec.Writer, opts *WriterOptions) codec.Writer {
	if len(attrs) == 0 {
		return body
	}
	return Concat(WriteAttrs(attrs, opts), Literal(" "), body)
}

// writeItems writes tuple items without the enclosing parentheses.
func writeItems(items []value.Item, opts *WriterOptions, depth int) codec.Writer {
	sep, colon := ",", ":"
	if opts.Whitespace {
		sep, colon = ", ", ": "
	}
	var parts []func() codec.Writer
	for i, it := range items {
		if i > 0 {
			parts = append(parts, lit(sep))
		}
		if it.Label != "" {
			parts = append(parts, func() codec.Writer { return writeKey(it.Label) }, lit(colon))
		}
		parts = append(parts, func() codec.Writer { return writeValue(it.Value, opts, depth) })
	}
	return Sequence(parts...)
}
