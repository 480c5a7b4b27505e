package grammar

import (
	"unicode/utf8"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

// writeMarkup writes "<<...>>" preceded by attrs.
func writeMarkup(m value.Markup, attrs value.Attrs, opts *WriterOptions) codec.Writer {
	return WriteAttributed(attrs, Concat(Literal("<<"), writeNodes(m.Nodes, opts), Literal(">>")), opts)
}

func writeNodes(nodes []any, opts *WriterOptions) codec.Writer {
	opts = opts.inline()
	parts := make([]func() codec.Writer, 0, len(nodes))
	for i, n := range nodes {
		var next any
		if i+1 < len(nodes) {
			next = nodes[i+1]
		}
		parts = append(parts, func() codec.Writer { return writeNode(n, next, i+1 == len(nodes), opts) })
	}
	return Sequence(parts...)
}

func writeNode(n, next any, last bool, opts *WriterOptions) codec.Writer {
	switch n := n.(type) {
	case string:
		return writeMarkupText(n)
	case value.Markup:
		return Concat(Literal("<"), writeNodes(n.Nodes, opts), Literal(">"))
	case value.Attributed:
		if len(n.Attrs) != 1 {
			break
		}
		if m, ok := n.Value.(value.Markup); ok {
			return Concat(WriteAttrs(n.Attrs, opts), Literal("<"), writeNodes(m.Nodes, opts), Literal(">"))
		}
		if _, ok := n.Value.(value.Unit); ok && (last || endsInlineNode(next)) {
			return WriteAttrs(n.Attrs, opts)
		}
	}
	return Concat(Literal("{"), writeValue(n, opts, 1), Literal("}"))
}

// endsInlineNode reports whether next, written right after an inline
// "@attr", leaves the attribute intact.
func endsInlineNode(next any) bool {
	s, ok := next.(string)
	if !ok || s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return !isIdentChar(r) && r != '('
}
