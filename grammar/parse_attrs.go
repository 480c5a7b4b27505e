package grammar

import (
	"strings"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

// attrsParser parses a chain of "@name" or "@name(arg)" attributes. Inline
// attributes, used inside markup, are chained without whitespace.
type attrsParser struct {
	codec.Continuation[any]
	opts   *ParserOptions
	depth  int
	inline bool
	attrs  value.Attrs
	name   string
	b      *strings.Builder
	sub    Parser
	step   int
}

func (p attrsParser) Feed(in codec.Input) Parser {
	return parseAttrs(in, p.opts, p.depth, p.inline, p.attrs, p.name, p.b, p.sub, p.step)
}

func startAttrs(in codec.Input, opts *ParserOptions, depth int, inline bool) Parser {
	return parseAttrs(in, opts, depth, inline, nil, "", nil, nil, 1)
}

func parseAttrs(in codec.Input, opts *ParserOptions, depth int, inline bool, attrs value.Attrs,
	name string, b *strings.Builder, sub Parser, step int,
) Parser {
	suspend := func() Parser {
		return attrsParser{opts: opts, depth: depth, inline: inline, attrs: attrs, name: name, b: b, sub: sub, step: step}
	}
	for {
		if step == 1 {
			switch {
			case in.IsCont() && in.Head() == '@':
				in.Step()
				step = 2
			case in.IsEmpty():
				return suspend()
			default:
				return codec.Fail[any](codec.Expected(in, "'@'"))
			}
		}
		if step == 2 {
			switch {
			case in.IsCont() && in.Head() == '"':
				step = 3
			case in.IsCont() && isIdentStart(in.Head()):
				b = &strings.Builder{}
				b.WriteRune(in.Head())
				in.Step()
				step = 4
			case in.IsEmpty():
				return suspend()
			default:
				return codec.Fail[any](codec.Expected(in, "attribute name"))
			}
		}
		if step == 3 {
			if sub == nil {
				sub = startString(in, rawString{}, nil)
			} else {
				sub = sub.Feed(in)
			}
			switch {
			case sub.IsDone():
				name = opts.intern(sub.Get().(string))
				sub = nil
				step = 5
			case sub.IsError():
				return sub
			default:
				return suspend()
			}
		}
		if step == 4 {
			for in.IsCont() && isIdentChar(in.Head()) {
				b.WriteRune(in.Head())
				in.Step()
			}
			if in.IsEmpty() {
				return suspend()
			}
			name = opts.intern(b.String())
			b = nil
			step = 5
		}
		if step == 5 {
			switch {
			case in.IsCont() && in.Head() == '(':
				in.Step()
				step = 6
			case in.IsEmpty():
				return suspend()
			default:
				attrs = append(attrs, value.Attr{Name: name, Value: value.Unit{}})
				step = 7
			}
		}
		if step == 6 {
			if sub == nil {
				sub = startTupleBody(in, untypedForm{}, opts, depth+1, nil)
			} else {
				sub = sub.Feed(in)
			}
			switch {
			case sub.IsDone():
				attrs = append(attrs, value.Attr{Name: name, Value: sub.Get()})
				sub = nil
				step = 7
			case sub.IsError():
				return sub
			default:
				return suspend()
			}
		}
		if !inline {
			for in.IsCont() && isSpace(in.Head()) {
				in.Step()
			}
		}
		switch {
		case in.IsCont() && in.Head() == '@':
			in.Step()
			step = 2
		case in.IsEmpty():
			return suspend()
		case in.IsError():
			return codec.Fail[any](&codec.IOError{Err: in.Err()})
		default:
			return codec.Complete[any](attrs)
		}
	}
}
