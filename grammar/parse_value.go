package grammar

import (
	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

// Parser is a resumable parse of a value built by a Form.
type Parser = codec.Parser[any]

// ParseValue returns a parser for one value, optionally preceded by
// attributes, built with form.
func ParseValue(form Form, opts *ParserOptions) Parser {
	return valueParser{form: form, opts: parserOptions(opts), step: 1}
}

type valueParser struct {
	codec.Continuation[any]
	form  Form
	opts  *ParserOptions
	depth int
	attrs value.Attrs
	sub   Parser
	step  int
}

func (p valueParser) Feed(in codec.Input) Parser {
	return parseValue(in, p.form, p.opts, p.depth, p.attrs, p.sub, p.step)
}

func startValue(in codec.Input, form Form, opts *ParserOptions, depth int) Parser {
	return parseValue(in, form, opts, depth, nil, nil, 1)
}

func parseValue(in codec.Input, form Form, opts *ParserOptions, depth int, attrs value.Attrs, sub Parser, step int) Parser {
	if step == 1 {
		if ef, ok := form.(errorForm); ok {
			return codec.Fail[any](codec.Semantic(in, ef.err))
		}
		if depth > opts.maxDepth() {
			return codec.Fail[any](codec.Errorf(in, "maximum nesting depth of %d exceeded", opts.maxDepth()))
		}
		switch {
		case in.IsCont():
			if in.Head() == '@' {
				step = 2
			} else {
				step = 3
			}
		case in.IsEmpty():
			return valueParser{form: form, opts: opts, depth: depth, step: 1}
		default:
			step = 3
		}
	}
	if step == 2 {
		if sub == nil {
			sub = startAttrs(in, opts, depth, false)
		} else {
			sub = sub.Feed(in)
		}
		switch {
		case sub.IsDone():
			attrs = sub.Get().(value.Attrs)
			sub = nil
			step = 3
		case sub.IsError():
			return sub
		default:
			return valueParser{form: form, opts: opts, depth: depth, sub: sub, step: 2}
		}
	}
	if step == 3 {
		for in.IsCont() && isSpace(in.Head()) {
			in.Step()
		}
		switch {
		case in.IsCont():
			step = 4
		case in.IsEmpty():
			return valueParser{form: form, opts: opts, depth: depth, attrs: attrs, step: 3}
		case in.IsError():
			return codec.Fail[any](codec.Expected(in, "value"))
		case attrs != nil:
			return unitValue(in, form, attrs)
		default:
			return codec.Fail[any](codec.Expected(in, "value"))
		}
	}
	if sub == nil {
		sub = startBody(in, form, opts, depth, attrs)
		if sub == nil {
			if attrs != nil {
				return unitValue(in, form, attrs)
			}
			return codec.Fail[any](codec.Expected(in, "value"))
		}
	} else {
		sub = sub.Feed(in)
	}
	if sub.IsCont() {
		return valueParser{form: form, opts: opts, depth: depth, attrs: attrs, sub: sub, step: 4}
	}
	return sub
}

// startBody starts the production selected by the code point at the head
// of in, or returns nil when no value starts there.
func startBody(in codec.Input, form Form, opts *ParserOptions, depth int, attrs value.Attrs) Parser {
	c := in.Head()
	switch {
	case isIdentStart(c):
		return startIdentifier(in, form, opts, attrs)
	case c == '-' || isDigit(c):
		f, ok := form.(NumberForm)
		if !ok {
			return unsupportedKind(in, form, "number")
		}
		return startNumber(in, f, attrs)
	case c == '"':
		f, ok := form.(StringForm)
		if !ok {
			return unsupportedKind(in, form, "string")
		}
		return startString(in, f, attrs)
	case c == '<':
		f, ok := form.(MarkupForm)
		if !ok {
			return unsupportedKind(in, form, "markup")
		}
		return startMarkup(in, f, opts, depth, attrs)
	case c == '[':
		f, ok := form.(ArrayForm)
		if !ok {
			return unsupportedKind(in, form, "array")
		}
		return startArray(in, f, opts, depth, attrs)
	case c == '{':
		f, ok := form.(ObjectForm)
		if !ok {
			return unsupportedKind(in, form, "object")
		}
		return startObject(in, f, opts, depth, attrs)
	case c == '(':
		f, ok := form.(TupleForm)
		if !ok {
			return unsupportedKind(in, form, "tuple")
		}
		return startTuple(in, f, opts, depth, attrs)
	}
	return nil
}

func unsupportedKind(in codec.Input, form Form, kind string) Parser {
	return codec.Fail[any](codec.Semantic(in, unsupported(form, kind)))
}

func unitValue(in codec.Input, form Form, attrs value.Attrs) Parser {
	f, ok := form.(UnitForm)
	if !ok {
		return unsupportedKind(in, form, "attribute list")
	}
	v, err := f.FromUnit(attrs)
	return build(in, v, err)
}

// build completes a parse with the result of a form or builder call.
func build(in codec.Input, v any, err error) Parser {
	if err != nil {
		return codec.Fail[any](codec.Semantic(in, err))
	}
	return codec.Complete(v)
}
