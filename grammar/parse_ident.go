package grammar

import (
	"strings"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

type identParser struct {
	codec.Continuation[any]
	form  Form
	opts  *ParserOptions
	attrs value.Attrs
	b     *strings.Builder
}

func (p identParser) Feed(in codec.Input) Parser {
	return parseIdentifier(in, p.form, p.opts, p.attrs, p.b)
}

func startIdentifier(in codec.Input, form Form, opts *ParserOptions, attrs value.Attrs) Parser {
	_, ident := form.(IdentifierForm)
	_, expr := form.(ExprForm)
	if !ident && !expr {
		return unsupportedKind(in, form, "identifier")
	}
	return parseIdentifier(in, form, opts, attrs, &strings.Builder{})
}

func parseIdentifier(in codec.Input, form Form, opts *ParserOptions, attrs value.Attrs, b *strings.Builder) Parser {
	for in.IsCont() && isIdentChar(in.Head()) {
		b.WriteRune(in.Head())
		in.Step()
	}
	switch {
	case in.IsEmpty():
		return identParser{form: form, opts: opts, attrs: attrs, b: b}
	case in.IsError():
		return codec.Fail[any](&codec.IOError{Err: in.Err()})
	}
	return identifierValue(in, form, opts, b.String(), attrs)
}

func identifierValue(in codec.Input, form Form, opts *ParserOptions, name string, attrs value.Attrs) Parser {
	if opts.ExprsEnabled && !opts.isKeyword(name) {
		if f, ok := form.(ExprForm); ok {
			v, err := f.FromRef(name, attrs)
			return build(in, v, err)
		}
	}
	f, ok := form.(IdentifierForm)
	if !ok {
		return unsupportedKind(in, form, "identifier")
	}
	v, err := f.FromIdentifier(name, attrs)
	return build(in, v, err)
}

// keyToken is an object key or tuple label candidate.
type keyToken struct {
	name   string
	quoted bool
}

// keyParser lexes a bare identifier or a quoted string.
type keyParser struct {
	codec.Continuation[any]
	opts *ParserOptions
	b    *strings.Builder
	sub  Parser
}

func (p keyParser) Feed(in codec.Input) Parser {
	return parseKey(in, p.opts, p.b, p.sub)
}

func startKey(in codec.Input, opts *ParserOptions) Parser {
	return parseKey(in, opts, nil, nil)
}

func parseKey(in codec.Input, opts *ParserOptions, b *strings.Builder, sub Parser) Parser {
	if sub == nil && b == nil {
		switch {
		case in.IsCont() && in.Head() == '"':
			sub = startString(in, rawString{}, nil)
		case in.IsCont() && isIdentStart(in.Head()):
			b = &strings.Builder{}
		case in.IsEmpty():
			return keyParser{opts: opts}
		default:
			return codec.Fail[any](codec.Expected(in, "key"))
		}
	} else if sub != nil {
		sub = sub.Feed(in)
	}
	if sub != nil {
		switch {
		case sub.IsDone():
			return codec.Complete[any](keyToken{name: opts.intern(sub.Get().(string)), quoted: true})
		case sub.IsError():
			return sub
		}
		return keyParser{opts: opts, sub: sub}
	}
	for in.IsCont() && isIdentChar(in.Head()) {
		b.WriteRune(in.Head())
		in.Step()
	}
	switch {
	case in.IsEmpty():
		return keyParser{opts: opts, b: b}
	case in.IsError():
		return codec.Fail[any](&codec.IOError{Err: in.Err()})
	}
	return codec.Complete[any](keyToken{name: opts.intern(b.String())})
}
