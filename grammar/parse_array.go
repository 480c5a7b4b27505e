package grammar

import (
	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

type arrayParser struct {
	codec.Continuation[any]
	form    ArrayForm
	opts    *ParserOptions
	depth   int
	attrs   value.Attrs
	builder ArrayBuilder
	m       members
	sub     Parser
	step    int
}

func (p *arrayParser) Feed(in codec.Input) Parser {
	return p.parse(in)
}

func startArray(in codec.Input, form ArrayForm, opts *ParserOptions, depth int, attrs value.Attrs) Parser {
	p := &arrayParser{form: form, opts: opts, depth: depth, attrs: attrs}
	return p.parse(in)
}

func (p *arrayParser) parse(in codec.Input) Parser {
	for {
		switch p.step {
		case 0:
			switch {
			case in.IsCont() && in.Head() == '[':
				in.Step()
				b, err := p.form.ArrayBuilder(p.attrs)
				if err != nil {
					return codec.Fail[any](codec.Semantic(in, err))
				}
				p.builder = b
				p.step = 1
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "'['"))
			}
		case 1:
			if err := p.m.skip(in, false); err != nil {
				return codec.Fail[any](err)
			}
			switch {
			case in.IsCont() && in.Head() == ']':
				in.Step()
				v, err := p.builder.Build()
				return build(in, v, err)
			case in.IsCont() && !p.m.separated():
				return codec.Fail[any](codec.Expected(in, "',' or ']'"))
			case in.IsCont():
				p.step = 2
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "']'"))
			}
		case 2:
			if p.sub == nil {
				p.sub = startValue(in, p.form.ElementForm(), p.opts, p.depth+1)
			} else {
				p.sub = p.sub.Feed(in)
			}
			switch {
			case p.sub.IsError():
				return p.sub
			case !p.sub.IsDone():
				return p
			}
			if err := p.builder.Append(p.sub.Get()); err != nil {
				return codec.Fail[any](codec.Semantic(in, err))
			}
			p.sub = nil
			p.m.next()
			p.step = 1
		}
	}
}
