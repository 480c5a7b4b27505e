package grammar

import (
	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

// objectParser parses "{key: value ...}". Keys are bare identifiers or
// quoted strings; the builder chooses the form of each field value.
type objectParser struct {
	codec.Continuation[any]
	form    ObjectForm
	opts    *ParserOptions
	depth   int
	attrs   value.Attrs
	builder ObjectBuilder
	m       members
	key     string
	field   Form
	sub     Parser
	step    int
}

func (p *objectParser) Feed(in codec.Input) Parser {
	return p.parse(in)
}

func startObject(in codec.Input, form ObjectForm, opts *ParserOptions, depth int, attrs value.Attrs) Parser {
	p := &objectParser{form: form, opts: opts, depth: depth, attrs: attrs}
	return p.parse(in)
}

func (p *objectParser) parse(in codec.Input) Parser {
	for {
		switch p.step {
		case 0:
			switch {
			case in.IsCont() && in.Head() == '{':
				in.Step()
				b, err := p.form.ObjectBuilder(p.attrs)
				if err != nil {
					return codec.Fail[any](codec.Semantic(in, err))
				}
				p.builder = b
				p.step = 1
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "'{'"))
			}
		case 1:
			if err := p.m.skip(in, true); err != nil {
				return codec.Fail[any](err)
			}
			switch {
			case in.IsCont() && in.Head() == '}':
				in.Step()
				v, err := p.builder.Build()
				return build(in, v, err)
			case in.IsCont() && !p.m.separated():
				return codec.Fail[any](codec.Expected(in, "',' or '}'"))
			case in.IsCont():
				p.step = 2
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "'}'"))
			}
		case 2:
			if p.sub == nil {
				p.sub = startKey(in, p.opts)
			} else {
				p.sub = p.sub.Feed(in)
			}
			switch {
			case p.sub.IsError():
				return p.sub
			case !p.sub.IsDone():
				return p
			}
			p.key = p.sub.Get().(keyToken).name
			p.sub = nil
			p.step = 3
		case 3:
			for in.IsCont() && isSpace(in.Head()) {
				in.Step()
			}
			switch {
			case in.IsCont() && in.Head() == ':':
				in.Step()
				p.step = 4
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "':'"))
			}
		case 4:
			for in.IsCont() && isBlank(in.Head()) {
				in.Step()
			}
			switch {
			case in.IsCont():
				f, err := p.builder.FieldForm(p.key)
				if err != nil {
					return codec.Fail[any](codec.Semantic(in, err))
				}
				p.field = f
				p.step = 5
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "value"))
			}
		case 5:
			if p.sub == nil {
				p.sub = startValue(in, p.field, p.opts, p.depth+1)
			} else {
				p.sub = p.sub.Feed(in)
			}
			switch {
			case p.sub.IsError():
				return p.sub
			case !p.sub.IsDone():
				return p
			}
			if err := p.builder.SetField(p.key, p.sub.Get()); err != nil {
				return codec.Fail[any](codec.Semantic(in, err))
			}
			p.sub = nil
			p.field = nil
			p.m.next()
			p.step = 1
		}
	}
}
