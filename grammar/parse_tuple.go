package grammar

import (
	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

// tupleParser parses "(item ...)" where each item is a value or a
// "label: value" pair. The first item is held back until a second one
// arrives, so that "()" and "(x)" reach EmptyTuple and UnaryTuple.
type tupleParser struct {
	codec.Continuation[any]
	form    TupleForm
	opts    *ParserOptions
	depth   int
	attrs   value.Attrs
	builder TupleBuilder
	m       members

	first        any
	firstLabel   string
	firstLabeled bool

	label   string
	labeled bool
	key     keyToken
	sub     Parser
	step    int
}

func (p *tupleParser) Feed(in codec.Input) Parser {
	return p.parse(in)
}

func startTuple(in codec.Input, form TupleForm, opts *ParserOptions, depth int, attrs value.Attrs) Parser {
	p := &tupleParser{form: form, opts: opts, depth: depth, attrs: attrs}
	return p.parse(in)
}

// startTupleBody parses the items and the closing ')' of a tuple whose
// opening '(' has been consumed.
func startTupleBody(in codec.Input, form TupleForm, opts *ParserOptions, depth int, attrs value.Attrs) Parser {
	if depth > opts.maxDepth() {
		return codec.Fail[any](codec.Errorf(in, "maximum nesting depth of %d exceeded", opts.maxDepth()))
	}
	p := &tupleParser{form: form, opts: opts, depth: depth, attrs: attrs, step: 1}
	return p.parse(in)
}

func (p *tupleParser) add(v any) error {
	label, labeled := p.label, p.labeled
	p.label, p.labeled = "", false
	p.m.next()
	if p.m.count == 1 {
		p.first, p.firstLabel, p.firstLabeled = v, label, labeled
		return nil
	}
	if p.builder == nil {
		b, err := p.form.TupleBuilder(p.attrs)
		if err != nil {
			return err
		}
		p.builder = b
		if err := put(b, p.first, p.firstLabel, p.firstLabeled); err != nil {
			return err
		}
		p.first = nil
	}
	return put(p.builder, v, label, labeled)
}

func put(b TupleBuilder, v any, label string, labeled bool) error {
	if labeled {
		return b.SetLabeled(label, v)
	}
	return b.Append(v)
}

func (p *tupleParser) finish(in codec.Input) Parser {
	switch {
	case p.builder != nil:
		v, err := p.builder.Build()
		return build(in, v, err)
	case p.m.count == 0:
		v, err := p.form.EmptyTuple(p.attrs)
		return build(in, v, err)
	case !p.firstLabeled:
		v, err := p.form.UnaryTuple(p.first, p.attrs)
		return build(in, v, err)
	}
	b, err := p.form.TupleBuilder(p.attrs)
	if err != nil {
		return codec.Fail[any](codec.Semantic(in, err))
	}
	if err := b.SetLabeled(p.firstLabel, p.first); err != nil {
		return codec.Fail[any](codec.Semantic(in, err))
	}
	v, err := b.Build()
	return build(in, v, err)
}

func (p *tupleParser) parse(in codec.Input) Parser {
	for {
		switch p.step {
		case 0:
			switch {
			case in.IsCont() && in.Head() == '(':
				in.Step()
				p.step = 1
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "'('"))
			}
		case 1:
			if err := p.m.skip(in, true); err != nil {
				return codec.Fail[any](err)
			}
			switch {
			case in.IsCont() && in.Head() == ')':
				in.Step()
				return p.finish(in)
			case in.IsCont() && !p.m.separated():
				return codec.Fail[any](codec.Expected(in, "',' or ')'"))
			case in.IsCont() && (in.Head() == '"' || isIdentStart(in.Head())):
				p.step = 2
			case in.IsCont():
				p.step = 5
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "')'"))
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
			p.key = p.sub.Get().(keyToken)
			p.sub = nil
			p.step = 3
		case 3:
			for in.IsCont() && isSpace(in.Head()) {
				in.Step()
			}
			switch {
			case in.IsCont() && in.Head() == ':':
				in.Step()
				p.label, p.labeled = p.key.name, true
				p.step = 4
			case in.IsEmpty():
				return p
			default:
				r := p.token(in)
				if r.IsError() {
					return r
				}
				if err := p.add(r.Get()); err != nil {
					return codec.Fail[any](codec.Semantic(in, err))
				}
				p.step = 1
			}
		case 4:
			for in.IsCont() && isBlank(in.Head()) {
				in.Step()
			}
			switch {
			case in.IsCont():
				p.step = 5
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "value"))
			}
		case 5:
			if p.sub == nil {
				p.sub = startValue(in, p.form.ItemForm(), p.opts, p.depth+1)
			} else {
				p.sub = p.sub.Feed(in)
			}
			switch {
			case p.sub.IsError():
				return p.sub
			case !p.sub.IsDone():
				return p
			}
			v := p.sub.Get()
			p.sub = nil
			if err := p.add(v); err != nil {
				return codec.Fail[any](codec.Semantic(in, err))
			}
			p.step = 1
		}
	}
}

// token builds a positional item from a lexed identifier or string that
// turned out not to be a label.
func (p *tupleParser) token(in codec.Input) Parser {
	form := p.form.ItemForm()
	if ef, ok := form.(errorForm); ok {
		return codec.Fail[any](codec.Semantic(in, ef.err))
	}
	if !p.key.quoted {
		return identifierValue(in, form, p.opts, p.key.name, nil)
	}
	f, ok := form.(StringForm)
	if !ok {
		return unsupportedKind(in, form, "string")
	}
	v, err := f.FromString(p.key.name, nil)
	return build(in, v, err)
}
