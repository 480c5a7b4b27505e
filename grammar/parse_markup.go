package grammar

import (
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

// markupParser parses "<<...>>" and the nested "<...>" runs inside it.
// Content is text, escapes, inline "@attr" or "@attr<...>" nodes and
// "{...}" expression blocks.
type markupParser struct {
	codec.Continuation[any]
	form    MarkupForm
	opts    *ParserOptions
	depth   int
	attrs   value.Attrs
	nested  bool
	builder MarkupBuilder
	text    strings.Builder
	code    rune
	high    rune
	m       members
	sub     Parser
	step    int
}

func (p *markupParser) Feed(in codec.Input) Parser {
	return p.parse(in)
}

func startMarkup(in codec.Input, form MarkupForm, opts *ParserOptions, depth int, attrs value.Attrs) Parser {
	p := &markupParser{form: form, opts: opts, depth: depth, attrs: attrs}
	return p.parse(in)
}

func startNestedMarkup(in codec.Input, form MarkupForm, opts *ParserOptions, depth int, attrs value.Attrs) Parser {
	if depth > opts.maxDepth() {
		return codec.Fail[any](codec.Errorf(in, "maximum nesting depth of %d exceeded", opts.maxDepth()))
	}
	p := &markupParser{form: form, opts: opts, depth: depth, attrs: attrs, nested: true, step: 2}
	if err := p.open(); err != nil {
		return codec.Fail[any](codec.Semantic(in, err))
	}
	return p.parse(in)
}

func (p *markupParser) open() error {
	b, err := p.form.MarkupBuilder(p.attrs)
	p.builder = b
	return err
}

func (p *markupParser) flush() error {
	if p.high != 0 {
		p.text.WriteRune(utf8.RuneError)
		p.high = 0
	}
	if p.text.Len() == 0 {
		return nil
	}
	s := p.text.String()
	p.text.Reset()
	return p.builder.AppendText(s)
}

func (p *markupParser) finish(in codec.Input) Parser {
	if err := p.flush(); err != nil {
		return codec.Fail[any](codec.Semantic(in, err))
	}
	v, err := p.builder.Build()
	return build(in, v, err)
}

// node feeds the embedded value parser and appends its result.
func (p *markupParser) node(in codec.Input, start func() Parser) (Parser, bool) {
	if p.sub == nil {
		p.sub = start()
	} else {
		p.sub = p.sub.Feed(in)
	}
	switch {
	case p.sub.IsDone():
		v := p.sub.Get()
		p.sub = nil
		if err := p.builder.AppendNode(v); err != nil {
			return codec.Fail[any](codec.Semantic(in, err)), true
		}
		return nil, false
	case p.sub.IsError():
		return p.sub, true
	}
	return p, true
}

func (p *markupParser) parse(in codec.Input) Parser {
	for {
		switch p.step {
		case 0, 1:
			switch {
			case in.IsCont() && in.Head() == '<':
				in.Step()
				if p.step == 1 {
					if err := p.open(); err != nil {
						return codec.Fail[any](codec.Semantic(in, err))
					}
				}
				p.step++
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "'<'"))
			}
		case 2:
		scan:
			for in.IsCont() {
				c := in.Head()
				if isMarkupText(c) {
					p.high = appendRune(&p.text, p.high, c)
					in.Step()
					continue
				}
				switch c {
				case '\\':
					in.Step()
					p.step = 3
				case '>':
					in.Step()
					if p.nested {
						return p.finish(in)
					}
					p.step = 9
				case '<':
					in.Step()
					p.step = 10
				case '@':
					p.step = 11
				case '{':
					in.Step()
					p.m = members{}
					p.step = 12
				default:
					return codec.Fail[any](codec.Errorf(in, "invalid control character U+%04X in markup", c))
				}
				break scan
			}
			switch {
			case p.step >= 10:
				if err := p.flush(); err != nil {
					return codec.Fail[any](codec.Semantic(in, err))
				}
			case p.step != 2:
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Unclosed(in, "markup"))
			}
		case 3:
			switch {
			case in.IsCont() && in.Head() == 'u':
				in.Step()
				p.code = 0
				p.step = 4
			case in.IsCont():
				r, ok := unescape(in.Head())
				if !ok {
					return codec.Fail[any](codec.Errorf(in, "invalid escape sequence '\\%c'", in.Head()))
				}
				p.high = appendRune(&p.text, p.high, r)
				in.Step()
				p.step = 2
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Unclosed(in, "markup"))
			}
		case 4, 5, 6, 7:
			switch {
			case in.IsCont():
				d, ok := hexValue(in.Head())
				if !ok {
					return codec.Fail[any](codec.Expected(in, "hex digit"))
				}
				p.code = p.code<<4 | d
				in.Step()
				p.step++
				if p.step == 8 {
					p.high = appendRune(&p.text, p.high, p.code)
					p.step = 2
				}
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Unclosed(in, "markup"))
			}
		case 9:
			switch {
			case in.IsCont() && in.Head() == '>':
				in.Step()
				return p.finish(in)
			case in.IsCont():
				p.high = appendRune(&p.text, p.high, '>')
				p.step = 2
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Unclosed(in, "markup"))
			}
		case 10:
			if r, stop := p.node(in, func() Parser {
				return startNestedMarkup(in, p.form, p.opts, p.depth+1, nil)
			}); stop {
				return r
			}
			p.step = 2
		case 11:
			if r, stop := p.node(in, func() Parser {
				return startInline(in, p.form, p.opts, p.depth+1)
			}); stop {
				return r
			}
			p.step = 2
		case 12:
			if err := p.m.skip(in, true); err != nil {
				return codec.Fail[any](err)
			}
			switch {
			case in.IsCont() && in.Head() == '}':
				in.Step()
				p.step = 2
			case in.IsCont() && !p.m.separated():
				return codec.Fail[any](codec.Expected(in, "',' or '}'"))
			case in.IsCont():
				p.step = 13
			case in.IsEmpty():
				return p
			default:
				return codec.Fail[any](codec.Expected(in, "'}'"))
			}
		case 13:
			if r, stop := p.node(in, func() Parser {
				return startValue(in, p.form.NodeForm(), p.opts, p.depth+1)
			}); stop {
				return r
			}
			p.m.next()
			p.step = 12
		}
	}
}

// inlineParser parses an inline markup node: attributes chained without
// whitespace, optionally followed by an adjacent "<...>" they annotate.
type inlineParser struct {
	codec.Continuation[any]
	form  MarkupForm
	opts  *ParserOptions
	depth int
	attrs value.Attrs
	sub   Parser
	step  int
}

func (p inlineParser) Feed(in codec.Input) Parser {
	return p.parse(in)
}

func startInline(in codec.Input, form MarkupForm, opts *ParserOptions, depth int) Parser {
	if depth > opts.maxDepth() {
		return codec.Fail[any](codec.Errorf(in, "maximum nesting depth of %d exceeded", opts.maxDepth()))
	}
	return inlineParser{form: form, opts: opts, depth: depth}.parse(in)
}

func (p inlineParser) parse(in codec.Input) Parser {
	if p.step == 0 {
		if p.sub == nil {
			p.sub = startAttrs(in, p.opts, p.depth, true)
		} else {
			p.sub = p.sub.Feed(in)
		}
		switch {
		case p.sub.IsError():
			return p.sub
		case !p.sub.IsDone():
			return p
		}
		p.attrs = p.sub.Get().(value.Attrs)
		p.sub = nil
		p.step = 1
	}
	if p.step == 1 {
		switch {
		case in.IsCont() && in.Head() == '<':
			in.Step()
			p.step = 2
		case in.IsEmpty():
			return p
		default:
			return unitValue(in, p.form.NodeForm(), p.attrs)
		}
	}
	if p.sub == nil {
		p.sub = startNestedMarkup(in, p.form, p.opts, p.depth, p.attrs)
	} else {
		p.sub = p.sub.Feed(in)
	}
	if p.sub.IsCont() {
		return p
	}
	return p.sub
}
