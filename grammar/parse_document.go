package grammar

import (
	"github.com/KimNorgaard/go-waml/codec"
)

// ParseDocument returns a parser for a whole document: one value surrounded
// by optional blank lines and '#' comments. An empty document is the unit
// of form.
func ParseDocument(form Form, opts *ParserOptions) Parser {
	return &documentParser{form: form, opts: parserOptions(opts)}
}

type documentParser struct {
	codec.Continuation[any]
	form    Form
	opts    *ParserOptions
	comment bool
	value   any
	sub     Parser
	step    int
}

func (p *documentParser) Feed(in codec.Input) Parser {
	for {
		switch p.step {
		case 0:
			p.comment = skipBlanks(in, true, p.comment)
			switch {
			case in.IsCont():
				p.step = 1
			case in.IsEmpty():
				return p
			case in.IsError():
				return codec.Fail[any](&codec.IOError{Err: in.Err()})
			default:
				return unitValue(in, p.form, nil)
			}
		case 1:
			if p.sub == nil {
				p.sub = startValue(in, p.form, p.opts, 0)
			} else {
				p.sub = p.sub.Feed(in)
			}
			switch {
			case p.sub.IsError():
				return p.sub
			case !p.sub.IsDone():
				return p
			}
			p.value = p.sub.Get()
			p.sub = nil
			p.step = 2
		case 2:
			p.comment = skipBlanks(in, true, p.comment)
			switch {
			case in.IsCont():
				return codec.Fail[any](&codec.SyntaxError{
					Pos:     in.Position(),
					Found:   codec.Found(in),
					Message: "unexpected " + codec.Found(in) + " after value",
				})
			case in.IsEmpty():
				return p
			case in.IsError():
				return codec.Fail[any](&codec.IOError{Err: in.Err()})
			}
			return codec.Complete(p.value)
		}
	}
}

// Parse parses the document s with form.
func Parse(s string, form Form, opts *ParserOptions) (any, error) {
	return codec.ParseAll(ParseDocument(form, opts), codec.NewStringInput(s))
}
