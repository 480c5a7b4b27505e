package grammar

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

// stringParser parses "..." strings and """...""" text blocks. A text
// block closes at the first run of three quotes.
type stringParser struct {
	codec.Continuation[any]
	form  StringForm
	attrs value.Attrs
	b     *strings.Builder
	block bool
	code  rune
	high  rune
	step  int
}

func (p stringParser) Feed(in codec.Input) Parser {
	return parseString(in, p.form, p.attrs, p.b, p.block, p.code, p.high, p.step)
}

func startString(in codec.Input, form StringForm, attrs value.Attrs) Parser {
	return parseString(in, form, attrs, nil, false, 0, 0, 1)
}

func parseString(in codec.Input, form StringForm, attrs value.Attrs, b *strings.Builder,
	block bool, code, high rune, step int,
) Parser {
	suspend := func() Parser {
		return stringParser{form: form, attrs: attrs, b: b, block: block, code: code, high: high, step: step}
	}
	finish := func() Parser {
		if high != 0 {
			b.WriteRune(utf8.RuneError)
		}
		v, err := form.FromString(b.String(), attrs)
		return build(in, v, err)
	}
	for {
		switch step {
		case 1:
			switch {
			case in.IsCont() && in.Head() == '"':
				in.Step()
				b = &strings.Builder{}
				step = 2
			case in.IsEmpty():
				return suspend()
			default:
				return codec.Fail[any](codec.Expected(in, "'\"'"))
			}
		case 2:
			switch {
			case in.IsCont() && in.Head() == '"':
				in.Step()
				step = 3
			case in.IsCont():
				step = 4
			case in.IsEmpty():
				return suspend()
			default:
				return codec.Fail[any](codec.Unclosed(in, "string"))
			}
		case 3:
			switch {
			case in.IsCont() && in.Head() == '"':
				in.Step()
				block = true
				step = 4
			case in.IsEmpty():
				return suspend()
			case in.IsError():
				return codec.Fail[any](&codec.IOError{Err: in.Err()})
			default:
				return finish()
			}
		case 4:
		scan:
			for in.IsCont() {
				c := in.Head()
				switch {
				case block && isBlockChar(c) || !block && isStringChar(c):
					high = appendRune(b, high, c)
					in.Step()
				case c == '"':
					in.Step()
					if !block {
						return finish()
					}
					step = 5
					break scan
				case c == '\\':
					in.Step()
					step = 7
					break scan
				case isNewline(c):
					return codec.Fail[any](codec.Unclosed(in, "string"))
				default:
					return codec.Fail[any](codec.Errorf(in, "invalid control character U+%04X in string", c))
				}
			}
			if step == 4 {
				if in.IsEmpty() {
					return suspend()
				}
				return codec.Fail[any](codec.Unclosed(in, "string"))
			}
		case 5, 6:
			switch {
			case in.IsCont() && in.Head() == '"':
				in.Step()
				if step == 6 {
					return finish()
				}
				step = 6
			case in.IsCont():
				for range step - 4 {
					high = appendRune(b, high, '"')
				}
				step = 4
			case in.IsEmpty():
				return suspend()
			default:
				return codec.Fail[any](codec.Unclosed(in, "text block"))
			}
		case 7:
			switch {
			case in.IsCont() && in.Head() == 'u':
				in.Step()
				code = 0
				step = 8
			case in.IsCont():
				r, ok := unescape(in.Head())
				if !ok {
					return codec.Fail[any](codec.Errorf(in, "invalid escape sequence '\\%c'", in.Head()))
				}
				high = appendRune(b, high, r)
				in.Step()
				step = 4
			case in.IsEmpty():
				return suspend()
			default:
				return codec.Fail[any](codec.Unclosed(in, "string"))
			}
		default:
			switch {
			case in.IsCont():
				d, ok := hexValue(in.Head())
				if !ok {
					return codec.Fail[any](codec.Expected(in, "hex digit"))
				}
				code = code<<4 | d
				in.Step()
				step++
				if step == 12 {
					high = appendRune(b, high, code)
					step = 4
				}
			case in.IsEmpty():
				return suspend()
			default:
				return codec.Fail[any](codec.Unclosed(in, "string"))
			}
		}
	}
}

// appendRune writes r to b, pairing a pending high surrogate with a
// following low surrogate. It returns the new pending high surrogate.
func appendRune(b *strings.Builder, high, r rune) rune {
	if high != 0 {
		if r >= 0xDC00 && r <= 0xDFFF {
			b.WriteRune(utf16.DecodeRune(high, r))
			return 0
		}
		b.WriteRune(utf8.RuneError)
	}
	if r >= 0xD800 && r <= 0xDBFF {
		return r
	}
	b.WriteRune(r)
	return 0
}
