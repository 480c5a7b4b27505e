package grammar

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

const maxHexDigits = 16

// numberParser accumulates an integer in an int64 until it overflows, then
// continues in text as a big integer. Decimals are always kept as text.
type numberParser struct {
	codec.Continuation[any]
	form   NumberForm
	attrs  value.Attrs
	sign   int64
	n      int64
	hex    uint64
	digits int
	text   *strings.Builder
	step   int
}

func (p numberParser) Feed(in codec.Input) Parser {
	return parseNumber(in, p.form, p.attrs, p.sign, p.n, p.hex, p.digits, p.text, p.step)
}

func startNumber(in codec.Input, form NumberForm, attrs value.Attrs) Parser {
	return parseNumber(in, form, attrs, 1, 0, 0, 0, nil, 1)
}

func parseNumber(in codec.Input, form NumberForm, attrs value.Attrs, sign, n int64, hex uint64,
	digits int, text *strings.Builder, step int,
) Parser {
	suspend := func() Parser {
		return numberParser{form: form, attrs: attrs, sign: sign, n: n, hex: hex, digits: digits, text: text, step: step}
	}
	isDecimalMark := func(c rune) bool { return c == '.' || c == 'e' || c == 'E' }

	if step == 1 {
		switch {
		case in.IsCont():
			if in.Head() == '-' {
				in.Step()
				sign = -1
			}
			step = 2
		case in.IsEmpty():
			return suspend()
		default:
			return codec.Fail[any](codec.Expected(in, "number"))
		}
	}
	if step == 2 {
		switch {
		case in.IsCont() && in.Head() == '0':
			in.Step()
			step = 3
		case in.IsCont() && isDigit(in.Head()):
			n = sign * int64(in.Head()-'0')
			in.Step()
			step = 4
		case in.IsEmpty():
			return suspend()
		default:
			return codec.Fail[any](codec.Expected(in, "digit"))
		}
	}
	if step == 3 {
		switch {
		case in.IsCont() && in.Head() == 'x' && sign > 0:
			in.Step()
			step = 6
		case in.IsCont() && isDecimalMark(in.Head()):
			text = &strings.Builder{}
			if sign < 0 {
				text.WriteByte('-')
			}
			text.WriteByte('0')
			step = 7
		case in.IsEmpty():
			return suspend()
		case in.IsError():
			return codec.Fail[any](&codec.IOError{Err: in.Err()})
		default:
			v, err := form.FromInteger(0, attrs)
			return build(in, v, err)
		}
	}
	if step == 4 {
		for in.IsCont() && isDigit(in.Head()) {
			d := int64(in.Head() - '0')
			if sign > 0 && n > (math.MaxInt64-d)/10 || sign < 0 && n < (math.MinInt64+d)/10 {
				text = &strings.Builder{}
				text.WriteString(strconv.FormatInt(n, 10))
				step = 5
				break
			}
			n = n*10 + sign*d
			in.Step()
		}
		if step == 4 {
			switch {
			case in.IsCont() && isDecimalMark(in.Head()):
				text = &strings.Builder{}
				text.WriteString(strconv.FormatInt(n, 10))
				step = 7
			case in.IsEmpty():
				return suspend()
			case in.IsError():
				return codec.Fail[any](&codec.IOError{Err: in.Err()})
			default:
				v, err := form.FromInteger(n, attrs)
				return build(in, v, err)
			}
		}
	}
	if step == 5 {
		for in.IsCont() && isDigit(in.Head()) {
			text.WriteRune(in.Head())
			in.Step()
		}
		switch {
		case in.IsCont() && isDecimalMark(in.Head()):
			step = 7
		case in.IsEmpty():
			return suspend()
		case in.IsError():
			return codec.Fail[any](&codec.IOError{Err: in.Err()})
		default:
			b, ok := new(big.Int).SetString(text.String(), 10)
			if !ok {
				return codec.Fail[any](codec.Errorf(in, "malformed integer %q", text.String()))
			}
			v, err := form.FromBigInteger(b, attrs)
			return build(in, v, err)
		}
	}
	if step == 6 {
		for in.IsCont() {
			d, ok := hexValue(in.Head())
			if !ok {
				break
			}
			if digits == maxHexDigits {
				return codec.Fail[any](codec.Errorf(in, "hexadecimal literal exceeds %d digits", maxHexDigits))
			}
			hex = hex<<4 | uint64(d)
			digits++
			in.Step()
		}
		switch {
		case in.IsEmpty():
			return suspend()
		case in.IsError():
			return codec.Fail[any](&codec.IOError{Err: in.Err()})
		case digits == 0:
			return codec.Fail[any](codec.Expected(in, "hex digit"))
		}
		v, err := form.FromHexadecimal(hex, digits, attrs)
		return build(in, v, err)
	}
	if step == 7 {
		c := in.Head()
		text.WriteRune(c)
		in.Step()
		if c == '.' {
			step = 8
		} else {
			step = 10
		}
	}
	if step == 8 || step == 11 {
		switch {
		case in.IsCont() && isDigit(in.Head()):
			text.WriteRune(in.Head())
			in.Step()
			step++
		case in.IsEmpty():
			return suspend()
		default:
			return codec.Fail[any](codec.Expected(in, "digit"))
		}
	}
	if step == 9 {
		for in.IsCont() && isDigit(in.Head()) {
			text.WriteRune(in.Head())
			in.Step()
		}
		switch {
		case in.IsCont() && (in.Head() == 'e' || in.Head() == 'E'):
			text.WriteRune(in.Head())
			in.Step()
			step = 10
		case in.IsEmpty():
			return suspend()
		case in.IsError():
			return codec.Fail[any](&codec.IOError{Err: in.Err()})
		default:
			return decimal(in, form, text.String(), attrs)
		}
	}
	if step == 10 {
		switch {
		case in.IsCont() && (in.Head() == '+' || in.Head() == '-'):
			text.WriteRune(in.Head())
			in.Step()
			step = 11
		case in.IsEmpty():
			return suspend()
		default:
			step = 11
		}
		if step == 11 {
			switch {
			case in.IsCont() && isDigit(in.Head()):
				text.WriteRune(in.Head())
				in.Step()
				step = 12
			case in.IsEmpty():
				return suspend()
			default:
				return codec.Fail[any](codec.Expected(in, "digit"))
			}
		}
	}
	if step == 12 {
		for in.IsCont() && isDigit(in.Head()) {
			text.WriteRune(in.Head())
			in.Step()
		}
		switch {
		case in.IsEmpty():
			return suspend()
		case in.IsError():
			return codec.Fail[any](&codec.IOError{Err: in.Err()})
		}
	}
	return decimal(in, form, text.String(), attrs)
}

func decimal(in codec.Input, form NumberForm, text string, attrs value.Attrs) Parser {
	v, err := form.FromDecimal(text, attrs)
	return build(in, v, err)
}
