package format

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/grammar"
	"github.com/KimNorgaard/go-waml/value"
)

// scalar is a format whose values write as one token.
type scalar struct {
	typ   reflect.Type
	form  grammar.Form
	write func(v reflect.Value, opts *grammar.WriterOptions) codec.Writer
}

func (s scalar) Type() reflect.Type { return s.typ }
func (s scalar) Form() grammar.Form { return s.form }
func (s scalar) Scalar(any) bool    { return true }

func (s scalar) Writer(v any, opts *grammar.WriterOptions, _ int) codec.Writer {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != s.typ {
		return codec.WriteFail(mismatch(v, s.typ))
	}
	return s.write(rv, opts)
}

func mismatch(v any, t reflect.Type) error {
	return fmt.Errorf("waml: cannot write %T as %s", v, t)
}

// named gives every typed form its diagnostic name.
type named struct {
	typ reflect.Type
}

func (n named) FormName() string { return n.typ.String() }

// FromIdentifier reads null as the zero value of the type.
func (n named) FromIdentifier(name string, _ value.Attrs) (any, error) {
	if name != "null" {
		return nil, fmt.Errorf("cannot parse identifier %s as Go value of type %s", name, n.typ)
	}
	return reflect.Zero(n.typ).Interface(), nil
}

func (n named) convert(v any) any {
	return reflect.ValueOf(v).Convert(n.typ).Interface()
}

type boolForm struct{ named }

func (f boolForm) FromIdentifier(name string, _ value.Attrs) (any, error) {
	switch name {
	case "true":
		return f.convert(true), nil
	case "false", "null":
		return f.convert(false), nil
	}
	return nil, fmt.Errorf("invalid boolean %q", name)
}

func boolFormat(t reflect.Type) Format {
	return scalar{typ: t, form: boolForm{named{t}}, write: func(v reflect.Value, _ *grammar.WriterOptions) codec.Writer {
		return grammar.Literal(strconv.FormatBool(v.Bool()))
	}}
}

type intForm struct {
	named
	bits     int
	unsigned bool
}

func (f intForm) overflow(text string) error {
	return fmt.Errorf("integer %s overflows %s", text, f.typ)
}

func (f intForm) FromInteger(n int64, _ value.Attrs) (any, error) {
	if f.unsigned {
		if n < 0 || f.bits < 64 && uint64(n)>>f.bits != 0 {
			return nil, f.overflow(strconv.FormatInt(n, 10))
		}
		return f.convert(uint64(n)), nil
	}
	if f.bits < 64 && (n < -1<<(f.bits-1) || n > 1<<(f.bits-1)-1) {
		return nil, f.overflow(strconv.FormatInt(n, 10))
	}
	return f.convert(n), nil
}

// FromHexadecimal reinterprets the bit pattern n in the width of the
// target type, so 0xff reads as -1 into an int8.
func (f intForm) FromHexadecimal(n uint64, _ int, _ value.Attrs) (any, error) {
	if f.bits < 64 && n>>f.bits != 0 {
		return nil, f.overflow(fmt.Sprintf("0x%x", n))
	}
	if f.unsigned {
		return f.convert(n), nil
	}
	shift := 64 - f.bits
	return f.convert(int64(n<<shift) >> shift), nil
}

func (f intForm) FromBigInteger(n *big.Int, _ value.Attrs) (any, error) {
	if f.unsigned && n.IsUint64() {
		if u := n.Uint64(); f.bits == 64 || u>>f.bits == 0 {
			return f.convert(u), nil
		}
	}
	return nil, f.overflow(n.String())
}

func (f intForm) FromDecimal(text string, _ value.Attrs) (any, error) {
	return nil, fmt.Errorf("cannot parse decimal %s as Go value of type %s", text, f.typ)
}

func intFormat(t reflect.Type, unsigned bool) Format {
	form := intForm{named: named{t}, bits: t.Bits(), unsigned: unsigned}
	return scalar{typ: t, form: form, write: func(v reflect.Value, _ *grammar.WriterOptions) codec.Writer {
		if unsigned {
			return grammar.WriteUnsigned(v.Uint())
		}
		return grammar.WriteInteger(v.Int())
	}}
}

type floatForm struct {
	named
	bits int
}

func (f floatForm) FromInteger(n int64, _ value.Attrs) (any, error) {
	return f.convert(float64(n)), nil
}

// FromHexadecimal reinterprets the bit pattern n as an IEEE 754 number:
// at most 8 digits denote a float32, more a float64.
func (f floatForm) FromHexadecimal(n uint64, digits int, _ value.Attrs) (any, error) {
	if digits <= 8 {
		return f.convert(float64(math.Float32frombits(uint32(n)))), nil
	}
	return f.convert(math.Float64frombits(n)), nil
}

func (f floatForm) FromBigInteger(n *big.Int, _ value.Attrs) (any, error) {
	x, _ := new(big.Float).SetInt(n).Float64()
	return f.convert(x), nil
}

func (f floatForm) FromDecimal(text string, _ value.Attrs) (any, error) {
	x, err := strconv.ParseFloat(text, f.bits)
	switch {
	case math.IsInf(x, 0):
		return nil, fmt.Errorf("decimal %s overflows %s", text, f.typ)
	case err != nil && !errors.Is(err, strconv.ErrRange):
		return nil, fmt.Errorf("invalid decimal %q", text)
	}
	return f.convert(x), nil
}

func floatFormat(t reflect.Type) Format {
	bits := t.Bits()
	return scalar{typ: t, form: floatForm{named: named{t}, bits: bits}, write: func(v reflect.Value, _ *grammar.WriterOptions) codec.Writer {
		return grammar.WriteFloat(v.Float(), bits)
	}}
}

type stringForm struct{ named }

// FromIdentifier reads null as the empty string and any other identifier
// as its name.
func (f stringForm) FromIdentifier(name string, _ value.Attrs) (any, error) {
	if name == "null" {
		return f.convert(""), nil
	}
	return f.convert(name), nil
}

func (f stringForm) FromString(s string, _ value.Attrs) (any, error) {
	return f.convert(s), nil
}

func stringFormat(t reflect.Type) Format {
	return scalar{typ: t, form: stringForm{named{t}}, write: func(v reflect.Value, opts *grammar.WriterOptions) codec.Writer {
		return grammar.WriteString(v.String(), opts)
	}}
}

// kinds resolves booleans, numbers and strings by kind, which covers named
// types such as "type Level int".
func kinds() Provider {
	return NewProvider(PriorityKind, func(t reflect.Type, _ *Registry) (Format, error) {
		switch t.Kind() {
		case reflect.Bool:
			return boolFormat(t), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return intFormat(t, false), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return intFormat(t, true), nil
		case reflect.Float32, reflect.Float64:
			return floatFormat(t), nil
		case reflect.String:
			return stringFormat(t), nil
		}
		return nil, nil
	})
}
