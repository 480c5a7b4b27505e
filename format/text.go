package format

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"net/netip"
	"reflect"
	"time"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/grammar"
	"github.com/KimNorgaard/go-waml/value"
	"github.com/google/uuid"
)

// textForm builds values by parsing the text of a quoted string.
type textForm struct {
	named
	parse func(s string) (any, error)
}

func (f textForm) FromString(s string, _ value.Attrs) (any, error) {
	v, err := f.parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", f.typ, s, err)
	}
	return v, nil
}

// textFormat returns a format for T written as the quoted text of format
// and read back with parse.
func textFormat[T any](parse func(string) (T, error), format func(T) string) Format {
	t := reflect.TypeFor[T]()
	form := textForm{named: named{t}, parse: func(s string) (any, error) { return parse(s) }}
	return scalar{typ: t, form: form, write: func(v reflect.Value, _ *grammar.WriterOptions) codec.Writer {
		return grammar.WriteQuoted(format(v.Interface().(T)))
	}}
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// durationForm reads Go duration text or integer nanoseconds.
type durationForm struct {
	textForm
}

func (durationForm) FromInteger(n int64, _ value.Attrs) (any, error) {
	return time.Duration(n), nil
}

func durationFormat() Format {
	t := reflect.TypeFor[time.Duration]()
	form := durationForm{textForm{named: named{t}, parse: func(s string) (any, error) { return time.ParseDuration(s) }}}
	return scalar{typ: t, form: form, write: func(v reflect.Value, _ *grammar.WriterOptions) codec.Writer {
		return grammar.WriteQuoted(time.Duration(v.Int()).String())
	}}
}

type bigForm struct{ named }

func (bigForm) FromIdentifier(name string, _ value.Attrs) (any, error) {
	if name == "null" {
		return (*big.Int)(nil), nil
	}
	return nil, fmt.Errorf("invalid integer %q", name)
}

func (bigForm) FromInteger(n int64, _ value.Attrs) (any, error) {
	return big.NewInt(n), nil
}

func (bigForm) FromHexadecimal(n uint64, _ int, _ value.Attrs) (any, error) {
	return new(big.Int).SetUint64(n), nil
}

func (bigForm) FromBigInteger(n *big.Int, _ value.Attrs) (any, error) {
	return n, nil
}

func (bigForm) FromDecimal(text string, _ value.Attrs) (any, error) {
	return nil, fmt.Errorf("cannot parse decimal %s as Go value of type *big.Int", text)
}

func bigFormat() Format {
	t := reflect.TypeFor[*big.Int]()
	return scalar{typ: t, form: bigForm{named{t}}, write: func(v reflect.Value, _ *grammar.WriterOptions) codec.Writer {
		if v.IsNil() {
			return grammar.Literal("null")
		}
		return grammar.Literal(v.Interface().(*big.Int).String())
	}}
}

const blobAttr = "blob"

// blobForm reads byte slices from base64 text, usually marked @blob.
type blobForm struct{ named }

// FromIdentifier reads null as nil. Other identifiers are base64 text
// that happened to be written bare.
func (f blobForm) FromIdentifier(name string, attrs value.Attrs) (any, error) {
	if name == "null" {
		return []byte(nil), nil
	}
	return f.FromString(name, attrs)
}

func (blobForm) FromString(s string, _ value.Attrs) (any, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("malformed base64: %w", err)
	}
	return b, nil
}

func blobFormat() Format {
	t := reflect.TypeFor[[]byte]()
	blob := value.Attrs{{Name: blobAttr, Value: value.Unit{}}}
	return scalar{typ: t, form: blobForm{named{t}}, write: func(v reflect.Value, opts *grammar.WriterOptions) codec.Writer {
		if v.IsNil() {
			return grammar.Literal("null")
		}
		return grammar.WriteAttributed(blob, grammar.WriteQuoted(base64.StdEncoding.EncodeToString(v.Bytes())), opts)
	}}
}

// builtins returns the providers every registry starts with.
func builtins() []Provider {
	return []Provider{
		exact(blobFormat()),
		exact(bigFormat()),
		exact(textFormat(parseTime, formatTime)),
		exact(durationFormat()),
		exact(textFormat(netip.ParseAddrPort, netip.AddrPort.String)),
		exact(textFormat(netip.ParseAddr, netip.Addr.String)),
		exact(textFormat(uuid.Parse, uuid.UUID.String)),
		models(),
		kinds(),
		composites(),
	}
}
