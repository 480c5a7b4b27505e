package waml

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/grammar"
	"github.com/KimNorgaard/go-waml/internal/logging"
)

// Parse parses data into the untyped value model of package value.
func Parse(data []byte, opts ...Option) (any, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return codec.ParseAll(grammar.ParseDocument(grammar.Untyped, &o.parser), codec.NewBytesInput(data))
}

// ParseString is Parse for a string.
func ParseString(s string, opts ...Option) (any, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return grammar.Parse(s, grammar.Untyped, &o.parser)
}

// Unmarshal parses data and stores the result in the value pointed to by
// v, using the format registered for the pointed-to type.
func Unmarshal(data []byte, v any, opts ...Option) error {
	o, err := newOptions(opts)
	if err != nil {
		return err
	}
	rv, form, err := target(v, o)
	if err != nil {
		return err
	}
	result, err := codec.ParseAll(grammar.ParseDocument(form, &o.parser), codec.NewBytesInput(data))
	if err != nil {
		return err
	}
	return store(rv, result)
}

// Marshal returns the WAML encoding of v.
func Marshal(v any, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode(&buf, v, o, logging.New(o.logger, "marshal")); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// target checks that v is a non-nil pointer and returns the value it
// points to with the form of its type.
func target(v any, o *options) (reflect.Value, grammar.Form, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, nil, &InvalidUnmarshalError{Type: reflect.TypeOf(v)}
	}
	f, err := o.registry.Resolve(rv.Type().Elem())
	if err != nil {
		return reflect.Value{}, nil, err
	}
	return rv.Elem(), f.Form(), nil
}

func store(rv reflect.Value, result any) error {
	if result == nil {
		rv.SetZero()
		return nil
	}
	x := reflect.ValueOf(result)
	if !x.Type().AssignableTo(rv.Type()) {
		return fmt.Errorf("waml: cannot store %s in Go value of type %s", x.Type(), rv.Type())
	}
	rv.Set(x)
	return nil
}
