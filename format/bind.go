package format

import (
	"fmt"
	"reflect"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/grammar"
	"github.com/KimNorgaard/go-waml/value"
)

// Field binds one object key to a field of T.
type Field[T any] struct {
	key string
	typ reflect.Type
	get func(*T) any
	set func(*T, any) error
}

// Bind returns the binding of key to the field reached through get and
// set. The value format of F is resolved through the registry of the
// enclosing Struct.
func Bind[T, F any](key string, get func(*T) F, set func(*T, F)) Field[T] {
	return Field[T]{
		key: key,
		typ: reflect.TypeFor[F](),
		get: func(t *T) any { return get(t) },
		set: func(t *T, v any) error {
			if v == nil {
				var zero F
				set(t, zero)
				return nil
			}
			f, ok := v.(F)
			if !ok {
				return fmt.Errorf("cannot use %T as Go value of type %s for key %q", v, reflect.TypeFor[F](), key)
			}
			set(t, f)
			return nil
		},
	}
}

type structFormat[T any] struct {
	r      *Registry
	fields []Field[T]
	index  map[string]int
}

// Struct returns the format of T read and written as an object with one
// member per field, in the given order. Unknown keys fail to parse.
func Struct[T any](r *Registry, fields ...Field[T]) Format {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.key] = i
	}
	return structFormat[T]{r: r, fields: fields, index: index}
}

func (s structFormat[T]) Type() reflect.Type { return reflect.TypeFor[T]() }
func (s structFormat[T]) Scalar(any) bool    { return false }

func (s structFormat[T]) Form() grammar.Form { return structForm[T]{s} }

func (s structFormat[T]) Writer(v any, opts *grammar.WriterOptions, depth int) codec.Writer {
	t, ok := v.(T)
	if !ok {
		return codec.WriteFail(mismatch(v, s.Type()))
	}
	ms := make([]grammar.Member, len(s.fields))
	for i, f := range s.fields {
		ff, err := s.r.Resolve(f.typ)
		if err != nil {
			return codec.WriteFail(err)
		}
		ms[i] = member(ff, f.get(&t))
		ms[i].Key = f.key
	}
	return grammar.WriteObject(nil, ms, opts, depth)
}

type structForm[T any] struct {
	s structFormat[T]
}

func (f structForm[T]) FormName() string { return f.s.Type().String() }

func (f structForm[T]) ObjectBuilder(value.Attrs) (grammar.ObjectBuilder, error) {
	return &structBuilder[T]{s: f.s, seen: make([]bool, len(f.s.fields))}, nil
}

type structBuilder[T any] struct {
	s    structFormat[T]
	v    T
	seen []bool
}

func (b *structBuilder[T]) field(key string) (Field[T], int, error) {
	i, ok := b.s.index[key]
	if !ok {
		return Field[T]{}, 0, fmt.Errorf("unsupported key %q", key)
	}
	return b.s.fields[i], i, nil
}

func (b *structBuilder[T]) FieldForm(key string) (grammar.Form, error) {
	f, _, err := b.field(key)
	if err != nil {
		return nil, err
	}
	ff, err := b.s.r.Resolve(f.typ)
	if err != nil {
		return nil, err
	}
	return ff.Form(), nil
}

func (b *structBuilder[T]) SetField(key string, v any) error {
	f, i, err := b.field(key)
	if err != nil {
		return err
	}
	if b.seen[i] {
		return fmt.Errorf("duplicate key %q in object", key)
	}
	b.seen[i] = true
	return f.set(&b.v, v)
}

func (b *structBuilder[T]) Build() (any, error) {
	return b.v, nil
}
