package format

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/grammar"
	"github.com/KimNorgaard/go-waml/value"
)

// assign returns v as a reflect.Value of type t. A nil v is the zero
// value of t.
func assign(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(t):
		return rv, nil
	case rv.Type().ConvertibleTo(t) && rv.Kind() == t.Kind():
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as Go value of type %s", v, t)
}

// elemForm resolves the form of t, or a form failing with the resolution
// error.
func elemForm(r *Registry, t reflect.Type) grammar.Form {
	f, err := r.Resolve(t)
	if err != nil {
		return grammar.FormError(err)
	}
	return f.Form()
}

// sequence is the format of slices and arrays.
type sequence struct {
	typ reflect.Type
	r   *Registry
}

func (s sequence) Type() reflect.Type { return s.typ }
func (s sequence) Scalar(any) bool    { return false }

func (s sequence) Form() grammar.Form {
	return sequenceForm{named: named{s.typ}, r: s.r}
}

func (s sequence) Writer(v any, opts *grammar.WriterOptions, depth int) codec.Writer {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != s.typ {
		return codec.WriteFail(mismatch(v, s.typ))
	}
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return grammar.Literal("null")
	}
	ef, err := s.r.Resolve(s.typ.Elem())
	if err != nil {
		return codec.WriteFail(err)
	}
	ms := make([]grammar.Member, rv.Len())
	for i := range ms {
		ms[i] = member(ef, rv.Index(i).Interface())
	}
	return grammar.WriteArray(nil, ms, opts, depth)
}

func member(f Format, v any) grammar.Member {
	return grammar.Member{
		Scalar: f.Scalar(v),
		Write: func(opts *grammar.WriterOptions, depth int) codec.Writer {
			return f.Writer(v, opts, depth)
		},
	}
}

type sequenceForm struct {
	named
	r *Registry
}

func (f sequenceForm) ElementForm() grammar.Form {
	return elemForm(f.r, f.typ.Elem())
}

func (f sequenceForm) ArrayBuilder(value.Attrs) (grammar.ArrayBuilder, error) {
	if f.typ.Kind() == reflect.Array {
		return &sequenceBuilder{v: reflect.New(f.typ).Elem()}, nil
	}
	return &sequenceBuilder{v: reflect.MakeSlice(f.typ, 0, 0)}, nil
}

type sequenceBuilder struct {
	v reflect.Value
	n int
}

func (b *sequenceBuilder) Append(v any) error {
	ev, err := assign(v, b.v.Type().Elem())
	if err != nil {
		return err
	}
	if b.v.Kind() == reflect.Array {
		if b.n == b.v.Len() {
			return fmt.Errorf("too many elements for %s", b.v.Type())
		}
		b.v.Index(b.n).Set(ev)
	} else {
		b.v = reflect.Append(b.v, ev)
	}
	b.n++
	return nil
}

func (b *sequenceBuilder) Build() (any, error) {
	return b.v.Interface(), nil
}

// mapping is the format of maps with string keys.
type mapping struct {
	typ reflect.Type
	r   *Registry
}

func (m mapping) Type() reflect.Type { return m.typ }
func (m mapping) Scalar(any) bool    { return false }

func (m mapping) Form() grammar.Form {
	return mappingForm{named: named{m.typ}, r: m.r}
}

func (m mapping) Writer(v any, opts *grammar.WriterOptions, depth int) codec.Writer {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != m.typ {
		return codec.WriteFail(mismatch(v, m.typ))
	}
	if rv.IsNil() {
		return grammar.Literal("null")
	}
	ef, err := m.r.Resolve(m.typ.Elem())
	if err != nil {
		return codec.WriteFail(err)
	}
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})
	ms := make([]grammar.Member, len(keys))
	for i, k := range keys {
		ms[i] = member(ef, rv.MapIndex(k).Interface())
		ms[i].Key = k.String()
	}
	return grammar.WriteObject(nil, ms, opts, depth)
}

type mappingForm struct {
	named
	r *Registry
}

func (f mappingForm) ObjectBuilder(value.Attrs) (grammar.ObjectBuilder, error) {
	return &mappingBuilder{m: reflect.MakeMap(f.typ), elem: elemForm(f.r, f.typ.Elem())}, nil
}

type mappingBuilder struct {
	m    reflect.Value
	elem grammar.Form
}

func (b *mappingBuilder) FieldForm(string) (grammar.Form, error) {
	return b.elem, nil
}

func (b *mappingBuilder) SetField(key string, v any) error {
	k := reflect.ValueOf(key).Convert(b.m.Type().Key())
	if b.m.MapIndex(k).IsValid() {
		return fmt.Errorf("duplicate key %q in object", key)
	}
	ev, err := assign(v, b.m.Type().Elem())
	if err != nil {
		return err
	}
	b.m.SetMapIndex(k, ev)
	return nil
}

func (b *mappingBuilder) Build() (any, error) {
	return b.m.Interface(), nil
}

// pointer is the format of *T, reading null as nil.
type pointer struct {
	typ reflect.Type
	r   *Registry
}

func (p pointer) Type() reflect.Type { return p.typ }

func (p pointer) Form() grammar.Form {
	elem := p.typ.Elem()
	ef, err := p.r.Resolve(elem)
	if err != nil {
		return grammar.FormError(err)
	}
	return grammar.Adapter{
		Inner: ef.Form(),
		Map: func(v any) (any, error) {
			ev, err := assign(v, elem)
			if err != nil {
				return nil, err
			}
			ptr := reflect.New(elem)
			ptr.Elem().Set(ev)
			return ptr.Interface(), nil
		},
		Null: func() any { return reflect.Zero(p.typ).Interface() },
	}
}

func (p pointer) elem(v any) (Format, any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != p.typ || rv.IsNil() {
		return nil, nil, false
	}
	ef, err := p.r.Resolve(p.typ.Elem())
	if err != nil {
		return nil, nil, false
	}
	return ef, rv.Elem().Interface(), true
}

func (p pointer) Scalar(v any) bool {
	if ef, ev, ok := p.elem(v); ok {
		return ef.Scalar(ev)
	}
	return true
}

func (p pointer) Writer(v any, opts *grammar.WriterOptions, depth int) codec.Writer {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != p.typ {
		return codec.WriteFail(mismatch(v, p.typ))
	}
	if rv.IsNil() {
		return grammar.Literal("null")
	}
	ef, err := p.r.Resolve(p.typ.Elem())
	if err != nil {
		return codec.WriteFail(err)
	}
	return ef.Writer(rv.Elem().Interface(), opts, depth)
}

// untyped reads interface values and the value model with the Untyped
// form. Interface values are written with the format of their dynamic
// type.
type untyped struct {
	typ reflect.Type
	r   *Registry
}

func (u untyped) Type() reflect.Type { return u.typ }

func (u untyped) Form() grammar.Form {
	if u.typ.Kind() == reflect.Interface && u.typ.NumMethod() == 0 {
		return grammar.Untyped
	}
	return grammar.Adapter{
		Inner: grammar.Untyped,
		Map: func(v any) (any, error) {
			// Objects are built behind a pointer.
			if o, ok := v.(*value.Object); ok && u.typ == objectType {
				return *o, nil
			}
			rv, err := assign(v, u.typ)
			if err != nil {
				return nil, err
			}
			return rv.Interface(), nil
		},
	}
}

// dynamic returns the format of v's dynamic type when u is an interface
// format.
func (u untyped) dynamic(v any) (Format, error) {
	if v == nil || u.typ.Kind() != reflect.Interface {
		return nil, nil
	}
	return u.r.Resolve(reflect.TypeOf(v))
}

func (u untyped) Scalar(v any) bool {
	if f, err := u.dynamic(v); err == nil && f != nil {
		return f.Scalar(v)
	}
	return grammar.Scalar(v)
}

func (u untyped) Writer(v any, opts *grammar.WriterOptions, depth int) codec.Writer {
	f, err := u.dynamic(v)
	switch {
	case err != nil:
		return codec.WriteFail(err)
	case f != nil:
		return f.Writer(v, opts, depth)
	}
	return grammar.WriteValueAt(v, opts, depth)
}

var objectType = reflect.TypeFor[value.Object]()

// models resolves the types of package value.
func models() Provider {
	types := []reflect.Type{
		reflect.TypeFor[*value.Object](),
		objectType,
		reflect.TypeFor[value.Tuple](),
		reflect.TypeFor[value.Markup](),
		reflect.TypeFor[value.Attributed](),
		reflect.TypeFor[value.Unit](),
		reflect.TypeFor[value.Ref](),
	}
	return NewProvider(PriorityExact, func(t reflect.Type, r *Registry) (Format, error) {
		if slices.Contains(types, t) {
			return untyped{typ: t, r: r}, nil
		}
		return nil, nil
	})
}

// composites resolves slices, arrays, string-keyed maps, pointers and
// interfaces. Element formats are resolved when first needed, which keeps
// recursive types finite.
func composites() Provider {
	return NewProvider(PriorityComposite, func(t reflect.Type, r *Registry) (Format, error) {
		switch t.Kind() {
		case reflect.Slice, reflect.Array:
			return sequence{typ: t, r: r}, nil
		case reflect.Map:
			if t.Key().Kind() != reflect.String {
				return nil, fmt.Errorf("%w: %s (map keys must be strings)", ErrNoFormat, t)
			}
			return mapping{typ: t, r: r}, nil
		case reflect.Pointer:
			return pointer{typ: t, r: r}, nil
		case reflect.Interface:
			return untyped{typ: t, r: r}, nil
		}
		return nil, nil
	})
}
