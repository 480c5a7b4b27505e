package grammar

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/KimNorgaard/go-waml/value"
)

// Untyped builds the value model of package value.
var Untyped Form = untypedForm{}

type untypedForm struct{}

func (untypedForm) FromIdentifier(name string, attrs value.Attrs) (any, error) {
	var v any
	switch name {
	case "true":
		v = true
	case "false":
		v = false
	case "null":
		v = nil
	default:
		v = name
	}
	return value.WithAttrs(v, attrs), nil
}

func (untypedForm) FromRef(name string, attrs value.Attrs) (any, error) {
	return value.WithAttrs(value.Ref(name), attrs), nil
}

func (untypedForm) FromInteger(n int64, attrs value.Attrs) (any, error) {
	return value.WithAttrs(n, attrs), nil
}

func (untypedForm) FromHexadecimal(n uint64, _ int, attrs value.Attrs) (any, error) {
	return value.WithAttrs(int64(n), attrs), nil
}

func (untypedForm) FromBigInteger(n *big.Int, attrs value.Attrs) (any, error) {
	return value.WithAttrs(n, attrs), nil
}

func (untypedForm) FromDecimal(text string, attrs value.Attrs) (any, error) {
	f, err := strconv.ParseFloat(text, 64)
	switch {
	case math.IsInf(f, 0):
		return nil, fmt.Errorf("decimal %s is out of range", text)
	case err != nil && !errors.Is(err, strconv.ErrRange):
		return nil, fmt.Errorf("invalid decimal %q", text)
	}
	return value.WithAttrs(f, attrs), nil
}

func (untypedForm) FromString(s string, attrs value.Attrs) (any, error) {
	return value.WithAttrs(s, attrs), nil
}

func (untypedForm) FromUnit(attrs value.Attrs) (any, error) {
	return value.WithAttrs(value.Unit{}, attrs), nil
}

func (untypedForm) ElementForm() Form { return Untyped }

func (untypedForm) ArrayBuilder(attrs value.Attrs) (ArrayBuilder, error) {
	return &untypedArray{attrs: attrs, items: []any{}}, nil
}

func (untypedForm) ObjectBuilder(attrs value.Attrs) (ObjectBuilder, error) {
	return &untypedObject{attrs: attrs, obj: value.NewObject()}, nil
}

func (untypedForm) ItemForm() Form { return Untyped }

func (untypedForm) EmptyTuple(attrs value.Attrs) (any, error) {
	return value.WithAttrs(value.Unit{}, attrs), nil
}

func (untypedForm) UnaryTuple(v any, attrs value.Attrs) (any, error) {
	return value.WithAttrs(v, attrs), nil
}

func (untypedForm) TupleBuilder(attrs value.Attrs) (TupleBuilder, error) {
	return &untypedTuple{attrs: attrs}, nil
}

func (untypedForm) NodeForm() Form { return Untyped }

func (untypedForm) MarkupBuilder(attrs value.Attrs) (MarkupBuilder, error) {
	return &untypedMarkup{attrs: attrs}, nil
}

type untypedArray struct {
	attrs value.Attrs
	items []any
}

func (b *untypedArray) Append(v any) error {
	b.items = append(b.items, v)
	return nil
}

func (b *untypedArray) Build() (any, error) {
	return value.WithAttrs(b.items, b.attrs), nil
}

type untypedObject struct {
	attrs value.Attrs
	obj   *value.Object
}

func (b *untypedObject) FieldForm(string) (Form, error) {
	return Untyped, nil
}

func (b *untypedObject) SetField(key string, v any) error {
	if b.obj.Has(key) {
		return fmt.Errorf("duplicate key %q in object", key)
	}
	b.obj.Fields = append(b.obj.Fields, value.Field{Key: key, Value: v})
	return nil
}

func (b *untypedObject) Build() (any, error) {
	return value.WithAttrs(b.obj, b.attrs), nil
}

type untypedTuple struct {
	attrs value.Attrs
	items []value.Item
}

func (b *untypedTuple) Append(v any) error {
	b.items = append(b.items, value.Item{Value: v})
	return nil
}

func (b *untypedTuple) SetLabeled(label string, v any) error {
	if label == "" {
		return errors.New("empty tuple label")
	}
	b.items = append(b.items, value.Item{Label: label, Value: v})
	return nil
}

func (b *untypedTuple) Build() (any, error) {
	return value.WithAttrs(value.Tuple{Items: b.items}, b.attrs), nil
}

type untypedMarkup struct {
	attrs value.Attrs
	nodes []any
}

func (b *untypedMarkup) AppendText(s string) error {
	if s == "" {
		return nil
	}
	if n := len(b.nodes); n > 0 {
		if prev, ok := b.nodes[n-1].(string); ok {
			b.nodes[n-1] = prev + s
			return nil
		}
	}
	b.nodes = append(b.nodes, s)
	return nil
}

func (b *untypedMarkup) AppendNode(v any) error {
	if s, ok := v.(string); ok {
		return b.AppendText(s)
	}
	b.nodes = append(b.nodes, v)
	return nil
}

func (b *untypedMarkup) Build() (any, error) {
	return value.WithAttrs(value.Markup{Nodes: b.nodes}, b.attrs), nil
}

// rawString is the form of object keys and attribute names.
type rawString struct{}

func (rawString) FromString(s string, _ value.Attrs) (any, error) {
	return s, nil
}
