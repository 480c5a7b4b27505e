package grammar

import (
	"math/big"

	"github.com/KimNorgaard/go-waml/value"
)

// Adapter is a form that delegates to Inner and passes every value it
// builds through Map. When Null is set, the identifier null yields Null()
// instead of reaching Inner.
type Adapter struct {
	Inner Form
	Map   func(v any) (any, error)
	Null  func() any
}

var (
	_ IdentifierForm = Adapter{}
	_ NumberForm     = Adapter{}
	_ StringForm     = Adapter{}
	_ UnitForm       = Adapter{}
	_ ArrayForm      = Adapter{}
	_ ObjectForm     = Adapter{}
	_ TupleForm      = Adapter{}
	_ MarkupForm     = Adapter{}
)

func (a Adapter) FormName() string {
	if n, ok := a.Inner.(NamedForm); ok {
		return n.FormName()
	}
	return "value"
}

func (a Adapter) mapped(v any, err error) (any, error) {
	if err != nil || a.Map == nil {
		return v, err
	}
	return a.Map(v)
}

func (a Adapter) FromIdentifier(name string, attrs value.Attrs) (any, error) {
	if name == "null" && a.Null != nil && len(attrs) == 0 {
		return a.Null(), nil
	}
	f, ok := a.Inner.(IdentifierForm)
	if !ok {
		return nil, unsupported(a.Inner, "identifier")
	}
	return a.mapped(f.FromIdentifier(name, attrs))
}

func (a Adapter) number() (NumberForm, error) {
	f, ok := a.Inner.(NumberForm)
	if !ok {
		return nil, unsupported(a.Inner, "number")
	}
	return f, nil
}

func (a Adapter) FromInteger(n int64, attrs value.Attrs) (any, error) {
	f, err := a.number()
	if err != nil {
		return nil, err
	}
	return a.mapped(f.FromInteger(n, attrs))
}

func (a Adapter) FromHexadecimal(n uint64, digits int, attrs value.Attrs) (any, error) {
	f, err := a.number()
	if err != nil {
		return nil, err
	}
	return a.mapped(f.FromHexadecimal(n, digits, attrs))
}

func (a Adapter) FromBigInteger(n *big.Int, attrs value.Attrs) (any, error) {
	f, err := a.number()
	if err != nil {
		return nil, err
	}
	return a.mapped(f.FromBigInteger(n, attrs))
}

func (a Adapter) FromDecimal(text string, attrs value.Attrs) (any, error) {
	f, err := a.number()
	if err != nil {
		return nil, err
	}
	return a.mapped(f.FromDecimal(text, attrs))
}

func (a Adapter) FromString(s string, attrs value.Attrs) (any, error) {
	f, ok := a.Inner.(StringForm)
	if !ok {
		return nil, unsupported(a.Inner, "string")
	}
	return a.mapped(f.FromString(s, attrs))
}

func (a Adapter) FromUnit(attrs value.Attrs) (any, error) {
	f, ok := a.Inner.(UnitForm)
	if !ok {
		return nil, unsupported(a.Inner, "attribute list")
	}
	return a.mapped(f.FromUnit(attrs))
}

func (a Adapter) ElementForm() Form {
	if f, ok := a.Inner.(ArrayForm); ok {
		return f.ElementForm()
	}
	return Untyped
}

func (a Adapter) ArrayBuilder(attrs value.Attrs) (ArrayBuilder, error) {
	f, ok := a.Inner.(ArrayForm)
	if !ok {
		return nil, unsupported(a.Inner, "array")
	}
	b, err := f.ArrayBuilder(attrs)
	if err != nil {
		return nil, err
	}
	return adaptedArray{ArrayBuilder: b, a: a}, nil
}

func (a Adapter) ObjectBuilder(attrs value.Attrs) (ObjectBuilder, error) {
	f, ok := a.Inner.(ObjectForm)
	if !ok {
		return nil, unsupported(a.Inner, "object")
	}
	b, err := f.ObjectBuilder(attrs)
	if err != nil {
		return nil, err
	}
	return adaptedObject{ObjectBuilder: b, a: a}, nil
}

func (a Adapter) tuple() (TupleForm, error) {
	f, ok := a.Inner.(TupleForm)
	if !ok {
		return nil, unsupported(a.Inner, "tuple")
	}
	return f, nil
}

func (a Adapter) ItemForm() Form {
	if f, ok := a.Inner.(TupleForm); ok {
		return f.ItemForm()
	}
	return Untyped
}

func (a Adapter) EmptyTuple(attrs value.Attrs) (any, error) {
	f, err := a.tuple()
	if err != nil {
		return nil, err
	}
	return a.mapped(f.EmptyTuple(attrs))
}

func (a Adapter) UnaryTuple(v any, attrs value.Attrs) (any, error) {
	f, err := a.tuple()
	if err != nil {
		return nil, err
	}
	return a.mapped(f.UnaryTuple(v, attrs))
}

func (a Adapter) TupleBuilder(attrs value.Attrs) (TupleBuilder, error) {
	f, err := a.tuple()
	if err != nil {
		return nil, err
	}
	b, err := f.TupleBuilder(attrs)
	if err != nil {
		return nil, err
	}
	return adaptedTuple{TupleBuilder: b, a: a}, nil
}

func (a Adapter) NodeForm() Form {
	if f, ok := a.Inner.(MarkupForm); ok {
		return f.NodeForm()
	}
	return Untyped
}

func (a Adapter) MarkupBuilder(attrs value.Attrs) (MarkupBuilder, error) {
	f, ok := a.Inner.(MarkupForm)
	if !ok {
		return nil, unsupported(a.Inner, "markup")
	}
	b, err := f.MarkupBuilder(attrs)
	if err != nil {
		return nil, err
	}
	return adaptedMarkup{MarkupBuilder: b, a: a}, nil
}

type adaptedArray struct {
	ArrayBuilder
	a Adapter
}

func (b adaptedArray) Build() (any, error) { return b.a.mapped(b.ArrayBuilder.Build()) }

type adaptedObject struct {
	ObjectBuilder
	a Adapter
}

func (b adaptedObject) Build() (any, error) { return b.a.mapped(b.ObjectBuilder.Build()) }

type adaptedTuple struct {
	TupleBuilder
	a Adapter
}

func (b adaptedTuple) Build() (any, error) { return b.a.mapped(b.TupleBuilder.Build()) }

type adaptedMarkup struct {
	MarkupBuilder
	a Adapter
}

func (b adaptedMarkup) Build() (any, error) { return b.a.mapped(b.MarkupBuilder.Build()) }
