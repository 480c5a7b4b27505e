package grammar

import (
	"fmt"
	"math/big"

	"github.com/KimNorgaard/go-waml/value"
)

// Form builds Go values from parsed WAML. A form implements any subset of
// the kind interfaces below; a value of a kind the form does not implement
// fails to parse.
type Form any

// IdentifierForm builds values from bare identifiers.
type IdentifierForm interface {
	FromIdentifier(name string, attrs value.Attrs) (any, error)
}

// ExprForm builds expression references from identifiers that are not
// keywords when expressions are enabled.
type ExprForm interface {
	FromRef(name string, attrs value.Attrs) (any, error)
}

// NumberForm builds values from numeric literals.
type NumberForm interface {
	FromInteger(n int64, attrs value.Attrs) (any, error)
	// FromHexadecimal receives the bit pattern and the number of digits
	// written, which distinguishes 32-bit from 64-bit patterns.
	FromHexadecimal(n uint64, digits int, attrs value.Attrs) (any, error)
	FromBigInteger(n *big.Int, attrs value.Attrs) (any, error)
	FromDecimal(text string, attrs value.Attrs) (any, error)
}

// StringForm builds values from quoted strings and text blocks.
type StringForm interface {
	FromString(s string, attrs value.Attrs) (any, error)
}

// UnitForm builds values from an attribute list that annotates no value.
type UnitForm interface {
	FromUnit(attrs value.Attrs) (any, error)
}

// ArrayForm builds values from "[...]".
type ArrayForm interface {
	ElementForm() Form
	ArrayBuilder(attrs value.Attrs) (ArrayBuilder, error)
}

// ArrayBuilder accumulates array elements.
type ArrayBuilder interface {
	Append(v any) error
	Build() (any, error)
}

// ObjectForm builds values from "{...}".
type ObjectForm interface {
	ObjectBuilder(attrs value.Attrs) (ObjectBuilder, error)
}

// ObjectBuilder accumulates object fields. FieldForm selects the form of
// the value stored under key, which is where per-field bindings plug in.
type ObjectBuilder interface {
	FieldForm(key string) (Form, error)
	SetField(key string, v any) error
	Build() (any, error)
}

// TupleForm builds values from "(...)".
type TupleForm interface {
	ItemForm() Form
	// EmptyTuple builds "()".
	EmptyTuple(attrs value.Attrs) (any, error)
	// UnaryTuple builds a tuple holding exactly one positional value.
	UnaryTuple(v any, attrs value.Attrs) (any, error)
	TupleBuilder(attrs value.Attrs) (TupleBuilder, error)
}

// TupleBuilder accumulates tuple items.
type TupleBuilder interface {
	Append(v any) error
	SetLabeled(label string, v any) error
	Build() (any, error)
}

// MarkupForm builds values from "<<...>>" and nested "<...>" runs.
type MarkupForm interface {
	// NodeForm is the form of values embedded with '@' or '{...}'.
	NodeForm() Form
	MarkupBuilder(attrs value.Attrs) (MarkupBuilder, error)
}

// MarkupBuilder accumulates markup content.
type MarkupBuilder interface {
	AppendText(s string) error
	AppendNode(v any) error
	Build() (any, error)
}

// NamedForm is implemented by forms that name the Go type they build, for
// diagnostics.
type NamedForm interface {
	FormName() string
}

type errorForm struct {
	err error
}

// FormError returns a form that fails every parse with err.
func FormError(err error) Form {
	return errorForm{err: err}
}

func unsupported(form Form, kind string) error {
	if n, ok := form.(NamedForm); ok {
		return fmt.Errorf("cannot parse %s as Go value of type %s", kind, n.FormName())
	}
	return fmt.Errorf("unexpected %s", kind)
}
