package value

import (
	"math/big"
	"reflect"
)

// Equal reports whether a and b denote the same WAML value. Nil and empty
// collections are equal, big integers compare numerically, and objects
// compare field by field in order.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *big.Int:
		y, ok := b.(*big.Int)
		return ok && x.Cmp(y) == 0
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Key != y.Fields[i].Key || !Equal(x.Fields[i].Value, y.Fields[i].Value) {
				return false
			}
		}
		return true
	case Tuple:
		y, ok := b.(Tuple)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if x.Items[i].Label != y.Items[i].Label || !Equal(x.Items[i].Value, y.Items[i].Value) {
				return false
			}
		}
		return true
	case Markup:
		y, ok := b.(Markup)
		if !ok || len(x.Nodes) != len(y.Nodes) {
			return false
		}
		for i := range x.Nodes {
			if !Equal(x.Nodes[i], y.Nodes[i]) {
				return false
			}
		}
		return true
	case Attributed:
		y, ok := b.(Attributed)
		return ok && equalAttrs(x.Attrs, y.Attrs) && Equal(x.Value, y.Value)
	default:
		return reflect.DeepEqual(a, b)
	}
}

func equalAttrs(a, b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !Equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}
