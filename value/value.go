// Package value is the untyped WAML value model.
//
// Parsing without a target type yields these Go values:
//
//	identifier true/false  bool
//	identifier null        nil
//	other identifiers      string (Ref when expressions are enabled)
//	integer                int64, or *big.Int when it overflows 64 bits
//	hexadecimal            int64 holding the bit pattern
//	decimal                float64 (out of range is an error)
//	string, text block     string
//	array                  []any
//	object                 *Object
//	tuple                  Unit, the single value, or Tuple
//	markup                 Markup
//
// A value preceded by attributes is wrapped in Attributed.
package value

// Unit is the empty tuple, written "()". A bare attribute list with no
// value annotates a Unit.
type Unit struct{}

// Ref is an identifier promoted to an expression reference.
type Ref string

// Attr is a single "@name(argument)" annotation. Value is Unit when the
// attribute has no argument.
type Attr struct {
	Name  string
	Value any
}

// Attrs is an ordered list of attributes. Names may repeat.
type Attrs []Attr

// Get returns the argument of the first attribute named name.
func (a Attrs) Get(name string) (any, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// Has reports whether an attribute named name is present.
func (a Attrs) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Attributed is a value annotated with attributes.
type Attributed struct {
	Attrs Attrs
	Value any
}

// WithAttrs annotates v with attrs. Attributes already on v follow attrs.
func WithAttrs(v any, attrs Attrs) any {
	if len(attrs) == 0 {
		return v
	}
	if a, ok := v.(Attributed); ok {
		merged := make(Attrs, 0, len(attrs)+len(a.Attrs))
		merged = append(merged, attrs...)
		merged = append(merged, a.Attrs...)
		return Attributed{Attrs: merged, Value: a.Value}
	}
	return Attributed{Attrs: attrs, Value: v}
}

// Split separates the attributes of v from its underlying value.
func Split(v any) (Attrs, any) {
	if a, ok := v.(Attributed); ok {
		return a.Attrs, a.Value
	}
	return nil, v
}

// Field is a key/value member of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is an ordered set of keyed values.
type Object struct {
	Fields []Field
}

// NewObject returns an object holding fields in order.
func NewObject(fields ...Field) *Object {
	return &Object{Fields: fields}
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.Fields)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	for _, f := range o.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set replaces the value under key, or appends a new field.
func (o *Object) Set(key string, v any) {
	for i := range o.Fields {
		if o.Fields[i].Key == key {
			o.Fields[i].Value = v
			return
		}
	}
	o.Fields = append(o.Fields, Field{Key: key, Value: v})
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Item is a tuple member. An empty Label marks a positional item, so a
// label is never empty.
type Item struct {
	Label string
	Value any
}

// Tuple is a parenthesized list of positional and labeled items.
type Tuple struct {
	Items []Item
}

// Markup is a sequence of text runs (string) and embedded values. Adjacent
// text runs merge, including strings embedded with "{...}": without
// expressions, <<{a, b}>> holds the single run "ab".
type Markup struct {
	Nodes []any
}

// Text returns the concatenated text runs of m, descending into nested
// markup and skipping other embedded values.
func (m Markup) Text() string {
	var s []byte
	for _, n := range m.Nodes {
		switch n := n.(type) {
		case string:
			s = append(s, n...)
		case Markup:
			s = append(s, n.Text()...)
		case Attributed:
			if inner, ok := n.Value.(Markup); ok {
				s = append(s, inner.Text()...)
			}
		}
	}
	return string(s)
}
