package grammar

import (
	"fmt"
	"math/big"
	"slices"
	"strconv"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/value"
)

// WriteValue returns a writer for v, which is a value built by Untyped or a
// Go scalar, []any or map[string]any.
func WriteValue(v any, opts *WriterOptions) codec.Writer {
	return writeValue(v, writerOptions(opts), 0)
}

// WriteValueAt is WriteValue for a value nested depth levels deep.
func WriteValueAt(v any, opts *WriterOptions, depth int) codec.Writer {
	return writeValue(v, writerOptions(opts), depth)
}

// Scalar reports whether v writes as a single token.
func Scalar(v any) bool {
	switch v.(type) {
	case []any, *value.Object, value.Object, map[string]any, value.Tuple, value.Markup, value.Attributed:
		return false
	}
	return true
}

func writeValue(v any, opts *WriterOptions, depth int) codec.Writer {
	switch v := v.(type) {
	case nil:
		return Literal("null")
	case bool:
		return Literal(strconv.FormatBool(v))
	case int:
		return WriteInteger(int64(v))
	case int8:
		return WriteInteger(int64(v))
	case int16:
		return WriteInteger(int64(v))
	case int32:
		return WriteInteger(int64(v))
	case int64:
		return WriteInteger(v)
	case uint:
		return WriteUnsigned(uint64(v))
	case uint8:
		return WriteUnsigned(uint64(v))
	case uint16:
		return WriteUnsigned(uint64(v))
	case uint32:
		return WriteUnsigned(uint64(v))
	case uint64:
		return WriteUnsigned(v)
	case float32:
		return WriteFloat(float64(v), 32)
	case float64:
		return WriteFloat(v, 64)
	case *big.Int:
		if v == nil {
			return Literal("null")
		}
		return Literal(v.String())
	case string:
		return WriteString(v, opts)
	case value.Ref:
		if !IsIdentifier(string(v)) {
			return codec.WriteFail(fmt.Errorf("waml: invalid reference %q", string(v)))
		}
		return Literal(string(v))
	case value.Unit:
		return Literal("()")
	case value.Attributed:
		return writeAttributed(v, opts, depth)
	case []any:
		return WriteArray(nil, valueMembers(v), opts, depth)
	case *value.Object:
		if v == nil {
			return Literal("null")
		}
		return WriteObject(nil, fieldMembers(v.Fields), opts, depth)
	case value.Object:
		return WriteObject(nil, fieldMembers(v.Fields), opts, depth)
	case map[string]any:
		return WriteObject(nil, mapMembers(v), opts, depth)
	case value.Tuple:
		return WriteTuple(nil, itemMembers(v.Items), opts, depth)
	case value.Markup:
		return writeMarkup(v, nil, opts)
	}
	return codec.WriteFail(fmt.Errorf("waml: cannot write value of type %T", v))
}

func writeAttributed(v value.Attributed, opts *WriterOptions, depth int) codec.Writer {
	switch inner := v.Value.(type) {
	case value.Unit:
		return WriteAttrs(v.Attrs, opts)
	case []any:
		return WriteArray(v.Attrs, valueMembers(inner), opts, depth)
	case *value.Object:
		if inner != nil {
			return WriteObject(v.Attrs, fieldMembers(inner.Fields), opts, depth)
		}
	case map[string]any:
		return WriteObject(v.Attrs, mapMembers(inner), opts, depth)
	case value.Tuple:
		return WriteTuple(v.Attrs, itemMembers(inner.Items), opts, depth)
	case value.Markup:
		return writeMarkup(inner, v.Attrs, opts)
	}
	return WriteAttributed(v.Attrs, writeValue(v.Value, opts, depth), opts)
}

func member(v any) Member {
	return Member{
		Scalar: Scalar(v),
		Write:  func(opts *WriterOptions, depth int) codec.Writer { return writeValue(v, opts, depth) },
	}
}

func valueMembers(vs []any) []Member {
	ms := make([]Member, len(vs))
	for i, v := range vs {
		ms[i] = member(v)
	}
	return ms
}

func fieldMembers(fields []value.Field) []Member {
	ms := make([]Member, len(fields))
	for i, f := range fields {
		ms[i] = member(f.Value)
		ms[i].Key = f.Key
	}
	return ms
}

func mapMembers(m map[string]any) []Member {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	ms := make([]Member, len(keys))
	for i, k := range keys {
		ms[i] = member(m[k])
		ms[i].Key = k
	}
	return ms
}

func itemMembers(items []value.Item) []Member {
	ms := make([]Member, len(items))
	for i, it := range items {
		ms[i] = member(it.Value)
		ms[i].Key, ms[i].Labeled = it.Label, it.Label != ""
	}
	return ms
}
