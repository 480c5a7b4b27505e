package waml

import (
	"reflect"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/format"
)

type (
	// SyntaxError reports malformed input and where it was found.
	SyntaxError = codec.SyntaxError
	// SemanticError reports well-formed input that cannot be built into
	// the requested Go value.
	SemanticError = codec.SemanticError
	// IOError reports a failure of the underlying reader or writer.
	IOError = codec.IOError
)

var (
	// ErrUnexpectedEOF matches every syntax error raised at end of input.
	ErrUnexpectedEOF = codec.ErrUnexpectedEOF
	// ErrNoFormat matches errors for Go types no format is known for.
	ErrNoFormat = format.ErrNoFormat
)

// An InvalidUnmarshalError describes an invalid argument passed to
// Unmarshal or Decode. The argument must be a non-nil pointer.
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "waml: Unmarshal(nil)"
	}
	if e.Type.Kind() != reflect.Pointer {
		return "waml: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "waml: Unmarshal(nil " + e.Type.String() + ")"
}
