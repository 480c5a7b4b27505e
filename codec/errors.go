package codec

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnexpectedEOF matches every syntax error raised at the end of input.
var ErrUnexpectedEOF = errors.New("waml: unexpected end of input")

const endOfInput = "end of input"

// SyntaxError reports malformed input at a position.
type SyntaxError struct {
	Pos      Position
	Expected string // what the parser expected, if known
	Found    string // a description of what it found instead
	Message  string // overrides Expected/Found when set
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("waml: syntax error at %s: %s", e.Pos, e.describe())
}

func (e *SyntaxError) describe() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Expected != "" && e.Found != "":
		return "expected " + e.Expected + ", but found " + e.Found
	case e.Expected != "":
		return "expected " + e.Expected
	default:
		return "unexpected " + e.Found
	}
}

// Is reports whether target is ErrUnexpectedEOF and e was raised at the end
// of input.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrUnexpectedEOF && e.Found == endOfInput
}

// SemanticError wraps a failure of a form or builder while building a value.
type SemanticError struct {
	Pos Position
	Err error
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("waml: error at %s: %s", e.Pos, e.Err)
}

func (e *SemanticError) Unwrap() error { return e.Err }

// IOError wraps a failure reported by an Input or Output.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "waml: i/o error: " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// Found describes the current standing of in for diagnostics.
func Found(in Input) string {
	switch {
	case in.IsCont():
		return strconv.QuoteRune(in.Head())
	case in.IsDone():
		return endOfInput
	default:
		return "nothing"
	}
}

// Expected returns the error for input that does not match what. When the
// input itself failed, the upstream error is returned instead.
func Expected(in Input, what string) error {
	if in.IsError() {
		return &IOError{Err: in.Err()}
	}
	return &SyntaxError{Pos: in.Position(), Expected: what, Found: Found(in)}
}

// Unexpected returns the error for a code point or end of input that no
// production accepts.
func Unexpected(in Input) error {
	if in.IsError() {
		return &IOError{Err: in.Err()}
	}
	return &SyntaxError{Pos: in.Position(), Found: Found(in)}
}

// Errorf returns a syntax error with a formatted message at the position of in.
func Errorf(in Input, format string, args ...any) error {
	return &SyntaxError{Pos: in.Position(), Message: fmt.Sprintf(format, args...)}
}

// Semantic wraps err as a SemanticError at the position of in. Errors that
// already belong to the codec taxonomy are returned unchanged.
func Semantic(in Input, err error) error {
	if err == nil {
		return nil
	}
	var (
		se *SyntaxError
		me *SemanticError
		ie *IOError
	)
	if errors.As(err, &se) || errors.As(err, &me) || errors.As(err, &ie) {
		return err
	}
	return &SemanticError{Pos: in.Position(), Err: err}
}

// Unclosed returns the error for input that ends or breaks off inside an
// unterminated construct such as a string or markup.
func Unclosed(in Input, what string) error {
	if in.IsError() {
		return &IOError{Err: in.Err()}
	}
	return &SyntaxError{Pos: in.Position(), Found: Found(in), Message: "unclosed " + what}
}
