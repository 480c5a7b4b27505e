package codec

import "errors"

// Parser is a resumable parse of a value of type T.
//
// A suspended parser is linear: feed it at most once and continue with
// the parser Feed returns. Parsers of nested values keep their state in
// place, so feeding a stale continuation again is undefined.
type Parser[T any] interface {
	// Feed consumes input and returns the parser that continues the parse.
	Feed(in Input) Parser[T]
	IsCont() bool
	IsDone() bool
	IsError() bool
	// Get returns the parsed value of a done parser.
	Get() T
	// Err returns the failure of a failed parser.
	Err() error
}

// Continuation is embedded by suspended parsers to report the Cont standing.
type Continuation[T any] struct{}

func (Continuation[T]) IsCont() bool  { return true }
func (Continuation[T]) IsDone() bool  { return false }
func (Continuation[T]) IsError() bool { return false }
func (Continuation[T]) Err() error    { return nil }

func (Continuation[T]) Get() T {
	var zero T
	return zero
}

type doneParser[T any] struct {
	value T
}

// Complete returns a done parser holding v.
func Complete[T any](v T) Parser[T] {
	return doneParser[T]{value: v}
}

func (p doneParser[T]) Feed(Input) Parser[T] { return p }
func (doneParser[T]) IsCont() bool          { return false }
func (doneParser[T]) IsDone() bool          { return true }
func (doneParser[T]) IsError() bool         { return false }
func (p doneParser[T]) Get() T              { return p.value }
func (doneParser[T]) Err() error            { return nil }

type failedParser[T any] struct {
	err error
}

// Fail returns a failed parser carrying err.
func Fail[T any](err error) Parser[T] {
	return failedParser[T]{err: err}
}

func (p failedParser[T]) Feed(Input) Parser[T] { return p }
func (failedParser[T]) IsCont() bool          { return false }
func (failedParser[T]) IsDone() bool          { return false }
func (failedParser[T]) IsError() bool         { return true }
func (failedParser[T]) Get() T {
	var zero T
	return zero
}
func (p failedParser[T]) Err() error { return p.err }

var errIncomplete = errors.New("waml: parser suspended on closed input")

// ParseAll feeds in to p and returns the parsed value. The input should be
// closed; a parser that still suspends is reported as an error.
func ParseAll[T any](p Parser[T], in Input) (T, error) {
	p = p.Feed(in)
	switch {
	case p.IsDone():
		return p.Get(), nil
	case p.IsError():
		var zero T
		return zero, p.Err()
	default:
		var zero T
		return zero, errIncomplete
	}
}

// Map returns a parser that applies f to the value parsed by p.
func Map[T, U any](p Parser[T], f func(T) (U, error)) Parser[U] {
	switch {
	case p.IsDone():
		u, err := f(p.Get())
		if err != nil {
			return Fail[U](err)
		}
		return Complete(u)
	case p.IsError():
		return Fail[U](p.Err())
	default:
		return mapParser[T, U]{p: p, f: f}
	}
}

type mapParser[T, U any] struct {
	Continuation[U]
	p Parser[T]
	f func(T) (U, error)
}

func (m mapParser[T, U]) Feed(in Input) Parser[U] {
	return Map(m.p.Feed(in), m.f)
}
