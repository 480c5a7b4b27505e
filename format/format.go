package format

import (
	"errors"
	"reflect"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/grammar"
)

// ErrNoFormat is returned when no provider recognizes a type.
var ErrNoFormat = errors.New("waml: no format for type")

// Format reads and writes values of one Go type.
type Format interface {
	Type() reflect.Type
	// Form builds values of Type from parsed WAML.
	Form() grammar.Form
	// Writer returns a writer for v, which holds a value of Type, nested
	// depth levels deep.
	Writer(v any, opts *grammar.WriterOptions, depth int) codec.Writer
	// Scalar reports whether v writes as a single token.
	Scalar(v any) bool
}

// Provider contributes formats for the types it recognizes.
type Provider interface {
	Priority() int
	// Resolve returns the format for t, or nil when the provider does not
	// recognize t. Element formats are resolved through r.
	Resolve(t reflect.Type, r *Registry) (Format, error)
}

// ResolveFunc is the resolution function of a provider built with
// NewProvider.
type ResolveFunc func(t reflect.Type, r *Registry) (Format, error)

type provider struct {
	priority int
	resolve  ResolveFunc
}

// NewProvider returns a provider with the given priority.
func NewProvider(priority int, resolve ResolveFunc) Provider {
	return provider{priority: priority, resolve: resolve}
}

func (p provider) Priority() int { return p.priority }

func (p provider) Resolve(t reflect.Type, r *Registry) (Format, error) {
	return p.resolve(t, r)
}

// Provider priorities of the built-in providers.
const (
	PriorityRegistered = 1000
	PriorityExact      = 200
	PriorityKind       = 100
	PriorityComposite  = 10
)

// exact recognizes a single type.
func exact(f Format) Provider {
	return NewProvider(PriorityExact, func(t reflect.Type, _ *Registry) (Format, error) {
		if t == f.Type() {
			return f, nil
		}
		return nil, nil
	})
}

// Read parses a whole document held in s into a value of the format's type.
func Read(f Format, s string, opts *grammar.ParserOptions) (any, error) {
	return grammar.Parse(s, f.Form(), opts)
}

// Write serializes v with f into a string.
func Write(f Format, v any, opts *grammar.WriterOptions) (string, error) {
	b, err := codec.WriteAll(f.Writer(v, opts, 0))
	return string(b), err
}
