package waml

import (
	"fmt"
	"log/slog"

	"github.com/KimNorgaard/go-waml/format"
	"github.com/KimNorgaard/go-waml/grammar"
)

const defaultChunkSize = 4096

// Option configures parsing, writing and streaming.
type Option func(*options) error

type options struct {
	parser    grammar.ParserOptions
	writer    grammar.WriterOptions
	chunkSize int
	registry  *format.Registry
	logger    *slog.Logger
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		parser:    *grammar.DefaultParserOptions(),
		writer:    *grammar.DefaultWriterOptions(),
		chunkSize: defaultChunkSize,
		registry:  format.Default,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Indent returns an Option that writes in block layout, indenting each
// level by n spaces. Zero writes every value on one line.
//
// The indent n must not be negative.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("waml: indent must be a non-negative integer")
		}
		o.writer.Indent = n
		return nil
	}
}

// Compact returns an Option that writes on one line without optional
// whitespace.
func Compact() Option {
	return func(o *options) error {
		o.writer.Indent = 0
		o.writer.Whitespace = false
		return nil
	}
}

// Whitespace returns an Option that controls the space after ':' and ','.
func Whitespace(on bool) Option {
	return func(o *options) error {
		o.writer.Whitespace = on
		return nil
	}
}

// InlineLimit returns an Option that keeps collections of at most n
// scalar members on one line in block layout.
func InlineLimit(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("waml: inline limit must be a non-negative integer")
		}
		o.writer.InlineLimit = n
		return nil
	}
}

// TextBlocks returns an Option that writes multi-line strings as text
// blocks in block layout.
func TextBlocks(on bool) Option {
	return func(o *options) error {
		o.writer.TextBlocks = on
		return nil
	}
}

// Exprs returns an Option that reads identifiers that are not keywords as
// value.Ref and quotes every string on output.
func Exprs(on bool) Option {
	return func(o *options) error {
		o.parser.ExprsEnabled = on
		o.writer.ExprsEnabled = on
		return nil
	}
}

// Keywords returns an Option that replaces the reserved identifiers.
func Keywords(words ...string) Option {
	return func(o *options) error {
		for _, w := range words {
			if !grammar.IsIdentifier(w) {
				return fmt.Errorf("waml: keyword %q is not an identifier", w)
			}
		}
		o.parser.Keywords = words
		o.writer.Keywords = words
		return nil
	}
}

// MaxDepth returns an Option that sets the maximum nesting depth of
// parsed values. This bounds the work spent on hostile input.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("waml: max depth must be a positive integer")
		}
		o.parser.MaxDepth = n
		return nil
	}
}

// ChunkSize returns an Option that sets how many bytes a Decoder reads
// and an Encoder writes at a time.
func ChunkSize(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("waml: chunk size must be a positive integer")
		}
		o.chunkSize = n
		return nil
	}
}

// WithRegistry returns an Option that resolves formats through r instead
// of format.Default.
func WithRegistry(r *format.Registry) Option {
	return func(o *options) error {
		if r == nil {
			return fmt.Errorf("waml: registry must not be nil")
		}
		o.registry = r
		return nil
	}
}

// WithLogger returns an Option that logs streaming progress to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}
