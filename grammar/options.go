package grammar

import (
	"slices"

	"github.com/KimNorgaard/go-waml/internal/intern"
)

const (
	defaultMaxDepth  = 512
	defaultKeysCache = 1024
)

// DefaultKeywords are the identifiers that never denote plain text.
var DefaultKeywords = []string{"true", "false", "null"}

// KeyCache interns object keys and attribute names across parses.
type KeyCache = intern.Cache

var sharedKeys, _ = intern.New(defaultKeysCache)

// NewKeyCache returns a key cache holding at most size keys.
func NewKeyCache(size int) (*KeyCache, error) {
	return intern.New(size)
}

// ParserOptions configures parsing. A nil *ParserOptions means the defaults.
type ParserOptions struct {
	// ExprsEnabled promotes identifiers that are not keywords to
	// expression references.
	ExprsEnabled bool
	// Keywords lists the reserved identifiers.
	Keywords []string
	// MaxDepth bounds the nesting of values.
	MaxDepth int
	// Keys interns object keys and attribute names when non-nil.
	Keys *KeyCache
}

// DefaultParserOptions returns the default parser options.
func DefaultParserOptions() *ParserOptions {
	return &ParserOptions{
		Keywords: DefaultKeywords,
		MaxDepth: defaultMaxDepth,
		Keys:     sharedKeys,
	}
}

var defaultParserOptions = DefaultParserOptions()

func parserOptions(o *ParserOptions) *ParserOptions {
	if o == nil {
		return defaultParserOptions
	}
	return o
}

func (o *ParserOptions) maxDepth() int {
	if o.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return o.MaxDepth
}

func (o *ParserOptions) isKeyword(name string) bool {
	return slices.Contains(o.Keywords, name)
}

func (o *ParserOptions) intern(s string) string {
	return o.Keys.Intern(s)
}

// WriterOptions configures writing. A nil *WriterOptions means the defaults.
type WriterOptions struct {
	// Whitespace inserts a space after ':' and ',' and between attributes.
	Whitespace bool
	// Indent selects block layout with the given number of spaces per
	// level. Zero writes every value on one line.
	Indent int
	// InlineLimit keeps collections of at most this many scalar members on
	// one line in block layout.
	InlineLimit int
	// TextBlocks writes multi-line strings as triple-quoted text blocks in
	// block layout.
	TextBlocks bool
	// Keywords lists the identifiers that strings must not be written as,
	// in addition to DefaultKeywords, which every reader takes for values.
	Keywords []string
	// ExprsEnabled quotes every string, since the reader will take bare
	// identifiers for expression references.
	ExprsEnabled bool
}

// DefaultWriterOptions returns the default writer options: single-line
// output with whitespace.
func DefaultWriterOptions() *WriterOptions {
	return &WriterOptions{
		Whitespace: true,
		Keywords:   DefaultKeywords,
	}
}

var defaultWriterOptions = DefaultWriterOptions()

func writerOptions(o *WriterOptions) *WriterOptions {
	if o == nil {
		return defaultWriterOptions
	}
	return o
}

func (o *WriterOptions) isKeyword(name string) bool {
	return slices.Contains(DefaultKeywords, name) || slices.Contains(o.Keywords, name)
}

func (o *WriterOptions) block() bool {
	return o.Indent > 0
}

// inline returns a copy of o that writes on a single line.
func (o *WriterOptions) inline() *WriterOptions {
	if o.Indent == 0 {
		return o
	}
	c := *o
	c.Indent = 0
	return &c
}
