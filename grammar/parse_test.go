package grammar_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/grammar"
	"github.com/KimNorgaard/go-waml/value"
	"github.com/stretchr/testify/require"
)

func unit(names ...string) value.Attrs {
	attrs := make(value.Attrs, len(names))
	for i, n := range names {
		attrs[i] = value.Attr{Name: n, Value: value.Unit{}}
	}
	return attrs
}

func bigInt(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return n
}

func requireValue(t *testing.T, want, got any) {
	t.Helper()
	require.True(t, value.Equal(want, got), "want %#v\n got %#v", want, got)
}

func TestParseScalars(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  any
	}{
		{"empty document", "", value.Unit{}},
		{"comment only", "  # nothing here\n\n", value.Unit{}},
		{"true", "true", true},
		{"false", "false", false},
		{"null", "null", nil},
		{"identifier", "foo-bar_1", "foo-bar_1"},
		{"unicode identifier", "héllo", "héllo"},
		{"zero", "0", int64(0)},
		{"negative zero", "-0", int64(0)},
		{"integer", "42", int64(42)},
		{"negative", "-7", int64(-7)},
		{"max int64", "9223372036854775807", int64(math.MaxInt64)},
		{"min int64", "-9223372036854775808", int64(math.MinInt64)},
		{"hex", "0xff", int64(255)},
		{"hex bit pattern", "0xFFFFFFFFFFFFFFFF", int64(-1)},
		{"decimal", "1.5", 1.5},
		{"negative decimal with exponent", "-0.25e2", -25.0},
		{"exponent only", "1e3", 1000.0},
		{"signed exponent", "2E-2", 0.02},
		{"negative zero decimal", "-0.5", -0.5},
		{"string", `"hello world"`, "hello world"},
		{"empty string", `""`, ""},
		{"escapes", `"a\tb\u0041c"`, "a\tbAc"},
		{"raw tab", "\"a\tb\"", "a\tb"},
		{"pass-through escapes", `"\"\'\/\<\>\@\[\]\{\}\\"`, `"'/<>@[]{}\`},
		{"control escapes", `"\b\f\n\r"`, "\b\f\n\r"},
		{"surrogate pair", `"\ud83d\ude00"`, "😀"},
		{"lone surrogate", `"\ud83dx"`, "\uFFFDx"},
		{"empty text block", `""""""`, ""},
		{"text block quote", `"""a"b"""`, `a"b`},
		{"text block two quotes", `"""a""b"""`, `a""b`},
		{"multi-line text block", "\"\"\"line 1\nline 2\"\"\"", "line 1\nline 2"},
		{"unit", "()", value.Unit{}},
		{"surrounding blanks", "\n\n  42  \n", int64(42)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := grammar.Parse(tc.input, grammar.Untyped, nil)
			require.NoError(t, err)
			requireValue(t, tc.want, got)
		})
	}
}

func TestParseBigIntegers(t *testing.T) {
	testCases := []string{
		"9223372036854775808",
		"-9223372036854775809",
		"123456789012345678901234567890",
	}
	for _, input := range testCases {
		t.Run(input, func(t *testing.T) {
			got, err := grammar.Parse(input, grammar.Untyped, nil)
			require.NoError(t, err)
			require.IsType(t, &big.Int{}, got)
			require.Equal(t, 0, bigInt(t, input).Cmp(got.(*big.Int)))
		})
	}
}

func TestParseCollections(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  any
	}{
		{"empty array", "[]", []any{}},
		{"array", "[1, 2, 3]", []any{int64(1), int64(2), int64(3)}},
		{"array newlines", "[\n  1\n  2,\n  3,\n]", []any{int64(1), int64(2), int64(3)}},
		{"nested array", "[[], [a]]", []any{[]any{}, []any{"a"}}},
		{"empty object", "{}", value.NewObject()},
		{
			"object",
			`{a: 1, "b c": x}`,
			value.NewObject(value.Field{Key: "a", Value: int64(1)}, value.Field{Key: "b c", Value: "x"}),
		},
		{
			"object comment before comma",
			"{a: 1 # comment\n, b: 2}",
			value.NewObject(value.Field{Key: "a", Value: int64(1)}, value.Field{Key: "b", Value: int64(2)}),
		},
		{
			"object value on next line",
			"{\n  a:\n    1\n}",
			value.NewObject(value.Field{Key: "a", Value: int64(1)}),
		},
		{"empty tuple", "()", value.Unit{}},
		{"unary tuple", "(1)", int64(1)},
		{"unary identifier tuple", "(a)", "a"},
		{
			"tuple",
			"(1, 2)",
			value.Tuple{Items: []value.Item{{Value: int64(1)}, {Value: int64(2)}}},
		},
		{
			"labeled tuple",
			`(x: 1, 2, "y z": a)`,
			value.Tuple{Items: []value.Item{{Label: "x", Value: int64(1)}, {Value: int64(2)}, {Label: "y z", Value: "a"}}},
		},
		{
			"single labeled item",
			"(a: 1)",
			value.Tuple{Items: []value.Item{{Label: "a", Value: int64(1)}}},
		},
		{
			"positional strings",
			`(a, "b", c)`,
			value.Tuple{Items: []value.Item{{Value: "a"}, {Value: "b"}, {Value: "c"}}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := grammar.Parse(tc.input, grammar.Untyped, nil)
			require.NoError(t, err)
			requireValue(t, tc.want, got)
		})
	}
}

func TestParseAttributes(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  any
	}{
		{"bare attribute", "@a", value.Attributed{Attrs: unit("a"), Value: value.Unit{}}},
		{"empty argument", "@a()", value.Attributed{Attrs: unit("a"), Value: value.Unit{}}},
		{
			"argument and value",
			"@a(1) @b 2",
			value.Attributed{
				Attrs: value.Attrs{{Name: "a", Value: int64(1)}, {Name: "b", Value: value.Unit{}}},
				Value: int64(2),
			},
		},
		{
			"tuple argument",
			"@range(1, 5) x",
			value.Attributed{
				Attrs: value.Attrs{{Name: "range", Value: value.Tuple{Items: []value.Item{{Value: int64(1)}, {Value: int64(5)}}}}},
				Value: "x",
			},
		},
		{"quoted name", `@"x y" 1`, value.Attributed{Attrs: unit("x y"), Value: int64(1)}},
		{"chained", "@a@b 1", value.Attributed{Attrs: unit("a", "b"), Value: int64(1)}},
		{
			"detached parenthesis is the value",
			"@a (1, 2)",
			value.Attributed{Attrs: unit("a"), Value: value.Tuple{Items: []value.Item{{Value: int64(1)}, {Value: int64(2)}}}},
		},
		{
			"attributed array elements",
			"[@a, @b 1]",
			[]any{value.Attributed{Attrs: unit("a"), Value: value.Unit{}}, value.Attributed{Attrs: unit("b"), Value: int64(1)}},
		},
		{
			"attributed object",
			"@t {a: 1}",
			value.Attributed{Attrs: unit("t"), Value: value.NewObject(value.Field{Key: "a", Value: int64(1)})},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := grammar.Parse(tc.input, grammar.Untyped, nil)
			require.NoError(t, err)
			requireValue(t, tc.want, got)
		})
	}
}

func TestParseMarkup(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []any
	}{
		{"empty", "<<>>", nil},
		{"text", "<<hello>>", []any{"hello"}},
		{"nested", "<<a <b> c>>", []any{"a ", value.Markup{Nodes: []any{"b"}}, " c"}},
		{"lone angle", "<<a > b>>", []any{"a > b"}},
		{"escapes", `<<\<tag\> \@ \{ \u0041>>`, []any{"<tag> @ { A"}},
		{
			"inline unit",
			"<<x @br y>>",
			[]any{"x ", value.Attributed{Attrs: unit("br"), Value: value.Unit{}}, " y"},
		},
		{
			"inline attributed markup",
			"<<@em<hi>!>>",
			[]any{value.Attributed{Attrs: unit("em"), Value: value.Markup{Nodes: []any{"hi"}}}, "!"},
		},
		{
			"inline argument",
			`<<@link("x")<here>>>`,
			[]any{value.Attributed{Attrs: value.Attrs{{Name: "link", Value: "x"}}, Value: value.Markup{Nodes: []any{"here"}}}},
		},
		{"expression block", "<<n={1, 2}>>", []any{"n=", int64(1), int64(2)}},
		{"expression comments", "<<{1 # one\n 2}>>", []any{int64(1), int64(2)}},
		{"expression string merges", `<<a{"b"}c>>`, []any{"abc"}},
		{"multi-line text", "<<a\nb>>", []any{"a\nb"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := grammar.Parse(tc.input, grammar.Untyped, nil)
			require.NoError(t, err)
			requireValue(t, value.Markup{Nodes: tc.want}, got)
		})
	}

	t.Run("attributed top level", func(t *testing.T) {
		got, err := grammar.Parse("@doc <<x>>", grammar.Untyped, nil)
		require.NoError(t, err)
		requireValue(t, value.Attributed{Attrs: unit("doc"), Value: value.Markup{Nodes: []any{"x"}}}, got)
	})
}

func TestParseDocumentComments(t *testing.T) {
	got, err := grammar.Parse("# head\n{a: 1} # trailing\n# tail\n", grammar.Untyped, nil)
	require.NoError(t, err)
	requireValue(t, value.NewObject(value.Field{Key: "a", Value: int64(1)}), got)
}

func TestParseExprs(t *testing.T) {
	opts := grammar.DefaultParserOptions()
	opts.ExprsEnabled = true
	got, err := grammar.Parse("[x, true, null, (y)]", grammar.Untyped, opts)
	require.NoError(t, err)
	requireValue(t, []any{value.Ref("x"), true, nil, value.Ref("y")}, got)
}

func TestParseKeywords(t *testing.T) {
	opts := grammar.DefaultParserOptions()
	opts.ExprsEnabled = true
	opts.Keywords = append([]string{"nil"}, grammar.DefaultKeywords...)
	got, err := grammar.Parse("[nil, z]", grammar.Untyped, opts)
	require.NoError(t, err)
	requireValue(t, []any{"nil", value.Ref("z")}, got)
}

func TestParseRejectsLossyValues(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"decimal out of range", "1e999", "decimal 1e999 is out of range"},
		{"negative decimal out of range", "[-1.5e400]", "decimal -1.5e400 is out of range"},
		{"empty tuple label", `(a, "": 1)`, "empty tuple label"},
		{"empty label alone", `("": 1)`, "empty tuple label"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grammar.Parse(tc.input, grammar.Untyped, nil)
			var se *codec.SemanticError
			require.ErrorAs(t, err, &se)
			require.ErrorContains(t, err, tc.want)
		})
	}

	got, err := grammar.Parse("1e-400", grammar.Untyped, nil)
	require.NoError(t, err)
	require.Equal(t, 0.0, got)
}

func TestParseDuplicateKey(t *testing.T) {
	_, err := grammar.Parse("{a: 1, a: 2}", grammar.Untyped, nil)
	var se *codec.SemanticError
	require.ErrorAs(t, err, &se)
	require.Contains(t, err.Error(), `duplicate key "a"`)
}

func TestParseMaxDepth(t *testing.T) {
	opts := grammar.DefaultParserOptions()
	opts.MaxDepth = 3

	_, err := grammar.Parse("[[[1]]]", grammar.Untyped, opts)
	require.NoError(t, err)

	_, err = grammar.Parse("[[[[1]]]]", grammar.Untyped, opts)
	require.ErrorContains(t, err, "maximum nesting depth of 3 exceeded")

	_, err = grammar.Parse("<<<<<<a>>>>>>", grammar.Untyped, opts)
	require.ErrorContains(t, err, "maximum nesting depth")
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		offset int
		msg    string
		eof    bool
	}{
		{"missing value", "{a: }", 4, "expected value, but found '}'", false},
		{"missing separator", "{a:1 b:2}", 5, "expected ',' or '}', but found 'b'", false},
		{"double comma", "[1,,2]", 3, "expected value, but found ','", false},
		{"leading comma", "[,1]", 1, "expected value, but found ','", false},
		{"comment in array", "[1 # c\n]", 3, "expected ',' or ']', but found '#'", false},
		{"trailing value", "1 2", 2, "unexpected '2' after value", false},
		{"unclosed string", `"abc`, 4, "unclosed string", true},
		{"newline in string", "\"a\nb\"", 2, "unclosed string", false},
		{"unclosed text block", `"""abc""`, 8, "unclosed text block", true},
		{"invalid escape", `"a\qb"`, 3, `invalid escape sequence '\q'`, false},
		{"short unicode escape", `"\u00G0"`, 5, "expected hex digit, but found 'G'", false},
		{"empty hex", "0x", 2, "expected hex digit, but found end of input", true},
		{"long hex", "0x11112222333344445", 18, "hexadecimal literal exceeds 16 digits", false},
		{"missing fraction", "1.", 2, "expected digit, but found end of input", true},
		{"missing exponent", "1e+", 3, "expected digit, but found end of input", true},
		{"missing digit", "-x", 1, "expected digit, but found 'x'", false},
		{"unclosed array", "[1, 2", 5, "expected ']', but found end of input", true},
		{"unclosed object", "{a: 1", 5, "expected '}', but found end of input", true},
		{"missing colon", "{a 1}", 3, "expected ':', but found '1'", false},
		{"unclosed tuple", "(1", 2, "expected ')', but found end of input", true},
		{"unclosed markup", "<<abc", 5, "unclosed markup", true},
		{"single angle", "<a>", 1, "expected '<', but found 'a'", false},
		{"attribute name", "@1", 1, "expected attribute name, but found '1'", false},
		{"unknown start", "}", 0, "expected value, but found '}'", false},
		{"control character", "\"a\x01\"", 2, "invalid control character U+0001 in string", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grammar.Parse(tc.input, grammar.Untyped, nil)
			var se *codec.SyntaxError
			require.ErrorAs(t, err, &se)
			require.Equal(t, tc.offset, se.Pos.Offset)
			require.Contains(t, err.Error(), tc.msg)
			require.Equal(t, tc.eof, errorsIsEOF(err))
		})
	}
}

func errorsIsEOF(err error) bool {
	return errors.Is(err, codec.ErrUnexpectedEOF)
}
