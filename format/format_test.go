package format_test

import (
	"math"
	"math/big"
	"net/netip"
	"testing"
	"time"

	"github.com/KimNorgaard/go-waml/format"
	"github.com/KimNorgaard/go-waml/grammar"
	"github.com/KimNorgaard/go-waml/value"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type level int

func read[T any](t *testing.T, r *format.Registry, s string) (T, error) {
	t.Helper()
	f, err := format.For[T](r)
	require.NoError(t, err)
	v, err := format.Read(f, s, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func mustRead[T any](t *testing.T, s string) T {
	t.Helper()
	v, err := read[T](t, format.Default, s)
	require.NoError(t, err)
	return v
}

func write[T any](t *testing.T, v T, opts *grammar.WriterOptions) string {
	t.Helper()
	f, err := format.For[T](format.Default)
	require.NoError(t, err)
	s, err := format.Write(f, v, opts)
	require.NoError(t, err)
	return s
}

func TestScalarFormats(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		require.True(t, mustRead[bool](t, "true"))
		require.Equal(t, "false", write(t, false, nil))
	})

	t.Run("sized integers", func(t *testing.T) {
		require.Equal(t, int8(-128), mustRead[int8](t, "-128"))
		require.Equal(t, int8(-1), mustRead[int8](t, "0xff"))
		require.Equal(t, uint16(0xbeef), mustRead[uint16](t, "0xBEEF"))
		require.Equal(t, uint64(math.MaxUint64), mustRead[uint64](t, "18446744073709551615"))
		require.Equal(t, "-1", write(t, int8(-1), nil))
		require.Equal(t, "18446744073709551615", write(t, uint64(math.MaxUint64), nil))
	})

	t.Run("named kinds", func(t *testing.T) {
		require.Equal(t, level(3), mustRead[level](t, "3"))
		require.Equal(t, "3", write(t, level(3), nil))
	})

	t.Run("floats", func(t *testing.T) {
		require.Equal(t, float32(1.5), mustRead[float32](t, "0x3fc00000"))
		require.Equal(t, 1.5, mustRead[float64](t, "0x3ff8000000000000"))
		require.Equal(t, 2.0, mustRead[float64](t, "2"))
		require.Equal(t, "2.0", write(t, 2.0, nil))
		require.Equal(t, "0.25", write(t, float32(0.25), nil))
	})

	t.Run("strings", func(t *testing.T) {
		require.Equal(t, "hi there", mustRead[string](t, `"hi there"`))
		require.Equal(t, "hello", mustRead[string](t, "hello"))
		require.Equal(t, "", mustRead[string](t, "null"))
		require.Equal(t, "hello", write(t, "hello", nil))
		require.Equal(t, `"true"`, write(t, "true", nil))
		require.Equal(t, `"a b"`, write(t, "a b", nil))
	})

	t.Run("blob", func(t *testing.T) {
		require.Equal(t, []byte("hi"), mustRead[[]byte](t, `@blob "aGk="`))
		require.Equal(t, []byte("hi"), mustRead[[]byte](t, `"aGk="`))
		require.Nil(t, mustRead[[]byte](t, "null"))
		require.Equal(t, `@blob "aGk="`, write(t, []byte("hi"), nil))
		require.Equal(t, "null", write(t, []byte(nil), nil))
	})

	t.Run("big integer", func(t *testing.T) {
		want, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
		require.True(t, ok)
		got := mustRead[*big.Int](t, "123456789012345678901234567890")
		require.Zero(t, want.Cmp(got))
		require.Equal(t, "123456789012345678901234567890", write(t, want, nil))
		require.Equal(t, "null", write(t, (*big.Int)(nil), nil))
	})

	t.Run("time", func(t *testing.T) {
		want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
		got := mustRead[time.Time](t, `"2024-03-01T12:30:00Z"`)
		require.True(t, want.Equal(got))
		require.Equal(t, `"2024-03-01T12:30:00Z"`, write(t, want, nil))
	})

	t.Run("duration", func(t *testing.T) {
		require.Equal(t, 90*time.Second, mustRead[time.Duration](t, `"1m30s"`))
		require.Equal(t, 1500*time.Nanosecond, mustRead[time.Duration](t, "1500"))
		require.Equal(t, `"1m30s"`, write(t, 90*time.Second, nil))
	})

	t.Run("addresses", func(t *testing.T) {
		ap := netip.MustParseAddrPort("[::1]:8080")
		require.Equal(t, ap, mustRead[netip.AddrPort](t, `"[::1]:8080"`))
		require.Equal(t, `"[::1]:8080"`, write(t, ap, nil))
		addr := netip.MustParseAddr("10.0.0.1")
		require.Equal(t, addr, mustRead[netip.Addr](t, `"10.0.0.1"`))
		require.Equal(t, `"10.0.0.1"`, write(t, addr, nil))
	})

	t.Run("uuid", func(t *testing.T) {
		id := uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")
		require.Equal(t, id, mustRead[uuid.UUID](t, `"f47ac10b-58cc-4372-a567-0e02b2c3d479"`))
		require.Equal(t, `"f47ac10b-58cc-4372-a567-0e02b2c3d479"`, write(t, id, nil))
	})
}

func TestScalarFormatErrors(t *testing.T) {
	testCases := []struct {
		name string
		read func(t *testing.T) error
		want string
	}{
		{"int8 overflow", func(t *testing.T) error { _, err := read[int8](t, format.Default, "128"); return err }, "integer 128 overflows int8"},
		{"negative unsigned", func(t *testing.T) error { _, err := read[uint8](t, format.Default, "-1"); return err }, "integer -1 overflows uint8"},
		{"hex overflow", func(t *testing.T) error { _, err := read[uint8](t, format.Default, "0x100"); return err }, "integer 0x100 overflows uint8"},
		{"decimal into int", func(t *testing.T) error { _, err := read[int](t, format.Default, "1.5"); return err }, "cannot parse decimal 1.5 as Go value of type int"},
		{"string into int", func(t *testing.T) error { _, err := read[int](t, format.Default, `"1"`); return err }, "cannot parse string as Go value of type int"},
		{"invalid boolean", func(t *testing.T) error { _, err := read[bool](t, format.Default, "yes"); return err }, `invalid boolean "yes"`},
		{"malformed base64", func(t *testing.T) error { _, err := read[[]byte](t, format.Default, `@blob "!!"`); return err }, "malformed base64"},
		{"invalid uuid", func(t *testing.T) error { _, err := read[uuid.UUID](t, format.Default, `"nope"`); return err }, `invalid uuid.UUID "nope"`},
		{"float overflow", func(t *testing.T) error { _, err := read[float32](t, format.Default, "1e39"); return err }, "decimal 1e39 overflows float32"},
		{"invalid time", func(t *testing.T) error { _, err := read[time.Time](t, format.Default, `"yesterday"`); return err }, `invalid time.Time "yesterday"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read(t)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestWriteMismatch(t *testing.T) {
	f, err := format.For[int](format.Default)
	require.NoError(t, err)
	_, err = format.Write(f, "seven", nil)
	require.EqualError(t, err, "waml: cannot write string as int")
}

func TestCompositeFormats(t *testing.T) {
	t.Run("slice", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3}, mustRead[[]int](t, "[1, 2, 3]"))
		require.Equal(t, []int{}, mustRead[[]int](t, "[]"))
		require.Nil(t, mustRead[[]int](t, "null"))
		require.Equal(t, "[1, 2, 3]", write(t, []int{1, 2, 3}, nil))
		require.Equal(t, "null", write(t, []int(nil), nil))
	})

	t.Run("nested slices", func(t *testing.T) {
		require.Equal(t, [][]string{{"a"}, {"b", "c"}}, mustRead[[][]string](t, "[[a], [b, c]]"))
	})

	t.Run("array", func(t *testing.T) {
		require.Equal(t, [2]string{"a", "b"}, mustRead[[2]string](t, "[a, b]"))
		require.Equal(t, [3]int{7}, mustRead[[3]int](t, "[7]"))
		_, err := read[[2]string](t, format.Default, "[a, b, c]")
		require.ErrorContains(t, err, "too many elements for [2]string")
	})

	t.Run("map", func(t *testing.T) {
		require.Equal(t, map[string]int{"a": 1, "b": 2}, mustRead[map[string]int](t, "{b: 2, a: 1}"))
		require.Equal(t, "{a: 1, b: 2}", write(t, map[string]int{"b": 2, "a": 1}, nil))
		_, err := read[map[string]int](t, format.Default, "{a: 1, a: 2}")
		require.ErrorContains(t, err, `duplicate key "a" in object`)
	})

	t.Run("pointer", func(t *testing.T) {
		require.Nil(t, mustRead[*int](t, "null"))
		p := mustRead[*int](t, "5")
		require.NotNil(t, p)
		require.Equal(t, 5, *p)
		n := 5
		require.Equal(t, "5", write(t, &n, nil))
		require.Equal(t, "null", write(t, (*int)(nil), nil))
	})

	t.Run("interface", func(t *testing.T) {
		got := mustRead[any](t, "[1, x]")
		require.Equal(t, []any{int64(1), "x"}, got)
		require.Equal(t, "[1, x]", write[any](t, []any{1, "x"}, nil))
	})

	t.Run("value model", func(t *testing.T) {
		obj := mustRead[*value.Object](t, "{a: 1}")
		v, ok := obj.Get("a")
		require.True(t, ok)
		require.Equal(t, int64(1), v)
		_, err := read[*value.Object](t, format.Default, "1")
		require.ErrorContains(t, err, "cannot use int64 as Go value of type *value.Object")

		plain := mustRead[value.Object](t, "{a: 1, b: [x]}")
		require.Equal(t, []string{"a", "b"}, plain.Keys())
		v, ok = plain.Get("b")
		require.True(t, ok)
		require.Equal(t, []any{"x"}, v)
		require.Equal(t, "{a: 1, b: [x]}", write(t, plain, nil))
	})

	t.Run("block layout", func(t *testing.T) {
		opts := &grammar.WriterOptions{Whitespace: true, Indent: 2}
		require.Equal(t, "[\n  1\n  2\n]", write(t, []int{1, 2}, opts))
		opts.InlineLimit = 4
		require.Equal(t, "[1, 2]", write(t, []int{1, 2}, opts))
		require.Equal(t, "{\n  a: [1]\n}", write(t, map[string][]int{"a": {1}}, opts))
	})
}

func TestScalarReport(t *testing.T) {
	f, err := format.For[*[]int](format.Default)
	require.NoError(t, err)
	require.True(t, f.Scalar((*[]int)(nil)))
	require.False(t, f.Scalar(&[]int{1}))

	f, err = format.For[map[string]int](format.Default)
	require.NoError(t, err)
	require.False(t, f.Scalar(map[string]int{}))
}
