package waml_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/KimNorgaard/go-waml"
	"github.com/KimNorgaard/go-waml/internal/testutil"
	"github.com/KimNorgaard/go-waml/value"
	"github.com/stretchr/testify/require"
)

func TestDecoderChunking(t *testing.T) {
	for _, name := range testutil.Samples() {
		data, err := testutil.ReadTestData(name)
		require.NoError(t, err)
		want, err := waml.Parse(data)
		require.NoError(t, err)

		for _, size := range []int{1, 2, 3, 7, 64, 4096} {
			var got any
			d := waml.NewDecoder(bytes.NewReader(data), waml.ChunkSize(size))
			require.NoError(t, d.Decode(&got), "%s with chunk size %d", name, size)
			require.True(t, value.Equal(want, got), "%s with chunk size %d", name, size)
		}

		var got any
		d := waml.NewDecoder(iotest.OneByteReader(bytes.NewReader(data)))
		require.NoError(t, d.Decode(&got))
		require.True(t, value.Equal(want, got), name)

		got = nil
		d = waml.NewDecoder(iotest.DataErrReader(bytes.NewReader(data)), waml.ChunkSize(5))
		require.NoError(t, d.Decode(&got))
		require.True(t, value.Equal(want, got), name)
	}
}

func TestDecoderTyped(t *testing.T) {
	var ports []uint16
	d := waml.NewDecoder(strings.NewReader("[80\n443\n8080]"), waml.ChunkSize(2))
	require.NoError(t, d.Decode(&ports))
	require.Equal(t, []uint16{80, 443, 8080}, ports)

	require.ErrorIs(t, d.Decode(&ports), io.EOF)
}

func TestDecoderErrors(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("nil reader", func(t *testing.T) {
		var v any
		require.EqualError(t, waml.NewDecoder(nil).Decode(&v), "waml: Decode(nil reader)")
	})

	t.Run("invalid target", func(t *testing.T) {
		var ie *waml.InvalidUnmarshalError
		require.ErrorAs(t, waml.NewDecoder(strings.NewReader("1")).Decode(nil), &ie)
	})

	t.Run("reader failure", func(t *testing.T) {
		r := io.MultiReader(strings.NewReader("[1, 2"), iotest.ErrReader(errBoom))
		var v any
		err := waml.NewDecoder(r).Decode(&v)
		var ioe *waml.IOError
		require.ErrorAs(t, err, &ioe)
		require.ErrorIs(t, err, errBoom)
	})

	t.Run("truncated document", func(t *testing.T) {
		var v any
		err := waml.NewDecoder(strings.NewReader(`{a: "unterminated`), waml.ChunkSize(3)).Decode(&v)
		require.ErrorIs(t, err, waml.ErrUnexpectedEOF)
	})

	t.Run("syntax error position", func(t *testing.T) {
		var v any
		err := waml.NewDecoder(strings.NewReader("{\n  a: 1\n  b: ]\n}"), waml.ChunkSize(1)).Decode(&v)
		var se *waml.SyntaxError
		require.ErrorAs(t, err, &se)
		require.Equal(t, 3, se.Pos.Line)
		require.Equal(t, 6, se.Pos.Column)
	})

	t.Run("invalid option", func(t *testing.T) {
		var v any
		err := waml.NewDecoder(strings.NewReader("1"), waml.ChunkSize(-1)).Decode(&v)
		require.EqualError(t, err, "waml: chunk size must be a positive integer")
	})
}

func TestDecoderLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var v any
	d := waml.NewDecoder(strings.NewReader("[1, 2, 3]"), waml.ChunkSize(4), waml.WithLogger(logger))
	require.NoError(t, d.Decode(&v))

	logs := buf.String()
	require.Equal(t, 3, strings.Count(logs, "chunk read"))
	require.Contains(t, logs, "component=decoder")
	require.Contains(t, logs, "total=9")
}
