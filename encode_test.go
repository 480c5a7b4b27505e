package waml_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-waml"
	"github.com/KimNorgaard/go-waml/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestEncoderChunking(t *testing.T) {
	for _, name := range testutil.Samples() {
		data, err := testutil.ReadTestData(name)
		require.NoError(t, err)
		v, err := waml.Parse(data)
		require.NoError(t, err)

		want, err := waml.Marshal(v, waml.Indent(2))
		require.NoError(t, err)

		for _, size := range []int{1, 3, 16, 4096} {
			var buf bytes.Buffer
			e := waml.NewEncoder(&buf, waml.Indent(2), waml.ChunkSize(size))
			require.NoError(t, e.Encode(v), "%s with chunk size %d", name, size)
			require.Equal(t, string(want)+"\n", buf.String(), "%s with chunk size %d", name, size)
		}
	}
}

func TestEncoderMultipleValues(t *testing.T) {
	var buf bytes.Buffer
	e := waml.NewEncoder(&buf)
	require.NoError(t, e.Encode([]int{1, 2}))
	require.NoError(t, e.Encode("two words"))
	require.NoError(t, e.Encode(nil))
	require.Equal(t, "[1, 2]\n\"two words\"\nnull\n", buf.String())
}

type failingWriter struct {
	err   error
	after int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, w.err
	}
	w.after--
	return len(p), nil
}

func TestEncoderErrors(t *testing.T) {
	errBoom := errors.New("boom")

	w := &failingWriter{err: errBoom, after: 2}
	err := waml.NewEncoder(w, waml.ChunkSize(4)).Encode([]string{"alpha", "beta", "gamma"})
	var ioe *waml.IOError
	require.ErrorAs(t, err, &ioe)
	require.ErrorIs(t, err, errBoom)

	err = waml.NewEncoder(&bytes.Buffer{}).Encode(1.0 / zero())
	require.ErrorContains(t, err, "cannot write non-finite number")

	err = waml.NewEncoder(&bytes.Buffer{}, waml.Indent(-1)).Encode(1)
	require.True(t, strings.HasPrefix(err.Error(), "waml: indent"))
}

func zero() float64 { return 0 }
