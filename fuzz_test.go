package waml_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/KimNorgaard/go-waml"
	"github.com/KimNorgaard/go-waml/internal/testutil"
	"github.com/KimNorgaard/go-waml/value"
	"github.com/stretchr/testify/require"
)

func addSeeds(f *testing.F) {
	for _, name := range testutil.Samples() {
		data, err := testutil.ReadTestData(name)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", name, err)
		}
		f.Add(data)
	}
	f.Add([]byte("{}"))
	f.Add([]byte("[]"))
	f.Add([]byte("()"))
	f.Add([]byte("null"))
	f.Add([]byte(`"a simple string"`))
	f.Add([]byte(`"""text "block" """`))
	f.Add([]byte("-12345"))
	f.Add([]byte("0x7fff"))
	f.Add([]byte("@a @b(1, c: 2) <<x @y<z> {[1]}>>"))
}

// finite reports whether every float in v can be written.
func finite(v any) bool {
	switch v := v.(type) {
	case float64:
		return !math.IsInf(v, 0) && !math.IsNaN(v)
	case []any:
		for _, x := range v {
			if !finite(x) {
				return false
			}
		}
	case *value.Object:
		for _, f := range v.Fields {
			if !finite(f.Value) {
				return false
			}
		}
	case value.Tuple:
		for _, it := range v.Items {
			if !finite(it.Value) {
				return false
			}
		}
	case value.Markup:
		for _, n := range v.Nodes {
			if !finite(n) {
				return false
			}
		}
	case value.Attributed:
		for _, a := range v.Attrs {
			if !finite(a.Value) {
				return false
			}
		}
		return finite(v.Value)
	}
	return true
}

func FuzzRoundTrip(f *testing.F) {
	addSeeds(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		v1, err := waml.Parse(data)
		if err != nil || !finite(v1) {
			return
		}

		for _, opts := range [][]waml.Option{nil, {waml.Compact()}, {waml.Indent(2), waml.TextBlocks(true)}} {
			out, err := waml.Marshal(v1, opts...)
			require.NoError(t, err, "Marshal failed for a successfully parsed value")

			v2, err := waml.Parse(out)
			require.NoError(t, err, "Parse failed on our own output %q", out)
			require.True(t, value.Equal(v1, v2), "value changed after a round trip through %q", out)
		}
	})
}

func FuzzChunking(f *testing.F) {
	addSeeds(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		want, wantErr := waml.Parse(data)

		var got any
		err := waml.NewDecoder(bytes.NewReader(data), waml.ChunkSize(1)).Decode(&got)
		if wantErr != nil {
			require.Error(t, err)
			require.Equal(t, wantErr.Error(), err.Error())
			return
		}
		require.NoError(t, err)
		require.True(t, value.Equal(want, got))
	})
}
