package format_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"testing"

	"github.com/KimNorgaard/go-waml/codec"
	"github.com/KimNorgaard/go-waml/format"
	"github.com/KimNorgaard/go-waml/grammar"
	"github.com/stretchr/testify/require"
)

// shout writes every string as the same literal.
type shout struct{ text string }

func (shout) Type() reflect.Type { return reflect.TypeFor[string]() }
func (shout) Form() grammar.Form { return grammar.Untyped }
func (shout) Scalar(any) bool    { return true }

func (s shout) Writer(any, *grammar.WriterOptions, int) codec.Writer {
	return grammar.Literal(s.text)
}

func only[T any](priority int, f format.Format) format.Provider {
	return format.NewProvider(priority, func(t reflect.Type, _ *format.Registry) (format.Format, error) {
		if t == reflect.TypeFor[T]() {
			return f, nil
		}
		return nil, nil
	})
}

func TestRegistryRegister(t *testing.T) {
	r := format.NewRegistry(nil)
	before, err := format.For[string](r)
	require.NoError(t, err)

	r.Register(shout{"LOUD"})
	after, err := format.For[string](r)
	require.NoError(t, err)
	require.NotEqual(t, before, after)
	require.Equal(t, shout{"LOUD"}, after)

	s, err := format.Write(after, "quiet", nil)
	require.NoError(t, err)
	require.Equal(t, "LOUD", s)

	other, err := format.For[string](format.Default)
	require.NoError(t, err)
	require.NotEqual(t, shout{"LOUD"}, other)
}

func TestRegistryPriority(t *testing.T) {
	r := format.NewRegistry(nil)

	r.Add(only[string](format.PriorityComposite-1, shout{"low"}))
	f, err := format.For[string](r)
	require.NoError(t, err)
	require.NotEqual(t, shout{"low"}, f)

	r.Add(only[string](format.PriorityExact, shout{"first"}))
	r.Add(only[string](format.PriorityExact, shout{"second"}))
	f, err = format.For[string](r)
	require.NoError(t, err)
	require.Equal(t, shout{"second"}, f)
}

func TestRegistryProviderError(t *testing.T) {
	errBroken := errors.New("broken provider")
	r := format.NewRegistry(nil)
	r.Add(format.NewProvider(format.PriorityRegistered, func(reflect.Type, *format.Registry) (format.Format, error) {
		return nil, errBroken
	}))
	_, err := format.For[int](r)
	require.ErrorIs(t, err, errBroken)
}

func TestRegistryNoFormat(t *testing.T) {
	testCases := []struct {
		name string
		typ  reflect.Type
	}{
		{"nil", nil},
		{"channel", reflect.TypeFor[chan int]()},
		{"function", reflect.TypeFor[func()]()},
		{"int keys", reflect.TypeFor[map[int]string]()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := format.Default.Resolve(tc.typ)
			require.ErrorIs(t, err, format.ErrNoFormat)
		})
	}
}

func TestRegistryElementResolvedLazily(t *testing.T) {
	f, err := format.For[[]chan int](format.Default)
	require.NoError(t, err)
	_, err = format.Read(f, "[1]", nil)
	require.ErrorIs(t, err, format.ErrNoFormat)
}

func TestRegistryConcurrentResolve(t *testing.T) {
	r := format.NewRegistry(nil)
	types := []reflect.Type{
		reflect.TypeFor[int](),
		reflect.TypeFor[string](),
		reflect.TypeFor[[]float64](),
		reflect.TypeFor[map[string]bool](),
		reflect.TypeFor[*uint8](),
	}

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Go(func() {
			for j := range 200 {
				typ := types[(i+j)%len(types)]
				f, err := r.Resolve(typ)
				if err != nil || f.Type() != typ {
					t.Errorf("resolve %s: %v", typ, err)
					return
				}
			}
		})
	}
	wg.Go(func() {
		for range 50 {
			r.Add(only[bool](format.PriorityRegistered, shout{"flag"}))
		}
	})
	wg.Wait()

	f, err := format.For[bool](r)
	require.NoError(t, err)
	require.Equal(t, shout{"flag"}, f)
}

func TestRegistryLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := format.NewRegistry(logger)
	buf.Reset()

	_, err := format.For[int](r)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "format resolved")
	require.Contains(t, buf.String(), "component=format")
	require.Contains(t, buf.String(), "type=int")
}
