package format

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"sync/atomic"

	"github.com/KimNorgaard/go-waml/internal/logging"
)

// Registry resolves types to formats.
//
// The provider list and the format cache are immutable snapshots behind
// atomic pointers. Add swaps in a new provider list; a cache snapshot
// belongs to one provider list and is discarded once the list changes.
type Registry struct {
	providers atomic.Pointer[[]Provider]
	cache     atomic.Pointer[formatCache]
	log       logging.Logger
}

type formatCache struct {
	providers *[]Provider
	formats   map[reflect.Type]Format
}

// NewRegistry returns a registry holding the built-in providers. A nil
// logger disables logging.
func NewRegistry(logger *slog.Logger) *Registry {
	r := &Registry{log: logging.New(logger, "format")}
	empty := []Provider{}
	r.providers.Store(&empty)
	r.cache.Store(&formatCache{providers: &empty})
	for _, p := range builtins() {
		r.Add(p)
	}
	return r
}

// Default is the process-wide registry.
var Default = NewRegistry(nil)

// Add inserts p ahead of every provider of lower or equal priority, so
// among equal priorities the newest provider is asked first.
func (r *Registry) Add(p Provider) {
	for {
		old := r.providers.Load()
		i, _ := slices.BinarySearchFunc(*old, p.Priority(), func(q Provider, prio int) int {
			if q.Priority() > prio {
				return -1
			}
			return 1
		})
		next := slices.Insert(slices.Clone(*old), i, p)
		if r.providers.CompareAndSwap(old, &next) {
			r.log.Log(slog.LevelDebug, "provider added",
				slog.Int("priority", p.Priority()),
				slog.Int("providers", len(next)))
			return
		}
	}
}

// Register binds f to its type ahead of every other provider.
func (r *Registry) Register(f Format) {
	r.Add(NewProvider(PriorityRegistered, func(t reflect.Type, _ *Registry) (Format, error) {
		if t == f.Type() {
			return f, nil
		}
		return nil, nil
	}))
}

// Resolve returns the format for t.
func (r *Registry) Resolve(t reflect.Type) (Format, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil", ErrNoFormat)
	}
	list := r.providers.Load()
	if c := r.cache.Load(); c.providers == list {
		if f, ok := c.formats[t]; ok {
			return f, nil
		}
	}
	for _, p := range *list {
		f, err := p.Resolve(t, r)
		if err != nil {
			return nil, err
		}
		if f != nil {
			r.log.Log(slog.LevelDebug, "format resolved", slog.String("type", t.String()))
			return r.publish(list, t, f), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoFormat, t)
}

// publish caches f for t unless the provider list it was resolved from
// has been replaced. When another resolution of t won the race, its
// format is returned instead.
func (r *Registry) publish(list *[]Provider, t reflect.Type, f Format) Format {
	for {
		old := r.cache.Load()
		var formats map[reflect.Type]Format
		switch {
		case old.providers == list:
			if g, ok := old.formats[t]; ok {
				return g
			}
			formats = maps.Clone(old.formats)
			if formats == nil {
				formats = make(map[reflect.Type]Format)
			}
		case r.providers.Load() != list:
			return f
		default:
			formats = make(map[reflect.Type]Format)
		}
		formats[t] = f
		if r.cache.CompareAndSwap(old, &formatCache{providers: list, formats: formats}) {
			return f
		}
	}
}

// For resolves the format of T.
func For[T any](r *Registry) (Format, error) {
	return r.Resolve(reflect.TypeFor[T]())
}
