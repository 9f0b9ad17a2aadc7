// Package config implements the read-only typed configuration store: an
// immutable, type-keyed map of user config values, frozen before start and
// read-only at runtime. Lookups are by exact type identity.
package config

import (
	"reflect"
	"sync"

	"microbus/logger"
)

// Builder accumulates config values before the application starts. Put is
// only valid before Freeze; last write wins, logging a warning on the
// second and later writes for the same type.
type Builder struct {
	mu     sync.Mutex
	values map[reflect.Type]any
	frozen bool
	log    logger.Logger
}

// NewBuilder constructs an empty Builder.
func NewBuilder(log logger.Logger) *Builder {
	if log == nil {
		log = logger.Noop()
	}

	return &Builder{
		values: make(map[reflect.Type]any),
		log:    log.WithComponent("CONFIG"),
	}
}

// Put stores value under T's type identity. Calling Put after Freeze is a
// programming error and panics — assembly and runtime are strictly
// separated.
func Put[T any](b *Builder, value T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		panic("config: Put called after Freeze")
	}

	t := reflect.TypeOf((*T)(nil)).Elem()

	if _, exists := b.values[t]; exists {
		b.log.Warn().Str("type", t.String()).Msg("config for this type provided multiple times before start; overriding")
	}

	b.values[t] = value
}

// Freeze converts the builder into an immutable Store. Further Put calls
// on the same Builder panic.
func (b *Builder) Freeze() *Store {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frozen = true

	snapshot := make(map[reflect.Type]any, len(b.values))
	for t, v := range b.values {
		snapshot[t] = v
	}

	return &Store{values: snapshot}
}

// Store is the frozen, read-only snapshot of business configuration. The
// zero value is a valid empty store.
type Store struct {
	values map[reflect.Type]any
}

// Get returns the stored value of type T, and whether one was present.
// This is the only runtime read path; there is no way to mutate a Store.
func Get[T any](s *Store) (T, bool) {
	var zero T

	if s == nil || s.values == nil {
		return zero, false
	}

	t := reflect.TypeOf((*T)(nil)).Elem()

	v, ok := s.values[t]
	if !ok {
		return zero, false
	}

	return v.(T), true
}
