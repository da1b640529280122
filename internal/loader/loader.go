// Package loader implements the cache-first resource loading policy shared by
// every remote list and statistics resource: check the persistence port,
// fetch at most once per key per session, persist successful results.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"merchant-dashboard/internal/kvstore"
)

// flagSource gates caching at runtime.
type flagSource interface {
	IsEnabled(name string) bool
}

// Options tunes a loader.
type Options struct {
	// Flags and FlagName gate the cache; when the flag is off every Load
	// goes straight to the remote accessor.
	Flags    flagSource
	FlagName string
}

// Loader loads one resource type cache-first. The fetched-key register
// remembers keys satisfied this session, so even an empty persisted value (or
// a store cleared behind our back) does not trigger a second remote call. An
// in-flight fetch for a key is shared by concurrent callers, so at most one
// remote call is ever issued per key per session.
type Loader[T any] struct {
	store kvstore.Store
	log   *zap.SugaredLogger
	opts  Options

	mu      sync.Mutex
	fetched map[string]struct{}
	group   singleflight.Group
}

// New creates a loader over the given store.
func New[T any](store kvstore.Store, log *zap.SugaredLogger) *Loader[T] {
	return NewWithOptions[T](store, log, Options{})
}

// NewWithOptions creates a loader with custom options.
func NewWithOptions[T any](store kvstore.Store, log *zap.SugaredLogger, opts Options) *Loader[T] {
	return &Loader[T]{
		store:   store,
		log:     log,
		opts:    opts,
		fetched: make(map[string]struct{}),
	}
}

func (l *Loader[T]) cacheEnabled() bool {
	if l.opts.Flags == nil || l.opts.FlagName == "" {
		return true
	}
	return l.opts.Flags.IsEnabled(l.opts.FlagName)
}

// Load returns the value for key. The persisted value wins; otherwise the
// remote accessor runs once, its result is persisted and the key registered.
// Failed fetches are never persisted.
func (l *Loader[T]) Load(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if !l.cacheEnabled() {
		return fetch(ctx)
	}

	// The cache check always completes before any remote call is issued.
	raw, err := l.store.Get(ctx, key)
	if err == nil {
		var value T
		if unmarshalErr := json.Unmarshal(raw, &value); unmarshalErr == nil {
			l.markFetched(key)
			return value, nil
		}
		// A corrupt entry is treated as a miss and refetched.
		l.log.Warnw("discarding corrupt cache entry", "key", key)
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		l.log.Warnw("cache read failed", "key", key, "error", err)
	}

	if l.alreadyFetched(key) {
		// The key was satisfied this session even though the store holds
		// nothing usable for it, e.g. the remote returned an empty list.
		return zero, nil
	}

	value, err, _ := l.group.Do(key, func() (interface{}, error) {
		fetched, fetchErr := fetch(ctx)
		if fetchErr != nil {
			return zero, fetchErr
		}
		if persistErr := kvstore.SetJSON(ctx, l.store, key, fetched); persistErr != nil {
			l.log.Warnw("failed to persist fetched resource", "key", key, "error", persistErr)
		}
		l.markFetched(key)
		return fetched, nil
	})
	if err != nil {
		return zero, err
	}
	return value.(T), nil
}

// Invalidate drops the persisted value and the session register entry for
// key, forcing the next Load to refetch.
func (l *Loader[T]) Invalidate(ctx context.Context, key string) error {
	l.mu.Lock()
	delete(l.fetched, key)
	l.mu.Unlock()
	return l.store.Delete(ctx, key)
}

// Reset clears the session register. Used on logout together with a store
// clear.
func (l *Loader[T]) Reset() {
	l.mu.Lock()
	l.fetched = make(map[string]struct{})
	l.mu.Unlock()
}

func (l *Loader[T]) markFetched(key string) {
	l.mu.Lock()
	l.fetched[key] = struct{}{}
	l.mu.Unlock()
}

func (l *Loader[T]) alreadyFetched(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.fetched[key]
	return ok
}
