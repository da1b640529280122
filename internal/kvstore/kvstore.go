// Package kvstore is the key-value persistence port backing the resource
// caches. Values never expire on their own; the only way an entry disappears
// is an explicit Delete or Clear.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the persistence contract consumed by the core.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

var ErrNotFound = fmt.Errorf("kvstore: key not found")

// GetJSON reads and unmarshals the value stored under key.
func GetJSON(ctx context.Context, store Store, key string, dest interface{}) error {
	data, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, store Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, data)
}

// AppendJSON appends item to the JSON list stored under key, creating the
// list if the key is absent.
func AppendJSON[T any](ctx context.Context, store Store, key string, item T) error {
	var list []T
	if err := GetJSON(ctx, store, key, &list); err != nil && err != ErrNotFound {
		return err
	}
	list = append(list, item)
	return SetJSON(ctx, store, key, list)
}

// RemoveJSON removes every item matching the predicate from the JSON list
// stored under key. A missing key is not an error.
func RemoveJSON[T any](ctx context.Context, store Store, key string, match func(T) bool) error {
	var list []T
	if err := GetJSON(ctx, store, key, &list); err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}
	kept := list[:0]
	for _, item := range list {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	return SetJSON(ctx, store, key, kept)
}
