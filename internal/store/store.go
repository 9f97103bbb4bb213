// Package store persists whole record collections as JSON arrays under
// named keys in a blob store, seeding each collection on first access.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"healthease/internal/storage"
)

// MalformedDataError reports that the value persisted under Key does not
// decode into the expected record shape. The read fails rather than
// returning an empty collection, which would mask data loss.
type MalformedDataError struct {
	Key string
	Err error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed data under %q: %v", e.Key, e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

// Collection reads and writes one record type under one key. Every
// mutation is a full read-modify-write of the collection, serialized by a
// per-collection mutex so in-process callers cannot interleave. Writers in
// other processes sharing the same backend remain last-write-wins.
type Collection[T any] struct {
	backend  storage.Store
	key      string
	seed     func() []T
	validate func(T) error
	mu       sync.Mutex
}

// New builds a collection over key. seed produces the records persisted on
// first access; validate, if non-nil, is applied to every record read back
// and turns a failure into a MalformedDataError.
func New[T any](backend storage.Store, key string, seed func() []T, validate func(T) error) *Collection[T] {
	return &Collection[T]{backend: backend, key: key, seed: seed, validate: validate}
}

// Load returns the stored records. An absent key is seeded: the seed
// records are persisted and returned, so a second Load sees the same data.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Save replaces the whole collection.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

// Update runs fn over the current records and persists its result, all
// under the collection mutex. When fn returns an error nothing is written
// and the error is returned as-is.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return c.save(ctx, next)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.backend.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if !ok {
		records := c.seed()
		if err := c.save(ctx, records); err != nil {
			return nil, err
		}
		return records, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	var records []T
	if err := dec.Decode(&records); err != nil {
		return nil, &MalformedDataError{Key: c.key, Err: err}
	}
	if c.validate != nil {
		for _, r := range records {
			if err := c.validate(r); err != nil {
				return nil, &MalformedDataError{Key: c.key, Err: err}
			}
		}
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	if err := c.backend.Set(ctx, c.key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}
