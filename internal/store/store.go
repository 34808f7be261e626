// Package store persists whole JSON documents behind a pluggable Backend.
//
// Every Load re-reads the backend; there is no cache. Mutations go through
// Update, which holds a per-location mutex across load, mutate and save so
// concurrent writers in the same process never lose an update.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Store reads and writes a document of type T. T is usually a pointer to
// a struct or an ordered map.
type Store[T any] struct {
	backend Backend
	empty   func() T
	initial func() T
	mu      *sync.Mutex
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithDefault sets the document written the first time Load finds nothing
// stored. Without it the empty document is used.
func WithDefault[T any](fn func() T) Option[T] {
	return func(s *Store[T]) { s.initial = fn }
}

// New returns a Store over b. empty must return a fresh, non-nil value to
// decode into.
func New[T any](b Backend, empty func() T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{backend: b, empty: empty, initial: empty, mu: lockFor(b.Location())}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Backend returns the underlying backend.
func (s *Store[T]) Backend() Backend { return s.backend }

// Load returns the current document, creating it with the default value
// when nothing is stored yet.
func (s *Store[T]) Load(ctx context.Context) (T, error) {
	doc, err := s.read(ctx)
	if !errors.Is(err, ErrNotExist) {
		return doc, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Save replaces the stored document.
func (s *Store[T]) Save(ctx context.Context, doc T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, doc)
}

// Update loads the document, applies fn and saves the result, all while
// holding the location lock. When fn fails nothing is written and its
// error is returned as is.
func (s *Store[T]) Update(ctx context.Context, fn func(doc T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadLocked(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	doc, err = fn(doc)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := s.save(ctx, doc); err != nil {
		var zero T
		return zero, err
	}
	return doc, nil
}

func (s *Store[T]) loadLocked(ctx context.Context) (T, error) {
	doc, err := s.read(ctx)
	if !errors.Is(err, ErrNotExist) {
		return doc, err
	}
	doc = s.initial()
	if err := s.save(ctx, doc); err != nil {
		var zero T
		return zero, err
	}
	return doc, nil
}

func (s *Store[T]) read(ctx context.Context) (T, error) {
	var zero T
	b, err := s.backend.Read(ctx)
	if err != nil {
		return zero, err
	}
	doc := s.empty()
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return zero, fmt.Errorf("%w: %s: %w", ErrParse, s.backend.Location(), err)
	}
	return doc, nil
}

func (s *Store[T]) save(ctx context.Context, doc T) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrParse, s.backend.Location(), err)
	}
	return s.backend.Write(ctx, b)
}
