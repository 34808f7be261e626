// Package configs implements the configuration store: a JSON object of
// string keys to arbitrary JSON values, persisted as one document.
package configs

import (
	"context"
	"encoding/json"
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/recordkit/recordsvc/internal/store"
)

var (
	ErrNotFound    = errors.New("key not found")
	ErrKeyRequired = errors.New("key is required")
)

// Document is the persisted mapping. Iteration follows the order of the
// stored JSON object; new keys are appended.
type Document = *orderedmap.OrderedMap[string, json.RawMessage]

// Entry is one key/value pair of the mapping.
type Entry struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// NewDocument returns a mapping holding the given entries in order.
func NewDocument(entries ...Entry) Document {
	doc := orderedmap.New[string, json.RawMessage]()
	for _, e := range entries {
		doc.Set(e.Key, normalize(e.Value))
	}
	return doc
}

// NewStore wraps b in a Store whose initial document holds seed.
func NewStore(b store.Backend, seed []Entry) *store.Store[Document] {
	empty := func() Document { return NewDocument() }
	return store.New(b, empty, store.WithDefault(func() Document { return NewDocument(seed...) }))
}

// Service exposes get/list/put/delete over the mapping document.
type Service struct {
	store *store.Store[Document]
}

func NewService(s *store.Store[Document]) *Service {
	return &Service{store: s}
}

// Get returns the entry for key.
func (s *Service) Get(ctx context.Context, key string) (Entry, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return Entry{}, err
	}
	v, ok := doc.Get(key)
	if !ok {
		return Entry{}, ErrNotFound
	}
	return Entry{Key: key, Value: v}, nil
}

// All returns the whole mapping document.
func (s *Service) All(ctx context.Context) (Document, error) {
	return s.store.Load(ctx)
}

// List returns every entry in document order.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, doc.Len())
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Entry{Key: pair.Key, Value: pair.Value})
	}
	return out, nil
}

// Put inserts or overwrites key. A missing value is stored as null.
func (s *Service) Put(ctx context.Context, key string, value json.RawMessage) (Entry, error) {
	if key == "" {
		return Entry{}, ErrKeyRequired
	}
	value = normalize(value)
	_, err := s.store.Update(ctx, func(doc Document) (Document, error) {
		doc.Set(key, value)
		return doc, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return Entry{Key: key, Value: value}, nil
}

// Delete removes key. Nothing is written when the key is absent.
func (s *Service) Delete(ctx context.Context, key string) error {
	_, err := s.store.Update(ctx, func(doc Document) (Document, error) {
		if _, ok := doc.Delete(key); !ok {
			return nil, ErrNotFound
		}
		return doc, nil
	})
	return err
}

func normalize(v json.RawMessage) json.RawMessage {
	if len(v) == 0 {
		return json.RawMessage("null")
	}
	return v
}
