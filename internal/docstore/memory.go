package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests. It mirrors the per-document
// atomicity of the real store: each method locks for the duration of a single
// document operation only.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]json.RawMessage),
	}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string, dest interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func (s *MemoryStore) Set(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]json.RawMessage)
	}
	s.collections[collection][id] = data
	return nil
}

func (s *MemoryStore) Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal document %s/%s: %w", collection, id, err)
	}
	for k, v := range fields {
		doc[k] = v
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal patched document %s/%s: %w", collection, id, err)
	}
	s.collections[collection][id] = merged
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.New().String()
	if err := s.Set(ctx, collection, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryStore) Exists(ctx context.Context, collection, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.collections[collection][id]
	return ok, nil
}

func (s *MemoryStore) QueryByField(ctx context.Context, collection, field, value string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []Document
	for _, id := range s.sortedIDs(collection) {
		data := s.collections[collection][id]

		var doc map[string]interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		if str, ok := doc[field].(string); ok && str == value {
			docs = append(docs, Document{ID: id, Data: data})
		}
	}
	return docs, nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []Document
	for _, id := range s.sortedIDs(collection) {
		docs = append(docs, Document{ID: id, Data: s.collections[collection][id]})
	}
	return docs, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Count reports how many documents a collection holds. Test helper.
func (s *MemoryStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// caller must hold at least the read lock
func (s *MemoryStore) sortedIDs(collection string) []string {
	ids := make([]string, 0, len(s.collections[collection]))
	for id := range s.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
