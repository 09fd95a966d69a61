package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentpipe/core"
)

// Record is the internal representation persisted by InMemoryStore. Items
// from a SaveRequest are stringified on the way in.
type Record struct {
	ID       string
	Content  string
	StoredAt time.Time
}

// InMemoryStore is a naive process-local MemoryStore. It offers:
//  1. Append-only persistence of save requests into named collections
//  2. Substring Search over a collection's records
//
// Concurrency: protected by RWMutex.
// Search: linear scan with substring matching (case sensitive). Suitable for
// tests / demos; swap for a vector DB or semantic index for production
// retrieval.
type InMemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Record // collection name -> stored records
}

// NewInMemoryStore creates a new in-memory memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		collections: make(map[string][]Record),
	}
}

// Save appends every item of the request to its collection. Non-string items
// are stringified with %v.
func (m *InMemoryStore) Save(req core.SaveRequest) error {
	if req.Collection == "" {
		return fmt.Errorf("collection name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range req.Data {
		content, ok := item.(string)
		if !ok {
			content = fmt.Sprintf("%v", item)
		}
		m.collections[req.Collection] = append(m.collections[req.Collection], Record{
			ID:       uuid.NewString(),
			Content:  content,
			StoredAt: time.Now(),
		})
	}

	return nil
}

// Search performs a simple substring match over a collection's records in
// insertion order, up to the provided limit. An empty query matches every
// record. Limit <= 0 means no limit.
func (m *InMemoryStore) Search(collection, query string, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records, exists := m.collections[collection]
	if !exists {
		return []Record{}, nil
	}

	results := []Record{}
	for _, rec := range records {
		if limit > 0 && len(results) >= limit {
			break
		}
		if query == "" || strings.Contains(rec.Content, query) {
			results = append(results, rec)
		}
	}
	return results, nil
}

// Len returns the number of records stored in a collection.
func (m *InMemoryStore) Len(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collection])
}

// Delete removes a stored record by id.
func (m *InMemoryStore) Delete(collection, recordID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, exists := m.collections[collection]
	if !exists {
		return fmt.Errorf("record not found")
	}
	for i, rec := range records {
		if rec.ID == recordID {
			m.collections[collection] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("record not found")
}

// Reset drops all collections.
func (m *InMemoryStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections = make(map[string][]Record)
}
