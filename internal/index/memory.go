package index

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	pages  map[string]string
	order  []string
	closed bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pages: make(map[string]string),
		order: make([]string, 0),
	}
}

// Put stores text under url.
func (m *MemoryStore) Put(_ context.Context, url, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if _, ok := m.pages[url]; !ok {
		m.order = append(m.order, url)
	}
	m.pages[url] = text
	return nil
}

// Get returns the text stored under url.
func (m *MemoryStore) Get(_ context.Context, url string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrStoreClosed
	}
	text, ok := m.pages[url]
	return text, ok, nil
}

// Len returns the number of stored pages.
func (m *MemoryStore) Len(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}
	return len(m.order), nil
}

// Each iterates pages in insertion order. fn runs without the lock held
// on a snapshot of the keys, so it may call back into the store.
func (m *MemoryStore) Each(ctx context.Context, fn func(url, text string) bool) error {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrStoreClosed
	}
	keys := make([]string, len(m.order))
	copy(keys, m.order)
	texts := make([]string, len(keys))
	for i, k := range keys {
		texts[i] = m.pages[k]
	}
	m.mu.RUnlock()

	for i, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !fn(k, texts[i]) {
			return nil
		}
	}
	return nil
}

// Close marks the store closed and drops its contents.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.pages = nil
	m.order = nil
	return nil
}
