package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Memory implements KV and BlobStore in process memory. Intended for tests
// and local development without a database.
type Memory struct {
	mu    sync.RWMutex
	kv    map[string]string
	blobs map[string]memoryBlob
}

type memoryBlob struct {
	data        []byte
	contentType string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		kv:    make(map[string]string),
		blobs: make(map[string]memoryBlob),
	}
}

// Get returns the value for key, or ok=false when the key is absent.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.kv[key]
	return value, ok, nil
}

// Set stores value under key, overwriting any previous value.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = value
	return nil
}

// List returns the entries whose keys start with prefix, ordered by key.
func (m *Memory) List(_ context.Context, prefix string, withValues bool) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []Entry
	for key, value := range m.kv {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		entry := Entry{Key: key}
		if withValues {
			entry.Value = value
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Upload stores data under path and returns the stored path.
func (m *Memory) Upload(_ context.Context, path string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.blobs[path] = memoryBlob{data: buf, contentType: contentType}
	return path, nil
}

// Read returns the content and content type stored under path, or
// ErrNotFound.
func (m *Memory) Read(_ context.Context, path string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[path]
	if !ok {
		return nil, "", ErrNotFound
	}
	return blob.data, blob.contentType, nil
}
