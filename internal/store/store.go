// Package store provides key-value and blob persistence for resume records,
// resume models, and user accounts.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key or blob path does not exist.
var ErrNotFound = errors.New("not found")

// Entry is one key-value pair returned by a prefix listing. Value is empty
// when the listing was requested without values.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// KV is the key-value capability the domain layer persists through. Values
// are JSON text blobs written whole; last writer wins.
type KV interface {
	// Get returns the value for key, or ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
	// List returns the entries whose keys start with prefix, ordered by key.
	// Values are omitted unless withValues is set.
	List(ctx context.Context, prefix string, withValues bool) ([]Entry, error)
}

// BlobStore is the file-content capability used for uploaded resumes and
// their preview images.
type BlobStore interface {
	// Upload stores data under path and returns the stored path.
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	// Read returns the content and content type stored under path, or
	// ErrNotFound.
	Read(ctx context.Context, path string) ([]byte, string, error)
}
