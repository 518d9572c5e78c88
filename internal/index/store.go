package index

import (
	"context"
	"errors"
)

// ErrStoreClosed is returned by any Store method called after Close.
var ErrStoreClosed = errors.New("index store is closed")

// Store maps page URLs to their extracted text.
type Store interface {
	// Put stores text under url, replacing any previous value.
	// A replaced URL keeps its original position in iteration order.
	Put(ctx context.Context, url, text string) error

	// Get returns the text stored under url and whether it exists.
	Get(ctx context.Context, url string) (string, bool, error)

	// Len returns the number of stored pages.
	Len(ctx context.Context) (int, error)

	// Each calls fn for every page in insertion order until fn returns false.
	Each(ctx context.Context, fn func(url, text string) bool) error

	// Close releases the store. Further calls return ErrStoreClosed.
	Close() error
}
