package history

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrNotFound      = errors.New("history entry not found")
	ErrInvalidID     = errors.New("invalid history entry ID")
	ErrInvalidEntry  = errors.New("history entry has no URL")
	ErrStoreClosed   = errors.New("history store is closed")
	ErrInvalidOption = errors.New("invalid query option")
)

// Store defines the interface for history storage operations.
type Store interface {
	// Add records a new entry and returns its ID.
	Add(ctx context.Context, entry Entry) (string, error)

	// Get retrieves a single entry by ID.
	Get(ctx context.Context, id string) (Entry, error)

	// List retrieves entries matching the query options, newest first.
	List(ctx context.Context, opts QueryOptions) ([]Entry, error)

	// URLs returns the distinct URLs matching the query options, most
	// recently used first. Pagination applies to the distinct URLs.
	URLs(ctx context.Context, opts QueryOptions) ([]string, error)

	// Count returns the number of entries matching the query options.
	Count(ctx context.Context, opts QueryOptions) (int64, error)

	// Delete removes an entry by ID.
	Delete(ctx context.Context, id string) error

	// Prune removes old entries based on the prune options.
	Prune(ctx context.Context, opts PruneOptions) (PruneResult, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close closes the store and releases resources.
	Close() error
}
