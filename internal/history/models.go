package history

import (
	"time"
)

// Entry is one sent request recorded for URL suggestions.
type Entry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	WorkspaceID string    `json:"workspace_id"`
	Method      string    `json:"method"`
	URL         string    `json:"url"`
	RequestType string    `json:"request_type"` // http, websocket, socketio
}

// QueryOptions specifies filters and pagination for history queries.
type QueryOptions struct {
	// Filters
	WorkspaceID string // Only entries of this workspace (empty = all)
	URLContains string // Case-insensitive URL substring
	Method      string // Exact HTTP method

	// Pagination
	Page     int // 1-based page number (0 = first page)
	PageSize int // Entries per page (0 = no limit)
}

// Validate rejects negative pagination values.
func (o QueryOptions) Validate() error {
	if o.Page < 0 || o.PageSize < 0 {
		return ErrInvalidOption
	}
	return nil
}

// Offset returns the number of entries skipped before the requested page.
func (o QueryOptions) Offset() int {
	if o.Page <= 1 || o.PageSize <= 0 {
		return 0
	}
	return (o.Page - 1) * o.PageSize
}

// PruneOptions specifies which old entries to delete.
type PruneOptions struct {
	WorkspaceID string        // Only prune this workspace (empty = all)
	OlderThan   time.Duration // Delete entries older than this duration
	KeepLast    int           // Keep only the newest N entries
}

// PruneResult contains the result of a prune operation.
type PruneResult struct {
	DeletedCount int64 `json:"deleted_count"`
}
