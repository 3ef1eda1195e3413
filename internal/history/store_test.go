package history

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests for the Store interface are in testing.go and can be run against
// any Store implementation using RunStoreTests.

func TestStoreInterface(t *testing.T) {
	var _ Store = (*mockStore)(nil)
}

// mockStore is a minimal mock for compile-time interface checking.
type mockStore struct{}

func (m *mockStore) Add(ctx context.Context, entry Entry) (string, error)          { return "", nil }
func (m *mockStore) Get(ctx context.Context, id string) (Entry, error)             { return Entry{}, nil }
func (m *mockStore) List(ctx context.Context, opts QueryOptions) ([]Entry, error)  { return nil, nil }
func (m *mockStore) URLs(ctx context.Context, opts QueryOptions) ([]string, error) { return nil, nil }
func (m *mockStore) Count(ctx context.Context, opts QueryOptions) (int64, error)   { return 0, nil }
func (m *mockStore) Delete(ctx context.Context, id string) error                   { return nil }
func (m *mockStore) Prune(ctx context.Context, opts PruneOptions) (PruneResult, error) {
	return PruneResult{}, nil
}
func (m *mockStore) Clear(ctx context.Context) error { return nil }
func (m *mockStore) Close() error                    { return nil }

func TestErrors(t *testing.T) {
	errs := []error{ErrNotFound, ErrInvalidID, ErrInvalidEntry, ErrStoreClosed, ErrInvalidOption}
	seen := make(map[string]bool)
	for _, err := range errs {
		require.Error(t, err)
		assert.False(t, seen[err.Error()], "duplicate message %q", err)
		seen[err.Error()] = true
	}
}

func TestQueryOptions(t *testing.T) {
	t.Run("offset", func(t *testing.T) {
		assert.Equal(t, 0, QueryOptions{}.Offset())
		assert.Equal(t, 0, QueryOptions{Page: 1, PageSize: 20}.Offset())
		assert.Equal(t, 40, QueryOptions{Page: 3, PageSize: 20}.Offset())
		assert.Equal(t, 0, QueryOptions{Page: 3}.Offset(), "no page size means no paging")
	})

	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, QueryOptions{}.Validate())
		assert.ErrorIs(t, QueryOptions{Page: -1}.Validate(), ErrInvalidOption)
		assert.ErrorIs(t, QueryOptions{PageSize: -5}.Validate(), ErrInvalidOption)
	})
}

func TestEntryJSON(t *testing.T) {
	entry := Entry{
		ID:          "e1",
		Timestamp:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		WorkspaceID: "ws",
		Method:      "GET",
		URL:         "https://a.test",
		RequestType: "http",
	}
	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "e1",
		"timestamp": "2026-01-02T03:04:05Z",
		"workspace_id": "ws",
		"method": "GET",
		"url": "https://a.test",
		"request_type": "http"
	}`, string(data))
}
