package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreTests runs the standard store test suite against any Store implementation.
// Use this to verify that a Store implementation correctly implements the interface.
func RunStoreTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("Add", func(t *testing.T) {
		runAddTests(t, newStore)
	})
	t.Run("Get", func(t *testing.T) {
		runGetTests(t, newStore)
	})
	t.Run("List", func(t *testing.T) {
		runListTests(t, newStore)
	})
	t.Run("URLs", func(t *testing.T) {
		runURLsTests(t, newStore)
	})
	t.Run("Delete", func(t *testing.T) {
		runDeleteTests(t, newStore)
	})
	t.Run("Prune", func(t *testing.T) {
		runPruneTests(t, newStore)
	})
	t.Run("Closed", func(t *testing.T) {
		runClosedTests(t, newStore)
	})
}

// seed adds one entry per URL, each a second newer than the previous one.
func seed(t *testing.T, store Store, workspace string, base time.Time, urls ...string) {
	t.Helper()
	for i, url := range urls {
		_, err := store.Add(context.Background(), Entry{
			Timestamp:   base.Add(time.Duration(i) * time.Second),
			WorkspaceID: workspace,
			Method:      "GET",
			URL:         url,
		})
		require.NoError(t, err)
	}
}

func runAddTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("adds entry and returns ID", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		id, err := store.Add(context.Background(), Entry{
			WorkspaceID: "ws-1",
			Method:      "get",
			URL:         "https://api.example.com/users",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		got, err := store.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "GET", got.Method)
		assert.Equal(t, "http", got.RequestType)
		assert.False(t, got.Timestamp.IsZero())
	})

	t.Run("keeps all fields", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		ts := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
		entry := Entry{
			ID:          "fixed-id",
			Timestamp:   ts,
			WorkspaceID: "ws-1",
			Method:      "POST",
			URL:         "wss://stream.example.com/events",
			RequestType: "websocket",
		}

		id, err := store.Add(context.Background(), entry)
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", id)

		got, err := store.Get(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, ts.Equal(got.Timestamp))
		assert.Equal(t, entry.WorkspaceID, got.WorkspaceID)
		assert.Equal(t, entry.URL, got.URL)
		assert.Equal(t, entry.RequestType, got.RequestType)
	})

	t.Run("rejects entry without URL", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		_, err := store.Add(context.Background(), Entry{Method: "GET", URL: "  "})
		assert.ErrorIs(t, err, ErrInvalidEntry)
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		ids := make(map[string]bool)
		for i := 0; i < 10; i++ {
			id, err := store.Add(context.Background(), Entry{URL: "https://api.example.com"})
			require.NoError(t, err)
			assert.False(t, ids[id], "Duplicate ID generated")
			ids[id] = true
		}
	})
}

func runGetTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("returns error for non-existent entry", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		_, err := store.Get(context.Background(), "non-existent-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns error for empty ID", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		_, err := store.Get(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func runListTests(t *testing.T, newStore func() (Store, func())) {
	base := time.Now().Add(-time.Hour)

	t.Run("lists newest first", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		seed(t, store, "ws-1", base, "https://a.test", "https://b.test", "https://c.test")

		entries, err := store.List(context.Background(), QueryOptions{})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "https://c.test", entries[0].URL)
		assert.Equal(t, "https://a.test", entries[2].URL)
	})

	t.Run("same timestamp keeps insertion order", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		for _, url := range []string{"https://1.test", "https://2.test"} {
			_, err := store.Add(context.Background(), Entry{Timestamp: base, URL: url})
			require.NoError(t, err)
		}

		entries, err := store.List(context.Background(), QueryOptions{})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "https://2.test", entries[0].URL)
	})

	t.Run("filters by workspace", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		seed(t, store, "ws-1", base, "https://a.test", "https://b.test")
		seed(t, store, "ws-2", base, "https://c.test")

		entries, err := store.List(context.Background(), QueryOptions{WorkspaceID: "ws-2"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "https://c.test", entries[0].URL)

		count, err := store.Count(context.Background(), QueryOptions{WorkspaceID: "ws-1"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("filters by URL substring case-insensitively", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		seed(t, store, "ws-1", base,
			"https://api.example.com/Users",
			"https://api.example.com/orders",
			"https://other.test/users/1",
		)

		entries, err := store.List(context.Background(), QueryOptions{URLContains: "users"})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("URL filter treats wildcards literally", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		seed(t, store, "ws-1", base, "https://a.test/100%", "https://a.test/1000", "https://a.test/a_b")

		entries, err := store.List(context.Background(), QueryOptions{URLContains: "0%"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "https://a.test/100%", entries[0].URL)

		entries, err = store.List(context.Background(), QueryOptions{URLContains: "_"})
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("filters by method", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		for _, method := range []string{"GET", "POST", "GET"} {
			_, err := store.Add(context.Background(), Entry{Method: method, URL: "https://a.test"})
			require.NoError(t, err)
		}

		count, err := store.Count(context.Background(), QueryOptions{Method: "get"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("applies pagination", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		urls := make([]string, 10)
		for i := range urls {
			urls[i] = fmt.Sprintf("https://a.test/%d", i)
		}
		seed(t, store, "ws-1", base, urls...)

		page1, err := store.List(context.Background(), QueryOptions{Page: 1, PageSize: 4})
		require.NoError(t, err)
		require.Len(t, page1, 4)
		assert.Equal(t, "https://a.test/9", page1[0].URL)

		page3, err := store.List(context.Background(), QueryOptions{Page: 3, PageSize: 4})
		require.NoError(t, err)
		require.Len(t, page3, 2)
		assert.Equal(t, "https://a.test/0", page3[1].URL)

		page4, err := store.List(context.Background(), QueryOptions{Page: 4, PageSize: 4})
		require.NoError(t, err)
		assert.Empty(t, page4)
	})

	t.Run("rejects negative pagination", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		_, err := store.List(context.Background(), QueryOptions{PageSize: -1})
		assert.ErrorIs(t, err, ErrInvalidOption)
	})
}

func runURLsTests(t *testing.T, newStore func() (Store, func())) {
	base := time.Now().Add(-time.Hour)

	t.Run("distinct and most recent first", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		seed(t, store, "ws-1", base,
			"https://a.test",
			"https://b.test",
			"https://a.test",
			"https://c.test",
		)

		urls, err := store.URLs(context.Background(), QueryOptions{WorkspaceID: "ws-1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://c.test", "https://a.test", "https://b.test"}, urls)
	})

	t.Run("scoped to workspace and paginated", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		seed(t, store, "ws-1", base, "https://1.test", "https://2.test", "https://3.test")
		seed(t, store, "ws-2", base, "https://other.test")

		urls, err := store.URLs(context.Background(), QueryOptions{WorkspaceID: "ws-1", Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://1.test"}, urls)
	})

	t.Run("empty store", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		urls, err := store.URLs(context.Background(), QueryOptions{WorkspaceID: "ws-1"})
		require.NoError(t, err)
		assert.Empty(t, urls)
	})
}

func runDeleteTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("deletes existing entry", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		id, err := store.Add(context.Background(), Entry{URL: "https://a.test"})
		require.NoError(t, err)

		require.NoError(t, store.Delete(context.Background(), id))

		_, err = store.Get(context.Background(), id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns error for non-existent entry", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		assert.ErrorIs(t, store.Delete(context.Background(), "missing"), ErrNotFound)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		seed(t, store, "ws-1", time.Now(), "https://a.test", "https://b.test")
		require.NoError(t, store.Clear(context.Background()))

		count, err := store.Count(context.Background(), QueryOptions{})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func runPruneTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("keeps last N", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		seed(t, store, "ws-1", time.Now().Add(-time.Minute),
			"https://1.test", "https://2.test", "https://3.test", "https://4.test")

		result, err := store.Prune(context.Background(), PruneOptions{KeepLast: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.DeletedCount)

		urls, err := store.URLs(context.Background(), QueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://4.test", "https://3.test"}, urls)
	})

	t.Run("older than", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		seed(t, store, "ws-1", time.Now().Add(-48*time.Hour), "https://old.test")
		seed(t, store, "ws-1", time.Now(), "https://new.test")

		result, err := store.Prune(context.Background(), PruneOptions{OlderThan: 24 * time.Hour})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.DeletedCount)
	})

	t.Run("scoped to workspace", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		seed(t, store, "ws-1", time.Now(), "https://1.test", "https://2.test")
		seed(t, store, "ws-2", time.Now(), "https://3.test", "https://4.test")

		_, err := store.Prune(context.Background(), PruneOptions{WorkspaceID: "ws-1", KeepLast: 1})
		require.NoError(t, err)

		count, err := store.Count(context.Background(), QueryOptions{WorkspaceID: "ws-2"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = store.Count(context.Background(), QueryOptions{WorkspaceID: "ws-1"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func runClosedTests(t *testing.T, newStore func() (Store, func())) {
	store, cleanup := newStore()
	defer cleanup()

	require.NoError(t, store.Close())
	assert.NoError(t, store.Close(), "closing twice is a no-op")

	_, err := store.Add(context.Background(), Entry{URL: "https://a.test"})
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = store.List(context.Background(), QueryOptions{})
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = store.URLs(context.Background(), QueryOptions{})
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, store.Clear(context.Background()), ErrStoreClosed)
}
