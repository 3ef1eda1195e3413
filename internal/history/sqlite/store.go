package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/artpar/kvdraft/internal/history"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store implements history.Store using SQLite.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// New creates a new SQLite-based history store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// NewInMemory creates a new in-memory SQLite store (useful for testing).
func NewInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables and indexes.
func (s *Store) initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS history (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			workspace_id TEXT NOT NULL DEFAULT '',
			method TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			request_type TEXT NOT NULL DEFAULT 'http'
		);

		CREATE INDEX IF NOT EXISTS idx_history_created ON history(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_history_workspace ON history(workspace_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Add records a new entry and returns its ID.
func (s *Store) Add(ctx context.Context, entry history.Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", history.ErrStoreClosed
	}

	if strings.TrimSpace(entry.URL) == "" {
		return "", history.ErrInvalidEntry
	}
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		entry.ID = id.String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.RequestType == "" {
		entry.RequestType = "http"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, created_at, workspace_id, method, url, request_type)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		entry.ID, entry.Timestamp.UnixNano(), entry.WorkspaceID,
		strings.ToUpper(entry.Method), entry.URL, entry.RequestType,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert history entry: %w", err)
	}

	return entry.ID, nil
}

// Get retrieves a single entry by ID.
func (s *Store) Get(ctx context.Context, id string) (history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return history.Entry{}, history.ErrStoreClosed
	}

	if id == "" {
		return history.Entry{}, history.ErrInvalidID
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, workspace_id, method, url, request_type
		FROM history WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Entry{}, history.ErrNotFound
	}
	if err != nil {
		return history.Entry{}, fmt.Errorf("failed to get history entry: %w", err)
	}

	return entry, nil
}

// List retrieves entries matching the query options, newest first.
func (s *Store) List(ctx context.Context, opts history.QueryOptions) ([]history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, history.ErrStoreClosed
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	where, args := buildWhere(opts)
	query := `SELECT id, created_at, workspace_id, method, url, request_type FROM history` +
		where + ` ORDER BY created_at DESC, rowid DESC`
	query, args = paginate(query, args, opts)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// URLs returns distinct URLs, most recently used first.
func (s *Store) URLs(ctx context.Context, opts history.QueryOptions) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, history.ErrStoreClosed
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	where, args := buildWhere(opts)
	query := `SELECT url FROM history` + where +
		` GROUP BY url ORDER BY MAX(created_at) DESC, MAX(rowid) DESC`
	query, args = paginate(query, args, opts)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan history url: %w", err)
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}

// Count returns the number of entries matching the query options.
func (s *Store) Count(ctx context.Context, opts history.QueryOptions) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, history.ErrStoreClosed
	}

	where, args := buildWhere(opts)
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}

	return count, nil
}

// Delete removes an entry by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrStoreClosed
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return history.ErrNotFound
	}

	return nil
}

// Prune removes entries older than OlderThan and then everything beyond the
// newest KeepLast entries.
func (s *Store) Prune(ctx context.Context, opts history.PruneOptions) (history.PruneResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.PruneResult{}, history.ErrStoreClosed
	}

	var result history.PruneResult
	scope, scopeArgs := "", []any{}
	if opts.WorkspaceID != "" {
		scope = " AND workspace_id = ?"
		scopeArgs = append(scopeArgs, opts.WorkspaceID)
	}

	if opts.OlderThan > 0 {
		cutoff := time.Now().Add(-opts.OlderThan).UnixNano()
		args := append([]any{cutoff}, scopeArgs...)
		res, err := s.db.ExecContext(ctx, "DELETE FROM history WHERE created_at < ?"+scope, args...)
		if err != nil {
			return result, fmt.Errorf("failed to prune history: %w", err)
		}
		n, _ := res.RowsAffected()
		result.DeletedCount += n
	}

	if opts.KeepLast > 0 {
		args := append(append([]any{}, scopeArgs...), opts.KeepLast)
		res, err := s.db.ExecContext(ctx, `
			DELETE FROM history WHERE id IN (
				SELECT id FROM history WHERE 1=1`+scope+`
				ORDER BY created_at DESC, rowid DESC LIMIT -1 OFFSET ?
			)
		`, args...)
		if err != nil {
			return result, fmt.Errorf("failed to prune history: %w", err)
		}
		n, _ := res.RowsAffected()
		result.DeletedCount += n
	}

	return result, nil
}

// Clear removes all entries.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, "DELETE FROM history")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

// Close closes the store and releases resources.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// Helper functions

func buildWhere(opts history.QueryOptions) (string, []any) {
	query := " WHERE 1=1"
	var args []any

	if opts.WorkspaceID != "" {
		query += " AND workspace_id = ?"
		args = append(args, opts.WorkspaceID)
	}

	if opts.URLContains != "" {
		query += ` AND url LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(opts.URLContains)+"%")
	}

	if opts.Method != "" {
		query += " AND method = ?"
		args = append(args, strings.ToUpper(opts.Method))
	}

	return query, args
}

func paginate(query string, args []any, opts history.QueryOptions) (string, []any) {
	if opts.PageSize <= 0 {
		return query, args
	}
	query += " LIMIT ? OFFSET ?"
	return query, append(args, opts.PageSize, opts.Offset())
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (history.Entry, error) {
	var entry history.Entry
	var createdAt int64

	err := row.Scan(
		&entry.ID, &createdAt, &entry.WorkspaceID,
		&entry.Method, &entry.URL, &entry.RequestType,
	)
	if err != nil {
		return entry, err
	}
	entry.Timestamp = time.Unix(0, createdAt)

	return entry, nil
}
