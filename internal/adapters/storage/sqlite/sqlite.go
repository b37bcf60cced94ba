// Package sqlite persists quotes, preferences and the conflict audit log in
// a single SQLite file using the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jsamuelsen/quotesync/internal/domain"
)

// quotesKey is the kv row holding the whole collection as a JSON array.
const quotesKey = "quotes"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS conflict_log (
	seq             INTEGER PRIMARY KEY AUTOINCREMENT,
	id              TEXT NOT NULL UNIQUE,
	local_text      TEXT NOT NULL,
	local_category  TEXT NOT NULL,
	server_text     TEXT NOT NULL,
	server_category TEXT NOT NULL,
	resolution      TEXT NOT NULL,
	detected_at     INTEGER NOT NULL
);`

// Store is a SQLite-backed store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA busy_timeout=5000;", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("initializing database: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// LoadAll implements ports.QuoteStore.
func (s *Store) LoadAll(ctx context.Context) ([]domain.Quote, error) {
	raw, err := s.get(ctx, quotesKey)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.Quote{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading quotes: %w", err)
	}

	var quotes []domain.Quote
	if err := json.Unmarshal([]byte(raw), &quotes); err != nil {
		return nil, fmt.Errorf("decoding stored quotes: %w", err)
	}

	if quotes == nil {
		quotes = []domain.Quote{}
	}

	return quotes, nil
}

// SaveAll implements ports.QuoteStore.
func (s *Store) SaveAll(ctx context.Context, quotes []domain.Quote) error {
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	raw, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("encoding quotes: %w", err)
	}

	if err := s.put(ctx, quotesKey, string(raw)); err != nil {
		return fmt.Errorf("saving quotes: %w", err)
	}

	return nil
}

// GetPreference implements ports.PreferenceStore.
func (s *Store) GetPreference(ctx context.Context, key string) (string, error) {
	v, err := s.get(ctx, prefKey(key))
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.NewNotFoundError("preference", key)
	}

	if err != nil {
		return "", fmt.Errorf("reading preference %q: %w", key, err)
	}

	return v, nil
}

// SetPreference implements ports.PreferenceStore.
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	if err := s.put(ctx, prefKey(key), value); err != nil {
		return fmt.Errorf("writing preference %q: %w", key, err)
	}

	return nil
}

// AppendConflicts implements ports.ConflictLog. Records without an ID get one.
func (s *Store) AppendConflicts(ctx context.Context, records []domain.ConflictRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO conflict_log
		(id, local_text, local_category, server_text, server_category, resolution, detected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}

		_, err := stmt.ExecContext(ctx, id,
			r.Local.Text, r.Local.Category,
			r.Server.Text, r.Server.Category,
			r.Resolution, r.DetectedAt.UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("inserting conflict %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing conflicts: %w", err)
	}

	return nil
}

// RecentConflicts implements ports.ConflictLog.
func (s *Store) RecentConflicts(ctx context.Context, limit int) ([]domain.ConflictRecord, error) {
	if limit <= 0 {
		return []domain.ConflictRecord{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, local_text, local_category, server_text, server_category, resolution, detected_at
		FROM conflict_log ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conflicts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.ConflictRecord, 0, limit)

	for rows.Next() {
		var (
			r  domain.ConflictRecord
			ns int64
		)

		if err := rows.Scan(&r.ID, &r.Local.Text, &r.Local.Category,
			&r.Server.Text, &r.Server.Category, &r.Resolution, &ns); err != nil {
			return nil, fmt.Errorf("scanning conflict: %w", err)
		}

		r.DetectedAt = time.Unix(0, ns).UTC()
		out = append(out, r)
	}

	return out, rows.Err()
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "sqlite" }

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var v string

	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)

	return v, err
}

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)

	return err
}

func prefKey(key string) string {
	return "pref:" + key
}
