package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// SQLitePersister stores the state document in a key/value table, one row
// per well-known key.
type SQLitePersister struct {
	db  *sql.DB
	key string
}

var _ Persister = (*SQLitePersister)(nil)

// NewSQLitePersister creates the backing table if needed and returns a
// persister bound to [StateKey].
func NewSQLitePersister(db *sql.DB) (*SQLitePersister, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create app_state table: %w", err)
	}

	return &SQLitePersister{db: db, key: StateKey}, nil
}

// Load returns the stored document, or (nil, nil) when no row exists.
func (p *SQLitePersister) Load() ([]byte, error) {
	var value string
	err := p.db.QueryRow("SELECT value FROM app_state WHERE key = ?", p.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	return []byte(value), nil
}

// Save upserts the document under the persister's key.
func (p *SQLitePersister) Save(data []byte) error {
	_, err := p.db.Exec(`INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		p.key, string(data))
	if err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// Clear deletes the stored document.
func (p *SQLitePersister) Clear() error {
	if _, err := p.db.Exec("DELETE FROM app_state WHERE key = ?", p.key); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}
