package progress

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "progress.db"

// SQLiteStore keeps all records in a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create progress dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, sqliteFileName))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const stmt = `CREATE TABLE IF NOT EXISTS progress (
		identity TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		page INTEGER NOT NULL,
		updated_ts TEXT NOT NULL
	);`
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, path string) (int, bool) {
	var rec record
	row := s.db.QueryRowContext(ctx, `SELECT path, page FROM progress WHERE identity = ?`, Identity(path))
	if err := row.Scan(&rec.File, &rec.Page); err != nil {
		return 0, false
	}
	if !rec.valid(path) {
		return 0, false
	}
	return rec.Page, true
}

func (s *SQLiteStore) Save(ctx context.Context, path string, page int) error {
	if page < 0 {
		return fmt.Errorf("save progress: negative page %d", page)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO progress(identity, path, page, updated_ts)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			path = excluded.path,
			page = excluded.page,
			updated_ts = excluded.updated_ts`,
		Identity(path), path, page, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
