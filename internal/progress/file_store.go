package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const recordSuffix = ".json"

// FileStore keeps one JSON record per document identity in a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// RecordPath returns where the record for path is stored.
func (s *FileStore) RecordPath(path string) string {
	return filepath.Join(s.dir, Identity(path)+recordSuffix)
}

func (s *FileStore) Load(_ context.Context, path string) (int, bool) {
	data, err := os.ReadFile(s.RecordPath(path))
	if err != nil {
		return 0, false
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, false
	}
	if !rec.valid(path) {
		return 0, false
	}
	return rec.Page, true
}

// Save writes the record to a temporary file in the same directory and
// renames it over the previous record.
func (s *FileStore) Save(_ context.Context, path string, page int) error {
	if page < 0 {
		return fmt.Errorf("save progress: negative page %d", page)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}
	data, err := json.Marshal(record{File: path, Page: page})
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".progress-*")
	if err != nil {
		return fmt.Errorf("create progress temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close progress: %w", err)
	}
	if err := os.Rename(tmpName, s.RecordPath(path)); err != nil {
		cleanup()
		return fmt.Errorf("replace progress: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
