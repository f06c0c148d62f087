// Package progress persists the reading position of each document, keyed by
// a hash of the document's absolute path.
package progress

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Store loads and saves page positions. Load never fails outward: a missing,
// unreadable or foreign record reports ok=false.
type Store interface {
	Load(ctx context.Context, path string) (page int, ok bool)
	Save(ctx context.Context, path string, page int) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Identity derives the stable record key for an absolute document path. The
// path text is hashed, not the file contents, so renaming a document starts
// it over.
func Identity(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(dir), nil
	case BackendSQLite:
		return NewSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("unknown progress store %q", backend)
	}
}

type record struct {
	File string `json:"file"`
	Page int    `json:"page"`
}

// valid reports whether rec belongs to path and carries a usable page.
func (rec record) valid(path string) bool {
	return rec.File == path && rec.Page >= 0
}
