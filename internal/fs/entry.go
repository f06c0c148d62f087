package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDocumentDirMissing is returned when the document directory does not exist.
var ErrDocumentDirMissing = errors.New("document directory does not exist")

// Document is one readable file in the document directory.
type Document struct {
	Name     string
	FullPath string
}

// Library enumerates documents with a given extension in a single directory.
type Library struct {
	Dir       string
	Extension string
}

// NewLibrary returns a library rooted at dir. The directory path is made
// absolute so document identities stay stable across working directories.
func NewLibrary(dir, ext string) (*Library, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve document dir: %w", err)
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Library{Dir: abs, Extension: ext}, nil
}

// List returns the documents in the directory sorted by name. Subdirectories
// and files with other extensions are skipped; dotfiles are listed.
func (l *Library) List() ([]Document, error) {
	info, err := os.Stat(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentDirMissing, l.Dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDocumentDirMissing, l.Dir)
	}

	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("read document dir: %w", err)
	}

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if l.Extension != "" && !strings.HasSuffix(name, l.Extension) {
			continue
		}
		docs = append(docs, Document{Name: name, FullPath: filepath.Join(l.Dir, name)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}
