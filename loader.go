package wealthtrack

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultBookFile is the book location used when no flag or environment
// variable says otherwise.
const DefaultBookFile = "wealthtrack.json"

// Load reads the book at path. A missing file is not an error: it yields an
// empty book, the state of a first run.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open book %s: %w", path, err)
	}
	defer f.Close()

	b, err := DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read book %s: %w", path, err)
	}
	return b, nil
}

// Save writes the whole book to path, creating parent directories as needed.
// The file is encoded fully in memory first so a marshaling error never
// truncates the previous book.
func Save(path string, b *Book) error {
	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		return fmt.Errorf("cannot encode book: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create book directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot write book %s: %w", path, err)
	}
	return nil
}
