// Package store persists price books as JSON files.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kaptinlin/jsonrepair"
	"github.com/use-agent/skinprices/prices"
)

const indent = "  "

// Save writes book to path as an indented JSON object, replacing any
// existing file in one rename. A crash mid-write leaves the previous file
// intact and at most a stray temp file next to it.
func Save(path string, book *prices.Book) error {
	data, err := book.MarshalIndent(indent)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("store: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("store: sync: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("store: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}

// Load reads a book from path. Content that does not decode is run through
// jsonrepair once; files written by older non-atomic writers can end mid-entry.
func Load(path string) (*prices.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read: %w", err)
	}

	book := prices.NewBook()
	decodeErr := book.UnmarshalJSON(data)
	if decodeErr == nil {
		return book, nil
	}

	repaired, err := jsonrepair.JSONRepair(string(data))
	if err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, decodeErr)
	}
	book = prices.NewBook()
	if err := book.UnmarshalJSON([]byte(repaired)); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, decodeErr)
	}

	slog.Warn("price book was damaged and has been repaired in memory",
		"path", path,
		"entries", book.Len(),
		"error", decodeErr,
	)
	return book, nil
}
