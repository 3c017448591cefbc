// Package cache implements the date-partitioned on-disk news store.
//
// One JSON file per calendar day holds feed slots keyed by insertion
// index; each feed slot holds item slots the same way. Slot indices are
// serialized as strings but ordered as integers, and are never reused.
// The store is a cache, not a system of record: a file that fails to
// parse is discarded, and concurrent writers are not coordinated.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Store owns a directory of per-day cache files. Callers go through
// Writer and Reader; the files themselves are private to this package.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore returns a store rooted at dir. A nil logger discards the
// corruption warnings.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{root: dir, logger: logger}
}

func (s *Store) path(bucket string) string {
	return filepath.Join(s.root, bucket+".json")
}

// load reads one day's file. A missing file yields an empty document.
// A file that fails to parse is deleted and likewise yields an empty
// document; corruption cannot be repaired, only discarded.
func (s *Store) load(bucket string) (fileDoc, error) {
	data, err := os.ReadFile(s.path(bucket))
	if errors.Is(err, os.ErrNotExist) {
		return fileDoc{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache file for %s: %w", bucket, err)
	}

	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("discarding corrupt cache file", "bucket", bucket, "error", err)
		if rmErr := os.Remove(s.path(bucket)); rmErr != nil {
			s.logger.Warn("removing corrupt cache file failed", "bucket", bucket, "error", rmErr)
		}
		return fileDoc{}, nil
	}
	if doc == nil {
		// A file holding literal "null" parses to a nil map.
		return fileDoc{}, nil
	}
	return doc, nil
}

// save serializes the full document and overwrites the day's file.
// The document is marshaled before the file is touched, so a failed
// save leaves the previous content in place.
func (s *Store) save(bucket string, doc fileDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache file for %s: %w", bucket, err)
	}
	if err := os.MkdirAll(s.root, 0750); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(s.path(bucket), data, 0600); err != nil {
		return fmt.Errorf("writing cache file for %s: %w", bucket, err)
	}
	return nil
}

// sortedIndices returns the numeric slot indices of a slot mapping in
// ascending order. Non-numeric keys would only appear in a hand-edited
// file and are ignored.
func sortedIndices[T any](m map[string]T) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		if idx, err := strconv.Atoi(k); err == nil {
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

// nextIndex returns the next free slot index. Indices start at 1 and
// are never reused, so the next index is always one past the maximum.
func nextIndex[T any](m map[string]T) int {
	max := 0
	for k := range m {
		if idx, err := strconv.Atoi(k); err == nil && idx > max {
			max = idx
		}
	}
	return max + 1
}
