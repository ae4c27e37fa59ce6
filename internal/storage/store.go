// Package storage persists one record collection per JSON file. Every read
// loads the whole file and every mutation rewrites it. There is no locking:
// concurrent load-mutate-save sequences race and the last save wins. That
// lost-update window is an accepted property of this single-admin tool, not
// something this package tries to hide.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/emmeril/assets/pkg/apperrors"
)

// Store reads and writes the full record list for a single entity type.
type Store[T any] struct {
	path  string
	valid func(T) bool
	log   *zap.Logger
}

// New binds a store to a file path and a per-record validity predicate.
func New[T any](path string, valid func(T) bool, log *zap.Logger) *Store[T] {
	return &Store[T]{path: path, valid: valid, log: log}
}

// Path returns the backing file path.
func (s *Store[T]) Path() string { return s.path }

// Load reads the whole collection. A missing or blank file yields an empty
// list. Records failing the validity predicate are dropped with a warning.
// A non-empty file that does not parse as a JSON array is a corrupt store.
func (s *Store[T]) Load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, &apperrors.StorageCorruptError{Path: s.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &apperrors.StorageCorruptError{Path: s.path, Err: err}
	}

	records := make([]T, 0, len(raw))
	for _, item := range raw {
		var record T
		if err := json.Unmarshal(item, &record); err != nil || !s.valid(record) {
			s.log.Warn("dropping invalid record",
				zap.String("file", s.path),
				zap.ByteString("record", item),
			)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// Save serializes the full list and overwrites the file in one write,
// creating parent directories when missing.
func (s *Store[T]) Save(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &apperrors.StorageWriteError{Path: s.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &apperrors.StorageWriteError{Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &apperrors.StorageWriteError{Path: s.path, Err: err}
	}
	return nil
}

// Normalize loads the collection through the validity predicate and writes
// the surviving records back, pruning invalid rows. Run at startup, matching
// the load-then-save pass the server performs on boot.
func (s *Store[T]) Normalize() error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(records)
}
