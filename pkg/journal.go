// Package pkg provides reusable utilities for covreduct.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// ErrJournalClosed is returned when appending to a closed journal.
var ErrJournalClosed = errors.New("journal closed")

// Journal is an append-only, on-disk record of items of type T. It is safe
// for concurrent use.
type Journal[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Range(fn func(index uint64, item T) error) error
	Close() error
	Remove() error
}

type gobJournal[T any] struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *gob.Encoder
	length  uint64
}

// NewJournal creates an empty journal file in dir. An empty dir selects the
// system temporary directory.
func NewJournal[T any](dir string) (Journal[T], error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			slog.Error("Failed to create journal directory", "path", dir, "error", err)
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	file, err := os.CreateTemp(dir, "journal-*.gob")
	if err != nil {
		slog.Error("Failed to create journal", "dir", dir, "error", err)
		return nil, fmt.Errorf("create journal: %w", err)
	}

	slog.Debug("Created journal", "path", file.Name())

	return &gobJournal[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

func (j *gobJournal[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

func (j *gobJournal[T]) Path() string {
	return j.path
}

func (j *gobJournal[T]) Append(item T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return ErrJournalClosed
	}

	if err := j.encoder.Encode(item); err != nil {
		slog.Error("Failed to append to journal", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("append item %d: %w", j.length, err)
	}

	j.length++

	return nil
}

// Range calls fn for every item in append order and stops at the first error.
func (j *gobJournal[T]) Range(fn func(index uint64, item T) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.path)
	if err != nil {
		slog.Error("Failed to open journal", "path", j.path, "error", err)
		return fmt.Errorf("open journal: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := gob.NewDecoder(file)

	for i := range j.length {
		// gob leaves zero-valued fields untouched, so every item decodes into a fresh value.
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("Failed to read journal", "path", j.path, "index", i, "error", err)
			return fmt.Errorf("read item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close stops further appends. Items stay readable until Remove.
func (j *gobJournal[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}

	err := j.file.Close()
	j.file = nil

	if err != nil {
		slog.Error("Failed to close journal", "path", j.path, "error", err)
		return fmt.Errorf("close journal: %w", err)
	}

	return nil
}

// Remove closes the journal and deletes its file.
func (j *gobJournal[T]) Remove() error {
	if err := j.Close(); err != nil {
		return err
	}

	if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("Failed to remove journal", "path", j.path, "error", err)
		return fmt.Errorf("remove journal: %w", err)
	}

	return nil
}
