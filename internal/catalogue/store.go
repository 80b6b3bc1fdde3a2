package catalogue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Store serializes access to the catalogue file. Every read and every
// load-mutate-save cycle runs while holding the same lock, so concurrent
// commands cannot lose each other's updates or observe a half-written file.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewStore creates a store backed by the JSON file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		path:   path,
		logger: logger.With("component", "catalogue"),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns a fresh copy of the document.
func (s *Store) Load(ctx context.Context) (*Document, error) {
	var out *Document
	err := s.View(ctx, func(doc *Document) error {
		out = doc
		return nil
	})
	return out, err
}

// View loads the document and passes it to fn under the lock.
// Changes fn makes to the document are not saved.
func (s *Store) View(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := Load(s.path)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load catalogue", "path", s.path, "error", err)
		return err
	}
	return fn(doc)
}

// Update loads the document, applies fn and saves the result when fn
// reports a change, all as one critical section. The document is saved
// even if fn returns an error alongside changed=true, so partial progress
// such as freshly recorded message ids is kept. A failed save returns an
// error wrapping ErrSave, joined with fn's own error.
func (s *Store) Update(ctx context.Context, fn func(doc *Document) (bool, error)) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := Load(s.path)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load catalogue", "path", s.path, "error", err)
		return nil, err
	}

	changed, fnErr := fn(doc)
	if changed {
		if err := Save(s.path, doc); err != nil {
			s.logger.ErrorContext(ctx, "Failed to save catalogue", "path", s.path, "error", err)
			return doc, errors.Join(fmt.Errorf("%w: %w", ErrSave, err), fnErr)
		}
		s.logger.DebugContext(ctx, "Catalogue saved",
			"path", s.path,
			"categories", doc.Categories.Len(),
			"links", doc.TotalLinks())
	}
	return doc, fnErr
}
