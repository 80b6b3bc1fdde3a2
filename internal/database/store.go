package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the journal operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveSubmission inserts a submission and sets its ID.
	SaveSubmission(ctx context.Context, sub *Submission) error

	// GetRecentSubmissions returns up to limit submissions, newest first.
	GetRecentSubmissions(ctx context.Context, limit int) ([]Submission, error)

	// SaveSyncEvent inserts a sync event and sets its ID.
	SaveSyncEvent(ctx context.Context, event *SyncEvent) error

	// DeleteSyncEventsBefore removes sync events created before cutoff and
	// returns how many were deleted.
	DeleteSyncEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// CompactJournal rebuilds the database file and refreshes planner
	// statistics, returning how many bytes the file shrank by.
	CompactJournal(ctx context.Context) (int64, error)
}

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) SaveSubmission(ctx context.Context, sub *Submission) error {
	if sub == nil {
		return errors.New("cannot save nil submission")
	}
	if sub.Category == "" {
		return errors.New("submission must have a category")
	}
	if sub.URL == "" {
		return errors.New("submission must have a url")
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO submissions (created_at, category, title, url, author, user_id, chat_id)
        VALUES (:created_at, :category, :title, :url, :author, :user_id, :chat_id);
    `
	result, err := s.db.NamedExecContext(ctx, query, sub)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving submission", "category", sub.Category, "url", sub.URL, "error", err)
		return fmt.Errorf("failed to save submission (category %q): %w", sub.Category, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		//nolint:gosec // ids are positive
		sub.ID = uint(id)
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving submission", "error", err)
	}

	s.logger.DebugContext(ctx, "Submission saved", "id", sub.ID, "category", sub.Category)
	return nil
}

func (s *sqlxStore) GetRecentSubmissions(ctx context.Context, limit int) ([]Submission, error) {
	switch {
	case limit <= 0:
		limit = defaultRecentLimit
	case limit > maxRecentLimit:
		limit = maxRecentLimit
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var subs []Submission
	query := `
        SELECT id, created_at, category, title, url, author, user_id, chat_id
        FROM submissions
        ORDER BY created_at DESC, id DESC
        LIMIT ?;
    `
	if err := s.db.SelectContext(ctx, &subs, query, limit); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching submissions", "error", err)
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Error fetching recent submissions", "error", err)
		return nil, fmt.Errorf("failed to get recent submissions: %w", err)
	}

	if subs == nil {
		subs = []Submission{}
	}
	return subs, nil
}

func (s *sqlxStore) SaveSyncEvent(ctx context.Context, event *SyncEvent) error {
	if event == nil {
		return errors.New("cannot save nil sync event")
	}
	if event.Target == "" || event.Action == "" {
		return errors.New("sync event must have a target and an action")
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO sync_events (created_at, target, message_id, action, success, error)
        VALUES (:created_at, :target, :message_id, :action, :success, :error);
    `
	result, err := s.db.NamedExecContext(ctx, query, event)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving sync event", "target", event.Target, "error", err)
		return fmt.Errorf("failed to save sync event (target %q): %w", event.Target, err)
	}
	if id, err := result.LastInsertId(); err == nil {
		//nolint:gosec // ids are positive
		event.ID = uint(id)
	}
	return nil
}

func (s *sqlxStore) DeleteSyncEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sync_events WHERE created_at < ?;`, cutoff.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error pruning sync events", "cutoff", cutoff, "error", err)
		return 0, fmt.Errorf("failed to delete sync events: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sync events: %w", err)
	}
	s.logger.DebugContext(ctx, "Pruned sync events", "deleted", deleted, "cutoff", cutoff)
	return deleted, nil
}

// CompactJournal runs VACUUM, which SQLite requires outside a transaction,
// then PRAGMA optimize. Pruned sync events only give space back to the
// filesystem through VACUUM.
func (s *sqlxStore) CompactJournal(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	before, err := s.fileSize(ctx)
	if err != nil {
		return 0, err
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return 0, fmt.Errorf("failed to vacuum journal: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize"); err != nil {
		s.logger.WarnContext(ctx, "PRAGMA optimize failed", "error", err)
	}
	after, err := s.fileSize(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.DebugContext(ctx, "Journal compacted", "size_before", before, "size_after", after)
	return before - after, nil
}

func (s *sqlxStore) fileSize(ctx context.Context) (int64, error) {
	var size int64
	err := s.db.GetContext(ctx, &size, "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
	if err != nil {
		return 0, fmt.Errorf("failed to read journal size: %w", err)
	}
	return size, nil
}
