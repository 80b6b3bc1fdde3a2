package database_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/edgard/channelcat/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })
	return database.NewStore(db, nil)
}

func TestStore_Submissions(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, url := range []string{"https://a.example", "https://b.example", "https://c.example"} {
		sub := &database.Submission{
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Category:  "Videos",
			URL:       url,
			Author:    "ana",
			UserID:    7,
			ChatID:    7,
		}
		if err := store.SaveSubmission(ctx, sub); err != nil {
			t.Fatalf("SaveSubmission(%s): %v", url, err)
		}
		if sub.ID == 0 {
			t.Errorf("SaveSubmission(%s) did not set ID", url)
		}
	}

	got, err := store.GetRecentSubmissions(ctx, 2)
	if err != nil {
		t.Fatalf("GetRecentSubmissions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d submissions, want 2", len(got))
	}
	if got[0].URL != "https://c.example" || got[1].URL != "https://b.example" {
		t.Errorf("order = [%s %s], want newest first", got[0].URL, got[1].URL)
	}
	if !got[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, base.Add(2*time.Hour))
	}
}

func TestStore_RecentSubmissionsEmpty(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	got, err := store.GetRecentSubmissions(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetRecentSubmissions: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty non-nil slice", got)
	}
}

func TestStore_SaveSubmissionValidation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		sub  *database.Submission
	}{
		{name: "nil", sub: nil},
		{name: "no category", sub: &database.Submission{URL: "https://a.example"}},
		{name: "no url", sub: &database.Submission{Category: "Videos"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SaveSubmission(ctx, tt.sub); err == nil {
				t.Error("SaveSubmission succeeded, want error")
			}
		})
	}
}

func TestStore_SyncEventsPrune(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	events := []*database.SyncEvent{
		{CreatedAt: now.Add(-72 * time.Hour), Target: "index", MessageID: 1, Action: database.SyncActionEdit, Success: true},
		{CreatedAt: now.Add(-48 * time.Hour), Target: "category:Videos", MessageID: 2, Action: database.SyncActionEdit, Success: false, Error: "Bad Request"},
		{CreatedAt: now.Add(-1 * time.Hour), Target: "index", MessageID: 1, Action: database.SyncActionSend, Success: true},
	}
	for _, ev := range events {
		if err := store.SaveSyncEvent(ctx, ev); err != nil {
			t.Fatalf("SaveSyncEvent: %v", err)
		}
	}

	deleted, err := store.DeleteSyncEventsBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteSyncEventsBefore: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	if err := store.SaveSyncEvent(ctx, &database.SyncEvent{Target: "index"}); err == nil {
		t.Error("SaveSyncEvent without action succeeded, want error")
	}
}

func TestStore_CompactJournal(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	for i := range 200 {
		event := &database.SyncEvent{
			Target:    "index",
			MessageID: i,
			Action:    database.SyncActionEdit,
			Error:     strings.Repeat("x", 512),
		}
		if err := store.SaveSyncEvent(ctx, event); err != nil {
			t.Fatalf("SaveSyncEvent: %v", err)
		}
	}
	if _, err := store.DeleteSyncEventsBefore(ctx, time.Now().UTC().Add(time.Hour)); err != nil {
		t.Fatalf("DeleteSyncEventsBefore: %v", err)
	}

	reclaimed, err := store.CompactJournal(ctx)
	if err != nil {
		t.Fatalf("CompactJournal: %v", err)
	}
	if reclaimed <= 0 {
		t.Errorf("reclaimed = %d bytes, want > 0 after pruning", reclaimed)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := store.CompactJournal(cancelled); err == nil {
		t.Error("CompactJournal with cancelled context succeeded, want error")
	}
}

func TestNewDB_CreatesParentDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "var", "lib", "channelcat")
	db, err := database.NewDB("file:" + filepath.Join(dir, "journal.db") + "?_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	if _, err := os.Stat(filepath.Join(dir, "journal.db")); err != nil {
		t.Errorf("journal file not created: %v", err)
	}
}

func TestExtractDBNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "storage.db", want: "storage.db"},
		{input: "file:storage.db", want: "storage.db"},
		{input: "file:storage.db?_pragma=busy_timeout(5000)", want: "storage.db"},
		{input: "file:my%20journal.db", want: "my journal.db"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := database.ExtractDBNameFromPath(tt.input); got != tt.want {
				t.Errorf("ExtractDBNameFromPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
