package database

import "time"

// Submission records one link added through the bot.
type Submission struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Category string `db:"category"`
	Title    string `db:"title"`
	URL      string `db:"url"`
	Author   string `db:"author"`
	UserID   int64  `db:"user_id"`
	ChatID   int64  `db:"chat_id"`
}

// Sync actions recorded in SyncEvent.Action.
const (
	SyncActionSend = "send"
	SyncActionEdit = "edit"
)

// SyncEvent records the outcome of one send or edit against the channel.
// Target is "index" or "category:<name>".
type SyncEvent struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Target    string `db:"target"`
	MessageID int    `db:"message_id"`
	Action    string `db:"action"`
	Success   bool   `db:"success"`
	Error     string `db:"error"`
}
