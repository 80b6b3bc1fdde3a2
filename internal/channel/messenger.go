// Package channel keeps the channel's index and category messages in step
// with the catalogue document.
package channel

import (
	"context"
	"errors"
)

var (
	// ErrChannelNotConfigured is returned when the document names no channel.
	ErrChannelNotConfigured = errors.New("channel_username is not configured")

	// ErrMessageNotModified is returned by a Messenger when an edit would not
	// change the message. Syncer treats it as success.
	ErrMessageNotModified = errors.New("message is not modified")
)

// SendOptions control how a message is displayed. Text is always HTML.
type SendOptions struct {
	DisableLinkPreview bool
}

// Messenger is the remote messaging API the syncer publishes through.
// chat is a channel @username or a numeric chat id in string form.
type Messenger interface {
	SendMessage(ctx context.Context, chat, text string, opts SendOptions) (int, error)
	EditMessageText(ctx context.Context, chat string, messageID int, text string, opts SendOptions) error
}
