package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/channelcat/internal/channel"
)

const (
	rateLimitBaseDelay = time.Second
	rateLimitMaxDelay  = time.Minute
)

// Messenger publishes channel messages through the Bot API. It satisfies
// channel.Messenger. Calls rejected with 429 Too Many Requests are retried
// after the delay Telegram asks for.
type Messenger struct {
	bot       *bot.Bot
	logger    *slog.Logger
	attempts  uint
	baseDelay time.Duration
}

var _ channel.Messenger = (*Messenger)(nil)

// NewMessenger wraps a bot instance. attempts below 1 means a single try.
func NewMessenger(b *bot.Bot, logger *slog.Logger, attempts uint) *Messenger {
	if logger == nil {
		logger = slog.Default()
	}
	if attempts == 0 {
		attempts = 1
	}
	return &Messenger{
		bot:       b,
		logger:    logger.With("component", "telegram_messenger"),
		attempts:  attempts,
		baseDelay: rateLimitBaseDelay,
	}
}

// SendMessage posts an HTML message and returns its id.
func (m *Messenger) SendMessage(ctx context.Context, chat, text string, opts channel.SendOptions) (int, error) {
	var msg *models.Message
	err := withRateLimitRetry(ctx, m.logger, m.attempts, m.baseDelay, func() error {
		var err error
		msg, err = m.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:             ChatID(chat),
			Text:               text,
			ParseMode:          models.ParseModeHTML,
			LinkPreviewOptions: linkPreview(opts),
		})
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("send message to %s: %w", chat, err)
	}
	m.logger.DebugContext(ctx, "Sent message", "chat", chat, "message_id", msg.ID)
	return msg.ID, nil
}

// EditMessageText replaces the text of an existing message. An edit that
// would not change anything returns channel.ErrMessageNotModified.
func (m *Messenger) EditMessageText(ctx context.Context, chat string, messageID int, text string, opts channel.SendOptions) error {
	err := withRateLimitRetry(ctx, m.logger, m.attempts, m.baseDelay, func() error {
		_, err := m.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:             ChatID(chat),
			MessageID:          messageID,
			Text:               text,
			ParseMode:          models.ParseModeHTML,
			LinkPreviewOptions: linkPreview(opts),
		})
		return err
	})
	if err != nil {
		if IsNotModified(err) {
			return channel.ErrMessageNotModified
		}
		return fmt.Errorf("edit message %d in %s: %w", messageID, chat, err)
	}
	m.logger.DebugContext(ctx, "Edited message", "chat", chat, "message_id", messageID)
	return nil
}

// withRateLimitRetry runs call up to attempts times, retrying only when
// Telegram reports a rate limit.
func withRateLimitRetry(ctx context.Context, log *slog.Logger, attempts uint, baseDelay time.Duration, call func() error) error {
	return retry.Do(
		call,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.RetryIf(isRateLimited),
		retry.Delay(baseDelay),
		retry.MaxDelay(rateLimitMaxDelay),
		retry.DelayType(rateLimitDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.WarnContext(ctx, "Rate limited by Telegram, retrying", "attempt", n+1, "max_attempts", attempts, "error", err)
		}),
	)
}

func isRateLimited(err error) bool {
	var tooMany *bot.TooManyRequestsError
	return errors.As(err, &tooMany)
}

// rateLimitDelay waits the retry_after Telegram returned, falling back to
// exponential backoff when it is missing.
func rateLimitDelay(n uint, err error, cfg *retry.Config) time.Duration {
	var tooMany *bot.TooManyRequestsError
	if errors.As(err, &tooMany) && tooMany.RetryAfter > 0 {
		return time.Duration(tooMany.RetryAfter) * time.Second
	}
	return retry.BackOffDelay(n, err, cfg)
}

// ChatID converts a chat reference into the form the Bot API expects:
// numeric ids become int64, anything else (an @username) stays a string.
func ChatID(chat string) any {
	if id, err := strconv.ParseInt(strings.TrimSpace(chat), 10, 64); err == nil {
		return id
	}
	return chat
}

// IsNotModified reports whether err is Telegram's refusal of a no-op edit.
func IsNotModified(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "message is not modified")
}

func linkPreview(opts channel.SendOptions) *models.LinkPreviewOptions {
	if !opts.DisableLinkPreview {
		return nil
	}
	return &models.LinkPreviewOptions{IsDisabled: bot.True()}
}
