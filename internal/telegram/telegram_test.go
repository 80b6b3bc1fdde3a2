package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/channelcat/internal/channel"
)

func TestChatID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want any
	}{
		{in: "@canal", want: "@canal"},
		{in: "-1001234567890", want: int64(-1001234567890)},
		{in: "42", want: int64(42)},
		{in: "canal", want: "canal"},
	}

	for _, tt := range tests {
		if got := ChatID(tt.in); got != tt.want {
			t.Errorf("ChatID(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}

func TestIsNotModified(t *testing.T) {
	t.Parallel()

	notModified := fmt.Errorf("bad request, Bad Request: message is not modified: specified new message content and reply markup are exactly the same")
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "not modified", err: notModified, want: true},
		{name: "wrapped", err: fmt.Errorf("edit: %w", notModified), want: true},
		{name: "other", err: errors.New("Bad Request: message to edit not found"), want: false},
	}

	for _, tt := range tests {
		if got := IsNotModified(tt.err); got != tt.want {
			t.Errorf("%s: IsNotModified = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLinkPreview(t *testing.T) {
	t.Parallel()

	if got := linkPreview(channel.SendOptions{}); got != nil {
		t.Errorf("linkPreview(enabled) = %+v, want nil", got)
	}
	got := linkPreview(channel.SendOptions{DisableLinkPreview: true})
	if got == nil || got.IsDisabled == nil || !*got.IsDisabled {
		t.Errorf("linkPreview(disabled) = %+v, want IsDisabled", got)
	}
}

func TestApplyMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) bot.Middleware {
		return func(next bot.HandlerFunc) bot.HandlerFunc {
			return func(ctx context.Context, b *bot.Bot, update *models.Update) {
				order = append(order, name)
				next(ctx, b, update)
			}
		}
	}
	h := applyMiddleware(func(context.Context, *bot.Bot, *models.Update) {
		order = append(order, "handler")
	}, []bot.Middleware{mw("outer"), mw("inner")})

	h(context.Background(), nil, &models.Update{})

	want := []string{"outer", "inner", "handler"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestTokenPrefix(t *testing.T) {
	t.Parallel()

	if got := tokenPrefix("123456789:ABC"); got != "12345678..." {
		t.Errorf("tokenPrefix = %q", got)
	}
	if got := tokenPrefix("short"); got != "..." {
		t.Errorf("tokenPrefix(short) = %q", got)
	}
}

func TestWithRateLimitRetry(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rateLimited := &bot.TooManyRequestsError{Message: "Too Many Requests: retry later"}

	tests := []struct {
		name      string
		results   []error
		wantCalls int
		wantErr   error
	}{
		{name: "success", results: []error{nil}, wantCalls: 1},
		{name: "recovers after rate limit", results: []error{rateLimited, nil}, wantCalls: 2},
		{name: "gives up after attempts", results: []error{rateLimited, rateLimited, rateLimited}, wantCalls: 3, wantErr: rateLimited},
		{name: "other errors are not retried", results: []error{errNotFound, nil}, wantCalls: 1, wantErr: errNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			err := withRateLimitRetry(context.Background(), log, 3, time.Millisecond, func() error {
				err := tt.results[calls]
				calls++
				return err
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

var errNotFound = errors.New("Bad Request: message to edit not found")

func TestRateLimitDelay(t *testing.T) {
	t.Parallel()

	cfg := &retry.Config{}
	retry.Delay(time.Millisecond)(cfg)

	if got := rateLimitDelay(0, &bot.TooManyRequestsError{RetryAfter: 7}, cfg); got != 7*time.Second {
		t.Errorf("delay with retry_after = %v, want 7s", got)
	}
	if got := rateLimitDelay(2, errNotFound, cfg); got != 4*time.Millisecond {
		t.Errorf("backoff delay = %v, want 4ms", got)
	}
}
