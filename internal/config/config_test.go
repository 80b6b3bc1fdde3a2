package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "123:abc")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("Token = %q, want value from TG_BOT_TOKEN", cfg.Telegram.Token)
	}
	if cfg.Catalogue.Path != DefaultCataloguePath || cfg.Database.Path != DefaultDBPath {
		t.Errorf("paths = %q, %q", cfg.Catalogue.Path, cfg.Database.Path)
	}
	if cfg.Journal.SyncEventRetention != DefaultSyncEventRetention || cfg.Journal.RecentLimit != DefaultRecentLimit {
		t.Errorf("journal = %+v", cfg.Journal)
	}
	if diff := cmp.Diff(DefaultMessages, cfg.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultTasks, cfg.Scheduler.Tasks); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
	if cfg.Telegram.RateLimitAttempts != DefaultRateLimitAttempts {
		t.Errorf("RateLimitAttempts = %d, want %d", cfg.Telegram.RateLimitAttempts, DefaultRateLimitAttempts)
	}
	if len(cfg.Telegram.AdminUserIDs) != 0 {
		t.Errorf("AdminUserIDs = %v, want empty", cfg.Telegram.AdminUserIDs)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "")
	path := writeConfig(t, `
telegram:
  token: "from-file"
  admin_user_ids: [42, 7]
catalogue:
  path: /srv/links.json
journal:
  sync_event_retention: 48h
scheduler:
  tasks:
    channel_sync:
      enabled: true
messages:
  refresh_done: "Done"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Telegram.Token != "from-file" {
		t.Errorf("Token = %q", cfg.Telegram.Token)
	}
	if diff := cmp.Diff([]int64{42, 7}, cfg.Telegram.AdminUserIDs); diff != "" {
		t.Errorf("admins mismatch (-want +got):\n%s", diff)
	}
	if cfg.Catalogue.Path != "/srv/links.json" {
		t.Errorf("Catalogue.Path = %q", cfg.Catalogue.Path)
	}
	if cfg.Journal.SyncEventRetention != 48*time.Hour {
		t.Errorf("SyncEventRetention = %v", cfg.Journal.SyncEventRetention)
	}
	sync := cfg.Scheduler.Tasks["channel_sync"]
	if !sync.Enabled || sync.Schedule != DefaultTasks["channel_sync"].Schedule {
		t.Errorf("channel_sync = %+v, want enabled with default schedule", sync)
	}
	if cfg.Messages.RefreshDone != "Done" || cfg.Messages.Welcome != DefaultMessages.Welcome {
		t.Errorf("messages not merged with defaults: %+v", cfg.Messages)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "")
	t.Setenv("BOT_TELEGRAM_TOKEN", "from-env")
	t.Setenv("BOT_LOGGER_LEVEL", "debug")
	path := writeConfig(t, "telegram:\n  token: from-file\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Telegram.Token != "from-env" {
		t.Errorf("Token = %q, want from-env", cfg.Telegram.Token)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logger.Level)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing token", body: "logger:\n  level: info\n"},
		{name: "bad level", body: "telegram:\n  token: x\nlogger:\n  level: loud\n"},
		{name: "recent limit too high", body: "telegram:\n  token: x\njournal:\n  recent_limit: 500\n"},
		{name: "zero rate limit attempts", body: "telegram:\n  token: x\n  rate_limit_attempts: 0\n"},
		{name: "negative admin id", body: "telegram:\n  token: x\n  admin_user_ids: [-1]\n"},
		{name: "enabled task without schedule", body: "telegram:\n  token: x\nscheduler:\n  tasks:\n    extra:\n      enabled: true\n"},
		{name: "malformed yaml", body: "telegram: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TG_BOT_TOKEN", "")
			t.Setenv("BOT_TELEGRAM_TOKEN", "")

			_, err := LoadConfig(writeConfig(t, tt.body))
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("LoadConfig error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	t.Parallel()

	open := &Config{}
	if !open.IsAdmin(1) {
		t.Error("empty admin list should allow everyone")
	}

	restricted := &Config{Telegram: TelegramConfig{AdminUserIDs: []int64{10, 20}}}
	tests := []struct {
		userID int64
		want   bool
	}{
		{10, true},
		{20, true},
		{30, false},
		{0, false},
	}
	for _, tt := range tests {
		if got := restricted.IsAdmin(tt.userID); got != tt.want {
			t.Errorf("IsAdmin(%d) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}
