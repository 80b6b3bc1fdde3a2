// Package config loads, defaults and validates the bot configuration.
// Values come from an optional YAML file and from BOT_-prefixed environment
// variables (for example BOT_TELEGRAM_TOKEN); TG_BOT_TOKEN is also accepted
// for the bot token.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Catalogue CatalogueConfig `mapstructure:"catalogue"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Journal   JournalConfig   `mapstructure:"journal"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Labels    LabelsConfig    `mapstructure:"labels"`
	Commands  CommandsConfig  `mapstructure:"commands"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds bot credentials and access control.
// An empty AdminUserIDs list lets every user run admin commands.
// RateLimitAttempts bounds how often a channel send or edit is tried when
// Telegram answers 429 Too Many Requests.
type TelegramConfig struct {
	Token             string  `mapstructure:"token"               validate:"required"`
	AdminUserIDs      []int64 `mapstructure:"admin_user_ids"      validate:"dive,gt=0"`
	RateLimitAttempts uint    `mapstructure:"rate_limit_attempts" validate:"min=1,max=10"`
}

// CatalogueConfig locates the JSON catalogue document.
type CatalogueConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// DatabaseConfig locates the SQLite journal.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// JournalConfig tunes the submission and sync-event journal.
type JournalConfig struct {
	SyncEventRetention time.Duration `mapstructure:"sync_event_retention" validate:"min=1h"`
	RecentLimit        int           `mapstructure:"recent_limit"         validate:"min=1,max=100"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task on a cron schedule (seconds field optional).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds the bot's replies. Fields ending in Fmt are
// fmt format strings.
type MessagesConfig struct {
	Welcome              string `mapstructure:"welcome"                validate:"required"`
	Help                 string `mapstructure:"help"                   validate:"required"`
	AddUsage             string `mapstructure:"add_usage"              validate:"required"`
	CategoryNotFoundFmt  string `mapstructure:"category_not_found_fmt" validate:"required"`
	LinkAddedFmt         string `mapstructure:"link_added_fmt"         validate:"required"`
	ChannelNotConfigured string `mapstructure:"channel_not_configured" validate:"required"`
	RefreshDone          string `mapstructure:"refresh_done"           validate:"required"`
	RefreshPartialFmt    string `mapstructure:"refresh_partial_fmt"    validate:"required"`
	InfoFmt              string `mapstructure:"info_fmt"               validate:"required"`
	ChannelUnset         string `mapstructure:"channel_unset"          validate:"required"`
	URLHintFmt           string `mapstructure:"url_hint_fmt"           validate:"required"`
	Unrecognized         string `mapstructure:"unrecognized"           validate:"required"`
	NotAuthorized        string `mapstructure:"not_authorized"         validate:"required"`
	GeneralError         string `mapstructure:"general_error"          validate:"required"`
}

// LabelsConfig holds the fixed strings embedded in channel messages.
type LabelsConfig struct {
	IndexTitle    string `mapstructure:"index_title"`
	JumpLink      string `mapstructure:"jump_link"`
	LinksNoun     string `mapstructure:"links_noun"`
	EmptyCategory string `mapstructure:"empty_category"`
	ListTitle     string `mapstructure:"list_title"`
	RecentTitle   string `mapstructure:"recent_title"`
	RecentEmpty   string `mapstructure:"recent_empty"`
}

// CommandsConfig holds the descriptions published in the bot's command menu.
type CommandsConfig struct {
	Start   string `mapstructure:"start"`
	Help    string `mapstructure:"help"`
	Add     string `mapstructure:"add"`
	List    string `mapstructure:"list"`
	Refresh string `mapstructure:"refresh"`
	Info    string `mapstructure:"info"`
	Recent  string `mapstructure:"recent"`
}
