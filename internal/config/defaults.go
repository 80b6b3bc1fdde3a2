package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration.
const (
	DefaultLogLevel = "info"

	DefaultRateLimitAttempts = 3

	DefaultCataloguePath = "data.json"
	DefaultDBPath        = "storage.db"

	DefaultSyncEventRetention = 30 * 24 * time.Hour
	DefaultRecentLimit        = 10
)

// DefaultTasks are the scheduled tasks known to the bot.
var DefaultTasks = map[string]TaskConfig{
	"channel_sync":        {Enabled: false, Schedule: "0 0 */6 * * *"},
	"sync_events_cleanup": {Enabled: true, Schedule: "0 30 3 * * *"},
	"sql_maintenance":     {Enabled: true, Schedule: "0 0 4 * * 0"},
}

// DefaultMessages are the Spanish replies used by the channel's operators.
var DefaultMessages = MessagesConfig{
	Welcome: "Hola — soy el bot admin del canal. Usa /add <Categoría> <Título> <URL> para agregar recursos.\n" +
		"Ejemplo:\n/add Diseño Cómo vectorizar una imagen https://example.com",
	Help: "Comandos:\n" +
		"/add <Categoría> <Título opcional> <URL> — agrega un enlace\n" +
		"/list — categorías disponibles\n" +
		"/info — resumen del canal\n" +
		"/recent — últimos enlaces agregados\n" +
		"/refresh — regenera los mensajes del canal",
	AddUsage: "Uso inválido. Formato correcto:\n/add <Categoría> <Título opcional> <URL>\n" +
		"Ejemplo:\n/add Diseño Vectorizar imagen https://example.com",
	CategoryNotFoundFmt:  "Categoría '%s' no encontrada. Usa /list para ver categorías disponibles.",
	LinkAddedFmt:         "Enlace agregado a <b>%s</b> ✅",
	ChannelNotConfigured: "channel_username no está configurado en data.json. Edita el archivo y pon el @username del canal.",
	RefreshDone:          "Canal regenerado ✅",
	RefreshPartialFmt:    "Canal regenerado con %d errores ⚠️ Revisa los registros.",
	InfoFmt:              "Canal: %s\nCategorías: %d\nEnlaces totales: %d",
	ChannelUnset:         "No configurado (usa data.json)",
	URLHintFmt:           "Si quieres agregar este enlace, usa:\n/add <Categoría> <Título opcional> <URL>\nEjemplo: /add Videos Video útil %s",
	Unrecognized:         "Comando no reconocido. Usa /add para agregar enlaces o /list para ver categorías.",
	NotAuthorized:        "🚫 No tienes permiso para usar este comando.",
	GeneralError:         "❌ Ocurrió un error. Inténtalo de nuevo más tarde.",
}

// DefaultCommands are the command menu descriptions.
var DefaultCommands = CommandsConfig{
	Start:   "Presentación y ejemplo de uso",
	Help:    "Lista de comandos",
	Add:     "Agregar un enlace: /add <Categoría> <Título> <URL>",
	List:    "Ver categorías disponibles",
	Refresh: "Regenerar los mensajes del canal",
	Info:    "Resumen del canal",
	Recent:  "Últimos enlaces agregados",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)

	v.SetDefault("telegram.admin_user_ids", []int64{})
	v.SetDefault("telegram.rate_limit_attempts", DefaultRateLimitAttempts)

	v.SetDefault("catalogue.path", DefaultCataloguePath)
	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("journal.sync_event_retention", DefaultSyncEventRetention)
	v.SetDefault("journal.recent_limit", DefaultRecentLimit)

	for name, task := range DefaultTasks {
		v.SetDefault("scheduler.tasks."+name+".enabled", task.Enabled)
		v.SetDefault("scheduler.tasks."+name+".schedule", task.Schedule)
	}

	m := DefaultMessages
	v.SetDefault("messages.welcome", m.Welcome)
	v.SetDefault("messages.help", m.Help)
	v.SetDefault("messages.add_usage", m.AddUsage)
	v.SetDefault("messages.category_not_found_fmt", m.CategoryNotFoundFmt)
	v.SetDefault("messages.link_added_fmt", m.LinkAddedFmt)
	v.SetDefault("messages.channel_not_configured", m.ChannelNotConfigured)
	v.SetDefault("messages.refresh_done", m.RefreshDone)
	v.SetDefault("messages.refresh_partial_fmt", m.RefreshPartialFmt)
	v.SetDefault("messages.info_fmt", m.InfoFmt)
	v.SetDefault("messages.channel_unset", m.ChannelUnset)
	v.SetDefault("messages.url_hint_fmt", m.URLHintFmt)
	v.SetDefault("messages.unrecognized", m.Unrecognized)
	v.SetDefault("messages.not_authorized", m.NotAuthorized)
	v.SetDefault("messages.general_error", m.GeneralError)

	// Empty labels fall back to the renderer's defaults.
	for _, key := range []string{"index_title", "jump_link", "links_noun", "empty_category", "list_title", "recent_title", "recent_empty"} {
		v.SetDefault("labels."+key, "")
	}

	c := DefaultCommands
	v.SetDefault("commands.start", c.Start)
	v.SetDefault("commands.help", c.Help)
	v.SetDefault("commands.add", c.Add)
	v.SetDefault("commands.list", c.List)
	v.SetDefault("commands.refresh", c.Refresh)
	v.SetDefault("commands.info", c.Info)
	v.SetDefault("commands.recent", c.Recent)
}
