// Package render turns the catalogue into the HTML text published on the
// channel and returned by the bot's listing commands.
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/edgard/channelcat/internal/catalogue"
	"github.com/edgard/channelcat/internal/database"
)

// Labels are the fixed UI strings embedded in rendered text.
type Labels struct {
	IndexTitle    string
	JumpLink      string
	LinksNoun     string
	EmptyCategory string
	ListTitle     string
	RecentTitle   string
	RecentEmpty   string
}

// DefaultLabels returns the Spanish labels used on the channel.
func DefaultLabels() Labels {
	return Labels{
		IndexTitle:    "ÍNDICE",
		JumpLink:      "ir",
		LinksNoun:     "enlaces",
		EmptyCategory: "No hay enlaces aún. Agrega alguno con",
		ListTitle:     "Categorías disponibles:",
		RecentTitle:   "Últimos enlaces agregados:",
		RecentEmpty:   "Aún no se ha agregado ningún enlace.",
	}
}

// Renderer formats catalogue state as Telegram HTML.
type Renderer struct {
	labels Labels
}

// New creates a renderer. Empty labels fall back to DefaultLabels.
func New(labels Labels) *Renderer {
	def := DefaultLabels()
	fill := func(v *string, d string) {
		if strings.TrimSpace(*v) == "" {
			*v = d
		}
	}
	fill(&labels.IndexTitle, def.IndexTitle)
	fill(&labels.JumpLink, def.JumpLink)
	fill(&labels.LinksNoun, def.LinksNoun)
	fill(&labels.EmptyCategory, def.EmptyCategory)
	fill(&labels.ListTitle, def.ListTitle)
	fill(&labels.RecentTitle, def.RecentTitle)
	fill(&labels.RecentEmpty, def.RecentEmpty)
	return &Renderer{labels: labels}
}

// Index renders the index message: a header, a blank line, then one line per
// category in document order with its link count and, when the channel and
// the category message are both known, a link that jumps to it.
func (r *Renderer) Index(doc *catalogue.Document) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 <b>%s</b>\n", html.EscapeString(r.labels.IndexTitle))

	channel := doc.Channel()
	for _, name := range doc.Categories.Keys() {
		cat, _ := doc.Categories.Get(name)
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "• <b>%s</b> (%d)", html.EscapeString(name), len(cat.Links))
		if id, ok := cat.ID(); ok {
			if href := JumpURL(channel, id); href != "" {
				fmt.Fprintf(&sb, " — <a href=\"%s\">%s</a>", html.EscapeString(href), html.EscapeString(r.labels.JumpLink))
			}
		}
	}
	return sb.String()
}

// Category renders one category message: a header with the upper-cased name
// and count, then the numbered links, or a hint on how to add one.
func (r *Renderer) Category(name string, links []catalogue.Link) string {
	var sb strings.Builder
	upper := cases.Upper(language.Und).String(name)
	fmt.Fprintf(&sb, "📎 <b>%s</b> (%d %s)\n\n", html.EscapeString(upper), len(links), html.EscapeString(r.labels.LinksNoun))

	if len(links) == 0 {
		fmt.Fprintf(&sb, "<i>%s</i> /add", html.EscapeString(r.labels.EmptyCategory))
		return sb.String()
	}

	for i, link := range links {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. <a href=\"%s\">%s</a>", i+1, html.EscapeString(link.URL), html.EscapeString(link.DisplayTitle()))
	}
	return sb.String()
}

// List renders the /list reply.
func (r *Renderer) List(doc *catalogue.Document) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 <b>%s</b>\n", html.EscapeString(r.labels.ListTitle))
	for _, name := range doc.Categories.Keys() {
		cat, _ := doc.Categories.Get(name)
		fmt.Fprintf(&sb, "\n• <b>%s</b> — %d %s", html.EscapeString(name), len(cat.Links), html.EscapeString(r.labels.LinksNoun))
	}
	return sb.String()
}

// Recent renders the /recent reply from journaled submissions, newest first.
func (r *Renderer) Recent(subs []database.Submission) string {
	if len(subs) == 0 {
		return html.EscapeString(r.labels.RecentEmpty)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🕑 <b>%s</b>\n", html.EscapeString(r.labels.RecentTitle))
	for _, s := range subs {
		title := s.Title
		if title == "" {
			title = s.URL
		}
		fmt.Fprintf(&sb, "\n• <b>%s</b>: <a href=\"%s\">%s</a>", html.EscapeString(s.Category), html.EscapeString(s.URL), html.EscapeString(title))
		if s.Author != "" {
			fmt.Fprintf(&sb, " — %s", html.EscapeString(s.Author))
		}
		fmt.Fprintf(&sb, " (%s)", s.CreatedAt.UTC().Format("2006-01-02"))
	}
	return sb.String()
}

// JumpURL returns the public link to a channel message, or "" when the
// channel cannot be linked. Channels are addressed either by @username or by
// their numeric -100… id.
func JumpURL(channel string, messageID int) string {
	channel = strings.TrimSpace(channel)
	if channel == "" || messageID == 0 {
		return ""
	}
	if _, err := strconv.ParseInt(channel, 10, 64); err == nil {
		internal, ok := strings.CutPrefix(channel, "-100")
		if !ok || internal == "" {
			return ""
		}
		return fmt.Sprintf("https://t.me/c/%s/%d", internal, messageID)
	}
	return fmt.Sprintf("https://t.me/%s/%d", strings.TrimPrefix(channel, "@"), messageID)
}
