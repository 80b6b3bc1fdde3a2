package render_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/edgard/channelcat/internal/catalogue"
	"github.com/edgard/channelcat/internal/database"
	"github.com/edgard/channelcat/internal/render"
)

func mustParse(t *testing.T, s string) *catalogue.Document {
	t.Helper()
	doc, err := catalogue.Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestIndex_OneLinePerCategoryInOrder(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"channel_username": "@mi_canal",
		"categorias": {
			"Zeta":   {"message_id": 21, "links": [{"texto": "a", "url": "https://a"}, {"texto": "b", "url": "https://b"}]},
			"Alpha":  {"message_id": null, "links": []},
			"Diseño": {"message_id": 23, "links": [{"texto": "c", "url": "https://c"}]}
		}
	}`)
	r := render.New(render.Labels{})

	lines := strings.Split(r.Index(doc), "\n")
	if lines[0] != "📚 <b>ÍNDICE</b>" || lines[1] != "" {
		t.Fatalf("header = %q, want title line then blank line", lines[:2])
	}
	want := []string{
		`• <b>Zeta</b> (2) — <a href="https://t.me/mi_canal/21">ir</a>`,
		`• <b>Alpha</b> (0)`,
		`• <b>Diseño</b> (1) — <a href="https://t.me/mi_canal/23">ir</a>`,
	}
	if diff := cmp.Diff(want, lines[2:]); diff != "" {
		t.Errorf("index lines mismatch (-want +got):\n%s", diff)
	}
}

func TestIndex_LineCountMatchesCategories(t *testing.T) {
	t.Parallel()

	r := render.New(render.Labels{})
	for _, n := range []int{1, 2, 5, 12} {
		t.Run(fmt.Sprintf("%d categories", n), func(t *testing.T) {
			t.Parallel()
			doc := &catalogue.Document{}
			for i := range n {
				doc.Categories.Set(fmt.Sprintf("Cat%02d", i), &catalogue.Category{})
			}
			lines := strings.Split(r.Index(doc), "\n")
			if got := len(lines) - 2; got != n {
				t.Errorf("got %d lines after the header, want %d", got, n)
			}
		})
	}
}

func TestIndex_NoJumpLinksWithoutChannel(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"categorias": {"Videos": {"message_id": 5}}}`)
	text := render.New(render.Labels{}).Index(doc)
	if strings.Contains(text, "<a ") {
		t.Errorf("index without channel contains a link: %q", text)
	}
}

func TestCategory_Empty(t *testing.T) {
	t.Parallel()

	text := render.New(render.Labels{}).Category("Videos", nil)
	want := "📎 <b>VIDEOS</b> (0 enlaces)\n\n<i>No hay enlaces aún. Agrega alguno con</i> /add"
	if text != want {
		t.Errorf("Category() = %q, want %q", text, want)
	}
}

func TestCategory_NumberedLinks(t *testing.T) {
	t.Parallel()

	links := []catalogue.Link{
		{Title: "Primero", URL: "https://example.com/1"},
		{Title: "", URL: "https://example.com/2"},
		{Title: "Tercero", URL: "https://example.com/3"},
	}
	text := render.New(render.Labels{}).Category("Diseño", links)
	lines := strings.Split(text, "\n")

	if lines[0] != "📎 <b>DISEÑO</b> (3 enlaces)" {
		t.Errorf("header = %q", lines[0])
	}
	want := []string{
		`1. <a href="https://example.com/1">Primero</a>`,
		`2. <a href="https://example.com/2">https://example.com/2</a>`,
		`3. <a href="https://example.com/3">Tercero</a>`,
	}
	if diff := cmp.Diff(want, lines[2:]); diff != "" {
		t.Errorf("category lines mismatch (-want +got):\n%s", diff)
	}
}

func TestCategory_EscapesHTMLAndUppercasesUnicode(t *testing.T) {
	t.Parallel()

	links := []catalogue.Link{{Title: "<b>x</b> & y", URL: "https://e.example/?a=1&b=2"}}
	text := render.New(render.Labels{}).Category("straße", links)

	if !strings.Contains(text, "<b>STRASSE</b>") {
		t.Errorf("header not fully upper-cased: %q", text)
	}
	if !strings.Contains(text, `href="https://e.example/?a=1&amp;b=2"`) {
		t.Errorf("URL not escaped: %q", text)
	}
	if !strings.Contains(text, ">&lt;b&gt;x&lt;/b&gt; &amp; y</a>") {
		t.Errorf("title not escaped: %q", text)
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"categorias": {"Videos": {"links": [{"url": "https://a"}]}, "Libros": {}}}`)
	got := render.New(render.Labels{}).List(doc)
	want := "📚 <b>Categorías disponibles:</b>\n\n• <b>Videos</b> — 1 enlaces\n• <b>Libros</b> — 0 enlaces"
	if got != want {
		t.Errorf("List() = %q, want %q", got, want)
	}
}

func TestRecent(t *testing.T) {
	t.Parallel()

	r := render.New(render.Labels{})
	if got := r.Recent(nil); got != "Aún no se ha agregado ningún enlace." {
		t.Errorf("Recent(nil) = %q", got)
	}

	subs := []database.Submission{{
		CreatedAt: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
		Category:  "Videos",
		URL:       "https://v.example/1",
		Author:    "ana",
	}}
	want := "🕑 <b>Últimos enlaces agregados:</b>\n\n• <b>Videos</b>: <a href=\"https://v.example/1\">https://v.example/1</a> — ana (2026-05-04)"
	if got := r.Recent(subs); got != want {
		t.Errorf("Recent() = %q, want %q", got, want)
	}
}

func TestNew_CustomLabels(t *testing.T) {
	t.Parallel()

	r := render.New(render.Labels{IndexTitle: "INDEX", LinksNoun: "links"})
	if got := r.Category("Videos", nil); !strings.HasPrefix(got, "📎 <b>VIDEOS</b> (0 links)") {
		t.Errorf("custom noun not used: %q", got)
	}
	if got := r.Index(&catalogue.Document{}); got != "📚 <b>INDEX</b>\n" {
		t.Errorf("custom title not used: %q", got)
	}
}

func TestJumpURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		channel string
		id      int
		want    string
	}{
		{channel: "@mi_canal", id: 7, want: "https://t.me/mi_canal/7"},
		{channel: "mi_canal", id: 7, want: "https://t.me/mi_canal/7"},
		{channel: "-1001234567890", id: 9, want: "https://t.me/c/1234567890/9"},
		{channel: "123456", id: 9, want: ""},
		{channel: "", id: 9, want: ""},
		{channel: "@mi_canal", id: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.channel, tt.id), func(t *testing.T) {
			t.Parallel()
			if got := render.JumpURL(tt.channel, tt.id); got != tt.want {
				t.Errorf("JumpURL(%q, %d) = %q, want %q", tt.channel, tt.id, got, tt.want)
			}
		})
	}
}
