// Package catalogue owns the on-disk JSON document that lists the channel's
// categories, their links, and the identifiers of the channel messages that
// mirror them.
package catalogue

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrNotFound is returned when the catalogue file does not exist.
	// It wraps os.ErrNotExist.
	ErrNotFound = fmt.Errorf("catalogue file not found: %w", os.ErrNotExist)

	// ErrCategoryNotFound is returned when a mutation names a category key
	// that is not in the document.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrSave marks errors from Store.Update where the mutated document could
	// not be written back.
	ErrSave = errors.New("catalogue not saved")
)

// Document is the full catalogue as persisted in the JSON file. The file is
// edited by hand, so keys the program does not model are kept and written
// back where they were; Layout records them.
type Document struct {
	ChannelUsername *string    `json:"channel_username"`
	IndexMessageID  *int       `json:"indice_message_id"`
	Categories      Categories `json:"categorias"`
	Layout          []Member   `json:"-"`
}

// Category holds the links of one category and the id of the channel
// message that lists them.
type Category struct {
	MessageID *int     `json:"message_id"`
	Links     []Link   `json:"links"`
	Layout    []Member `json:"-"`
}

// Link is a single catalogue entry.
type Link struct {
	Title  string   `json:"texto"`
	URL    string   `json:"url"`
	Author string   `json:"autor"`
	Layout []Member `json:"-"`
}

func (d *Document) fields() []field {
	return []field{
		{key: "channel_username", ptr: &d.ChannelUsername},
		{key: "indice_message_id", ptr: &d.IndexMessageID},
		{key: "categorias", ptr: &d.Categories},
	}
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return encodeObject(d.Layout, d.fields())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var out Document
	layout, err := decodeObject(data, out.fields())
	if err != nil {
		return err
	}
	out.Layout = layout
	*d = out
	return nil
}

func (c *Category) fields() []field {
	return []field{
		{key: "message_id", ptr: &c.MessageID},
		{key: "links", ptr: &c.Links},
	}
}

// MarshalJSON implements json.Marshaler. A category without links is
// written with an empty list.
func (c Category) MarshalJSON() ([]byte, error) {
	if c.Links == nil {
		c.Links = []Link{}
	}
	return encodeObject(c.Layout, c.fields())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Category) UnmarshalJSON(data []byte) error {
	var out Category
	layout, err := decodeObject(data, out.fields())
	if err != nil {
		return err
	}
	out.Layout = layout
	*c = out
	return nil
}

func (l *Link) fields() []field {
	return []field{
		{key: "texto", ptr: &l.Title},
		{key: "url", ptr: &l.URL},
		{key: "autor", ptr: &l.Author},
	}
}

// MarshalJSON implements json.Marshaler.
func (l Link) MarshalJSON() ([]byte, error) {
	return encodeObject(l.Layout, l.fields())
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Link) UnmarshalJSON(data []byte) error {
	var out Link
	layout, err := decodeObject(data, out.fields())
	if err != nil {
		return err
	}
	out.Layout = layout
	*l = out
	return nil
}

// NewLink builds a link entry. An empty title falls back to the URL.
func NewLink(title, url, author string) Link {
	title = strings.TrimSpace(title)
	if title == "" {
		title = url
	}
	return Link{Title: title, URL: url, Author: author}
}

// DisplayTitle returns the title, or the URL for entries written without one.
func (l Link) DisplayTitle() string {
	if l.Title == "" {
		return l.URL
	}
	return l.Title
}

// Channel returns the configured channel identifier, or "" when unset.
func (d *Document) Channel() string {
	if d.ChannelUsername == nil {
		return ""
	}
	return strings.TrimSpace(*d.ChannelUsername)
}

// IndexID returns the index message id and whether one is recorded.
// A zero id counts as not recorded.
func (d *Document) IndexID() (int, bool) {
	return messageID(d.IndexMessageID)
}

// SetIndexID records the index message id.
func (d *Document) SetIndexID(id int) {
	d.IndexMessageID = &id
}

// ID returns the category message id and whether one is recorded.
func (c *Category) ID() (int, bool) {
	return messageID(c.MessageID)
}

// SetID records the category message id.
func (c *Category) SetID(id int) {
	c.MessageID = &id
}

func messageID(p *int) (int, bool) {
	if p == nil || *p == 0 {
		return 0, false
	}
	return *p, true
}

// FindCategory resolves a user-supplied category name to its stored key.
// Matching is case-insensitive; the first match in document order wins.
func (d *Document) FindCategory(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	for _, key := range d.Categories.Keys() {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

// AppendLink appends a link to the category stored under key.
func (d *Document) AppendLink(key string, link Link) error {
	cat, ok := d.Categories.Get(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, key)
	}
	cat.Links = append(cat.Links, link)
	return nil
}

// TotalLinks counts links across all categories.
func (d *Document) TotalLinks() int {
	total := 0
	for _, key := range d.Categories.Keys() {
		cat, _ := d.Categories.Get(key)
		total += len(cat.Links)
	}
	return total
}
