package catalogue

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Categories is the category mapping of a document. It keeps the order in
// which keys appear in the file so that rendering and saving follow it.
type Categories struct {
	keys  []string
	items map[string]*Category
}

// Len returns the number of categories.
func (c *Categories) Len() int {
	return len(c.keys)
}

// Keys returns the category keys in document order.
func (c *Categories) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Get returns the category stored under key.
func (c *Categories) Get(key string) (*Category, bool) {
	cat, ok := c.items[key]
	return cat, ok
}

// Set stores a category. New keys are appended at the end; existing keys
// keep their position.
func (c *Categories) Set(key string, cat *Category) {
	if c.items == nil {
		c.items = make(map[string]*Category)
	}
	if _, exists := c.items[key]; !exists {
		c.keys = append(c.keys, key)
	}
	if cat.Links == nil {
		cat.Links = []Link{}
	}
	c.items[key] = cat
}

// MarshalJSON writes the categories as a JSON object in document order.
func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeValue(key)
		if err != nil {
			return nil, err
		}
		v, err := encodeValue(c.items[key])
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, recording key order. A duplicate key
// keeps its first position and its last value.
func (c *Categories) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = Categories{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categorias: expected object, got %v", tok)
	}

	out := Categories{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("categorias: expected key, got %v", tok)
		}
		var cat Category
		if err := dec.Decode(&cat); err != nil {
			return fmt.Errorf("categorias[%q]: %w", key, err)
		}
		out.Set(key, &cat)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}

func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
