package catalogue

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Member is one key of a JSON object as it appeared in the file. Value holds
// the raw JSON of keys no struct field models and is nil for modelled keys.
type Member struct {
	Key   string
	Value json.RawMessage
}

type field struct {
	key string
	ptr any
}

func lookupField(fields []field, key string) (int, bool) {
	for i, f := range fields {
		if f.key == key {
			return i, true
		}
	}
	return -1, false
}

// decodeObject reads a JSON object member by member, decoding modelled keys
// into their fields and keeping the rest verbatim. The returned layout is nil
// when the object holds no extra keys and lists the modelled ones in field
// order, so plain documents carry no layout. A duplicate key keeps its first
// position and its last value.
func decodeObject(data []byte, fields []field) ([]Member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var layout []Member
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}

		m := Member{Key: key}
		if i, known := lookupField(fields, key); known {
			if err := json.Unmarshal(raw, fields[i].ptr); err != nil {
				return nil, fmt.Errorf("%q: %w", key, err)
			}
		} else {
			m.Value = raw
		}

		if i, dup := seen[key]; dup {
			layout[i] = m
			continue
		}
		seen[key] = len(layout)
		layout = append(layout, m)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	if inFieldOrder(layout, fields) {
		return nil, nil
	}
	return layout, nil
}

func inFieldOrder(layout []Member, fields []field) bool {
	last := -1
	for _, m := range layout {
		if m.Value != nil {
			return false
		}
		i, _ := lookupField(fields, m.Key)
		if i < last {
			return false
		}
		last = i
	}
	return true
}

// encodeObject writes the object following layout: extra keys come back
// verbatim in their place, modelled keys take their current field value.
// Modelled keys missing from layout follow in field order.
func encodeObject(layout []Member, fields []field) ([]byte, error) {
	var buf bytes.Buffer
	written := make([]bool, len(fields))
	n := 0

	write := func(key string, value []byte) error {
		k, err := encodeValue(key)
		if err != nil {
			return err
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(value)
		n++
		return nil
	}
	writeField := func(i int) error {
		v, err := encodeValue(fields[i].ptr)
		if err != nil {
			return fmt.Errorf("%q: %w", fields[i].key, err)
		}
		written[i] = true
		return write(fields[i].key, v)
	}

	buf.WriteByte('{')
	for _, m := range layout {
		if m.Value != nil {
			if err := write(m.Key, m.Value); err != nil {
				return nil, err
			}
			continue
		}
		if i, ok := lookupField(fields, m.Key); ok && !written[i] {
			if err := writeField(i); err != nil {
				return nil, err
			}
		}
	}
	for i := range fields {
		if written[i] {
			continue
		}
		if err := writeField(i); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
