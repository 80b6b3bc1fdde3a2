package catalogue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Marshal encodes a document with 2-space indentation. Non-ASCII text and
// HTML characters are written as-is.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding catalogue: %w", err)
	}
	return buf.Bytes(), nil
}

// Save overwrites the catalogue file with the full document.
// The write is not atomic: a crash mid-write can leave a truncated file.
func Save(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalogue: %w", err)
	}
	return nil
}
