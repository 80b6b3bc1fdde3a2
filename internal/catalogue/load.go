package catalogue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/jsonc"
)

// Load reads the catalogue file from disk.
// It returns an error wrapping ErrNotFound when the file is absent.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (create it from the template)", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalogue document. Comments and trailing commas are
// accepted since the file is edited by hand.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("parsing catalogue: document is empty")
	}
	var doc Document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("parsing catalogue: %w", err)
	}
	return &doc, nil
}
