package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/timvw/cpick/internal/colorspace"
)

// SavePalette writes entries as an indented JSON array. The file is written
// to a temporary sibling and renamed into place.
func SavePalette(path string, entries []PaletteEntry) error {
	if entries == nil {
		entries = []PaletteEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode palette: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".palette-*.json")
	if err != nil {
		return fmt.Errorf("save palette %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save palette %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save palette %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save palette %s: %w", path, err)
	}
	return nil
}

// LoadPalette reads a palette file written by SavePalette. Every "hex" must
// be a #RRGGBB colour; one bad entry fails the whole load. Unknown
// representation names inside "values" are ignored.
func LoadPalette(path string) ([]PaletteEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load palette: %w", err)
	}
	var entries []PaletteEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("load palette %s: %w", path, err)
	}
	for i, e := range entries {
		if e.Hex == "" {
			return nil, fmt.Errorf("load palette %s: entry %d has no hex", path, i)
		}
		if err := validHex(e.Hex); err != nil {
			return nil, fmt.Errorf("load palette %s: entry %d: %w", path, i, err)
		}
	}
	return entries, nil
}

// validHex accepts only the long "#RRGGBB" form that SavePalette writes.
func validHex(hex string) error {
	if len(hex) != 7 || hex[0] != '#' {
		return fmt.Errorf("invalid hex colour %q: want #RRGGBB", hex)
	}
	_, err := colorspace.ParseHex(hex)
	return err
}
