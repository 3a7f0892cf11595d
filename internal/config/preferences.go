package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Preferences is the state the picker persists between runs, stored as
// {"topmost": bool}.
type Preferences struct {
	Topmost bool `json:"topmost"`
}

// LoadPreferences reads path. A missing file yields the defaults and no
// error; a malformed one yields the defaults and an error for the caller to
// report.
func LoadPreferences(path string) (Preferences, error) {
	var p Preferences
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Preferences{}, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("reading preferences: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("parsing preferences %s: %w", path, err)
	}
	return p, nil
}

// SavePreferences writes p to path, creating the parent directory.
func SavePreferences(path string, p Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}
