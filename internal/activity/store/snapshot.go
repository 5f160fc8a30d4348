package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"mergington/internal/activity/models"
)

// FileSnapshot reads and writes the registry as a JSON document on disk.
// The school previously kept rosters in a flat activities.json next to the
// app; this preserves that format so existing files keep working.
type FileSnapshot struct {
	path string
}

// NewFileSnapshot creates a snapshot bound to path.
func NewFileSnapshot(path string) *FileSnapshot {
	return &FileSnapshot{path: path}
}

// Load parses the snapshot file. A missing file is not an error; it returns
// (nil, nil) so callers fall back to the seed defaults.
func (s *FileSnapshot) Load() (map[string]models.Activity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	var activities map[string]models.Activity
	if err := json.Unmarshal(data, &activities); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}
	for name, a := range activities {
		if a.Participants == nil {
			a.Participants = []string{}
			activities[name] = a
		}
	}
	return activities, nil
}

// Save writes the full registry, creating parent directories as needed. The
// write goes through a temp file and rename so a crash mid-write never
// leaves a truncated snapshot behind.
func (s *FileSnapshot) Save(activities map[string]models.Activity) error {
	data, err := json.MarshalIndent(activities, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".activities-*.json")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot %s: %w", s.path, err)
	}
	return nil
}
