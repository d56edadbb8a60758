package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Snapshot persists a whole document as a single JSON file. Every save
// rewrites the entire file; there is no journal and no partial write.
type Snapshot struct {
	path string
}

// NewSnapshot creates a snapshot store at the given path, creating the
// parent directory if needed.
func NewSnapshot(path string) (*Snapshot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Snapshot{path: path}, nil
}

// Load reads the document into v. A missing or malformed file is treated as
// an empty document: v is left untouched and no error is returned. This is a
// deliberate lenient-recovery policy, not data-loss prevention.
func (s *Snapshot) Load(v any) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.WithFields(log.Fields{
			"path":  s.path,
			"error": err,
		}).Warn("Snapshot file is malformed, starting from an empty document")
		return nil
	}
	return nil
}

// Save rewrites the whole document to disk
func (s *Snapshot) Save(v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", s.path, err)
	}
	return nil
}
