// storage/export.go
// Package storage writes audit snapshots of extracted records to disk. The
// exported JSON is the only persisted artifact the system produces.
package storage

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

// RecordStore saves EmailRecord snapshots as pretty-printed JSON files, one
// file per message id.
type RecordStore struct {
	dir string
	mu  sync.Mutex
}

// NewRecordStore creates the export directory if needed.
func NewRecordStore(directory string) (*RecordStore, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &RecordStore{dir: directory}, nil
}

// Save writes the record snapshot and returns the file path.
func (s *RecordStore) Save(id string, record *models.EmailRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.getPath(id)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(record); err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}

	return path, nil
}

// Load reads a previously exported record back, mainly for tests and
// inspection tooling.
func (s *RecordStore) Load(id string) (*models.EmailRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.getPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no export for message %s", id)
		}
		return nil, err
	}

	var record models.EmailRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &record, nil
}

// getPath hashes the message id so folder separators and IMAP UIDs map to
// safe file names.
func (s *RecordStore) getPath(id string) string {
	sum := sha256.Sum256([]byte(id))
	return filepath.Join(s.dir, fmt.Sprintf("%x.json", sum[:8]))
}
