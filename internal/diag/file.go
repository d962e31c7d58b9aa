package diag

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is where the fault record lives on a Raspberry Pi deployment.
// It must be on persistent storage, not tmpfs, or it cannot outlive a reset.
const DefaultPath = "/var/lib/aircon-watchdog/fault.json"

// FileStore persists the fault record as a small JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file, creating the parent
// directory if needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create diag dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Read returns the stored record. A missing file reads as a zero record, so
// first boot behaves like a clean boot.
func (s *FileStore) Read() (FaultRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return FaultRecord{}, nil
	}
	if err != nil {
		return FaultRecord{}, fmt.Errorf("read fault record: %w", err)
	}

	var rec FaultRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// A corrupt record is not worth dying over at boot; treat as zero.
		return FaultRecord{}, nil
	}
	return rec, nil
}

// Write persists the record. Written via a temp file + rename so a reset
// mid-write cannot leave a torn record.
func (s *FileStore) Write(rec FaultRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal fault record: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write fault record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit fault record: %w", err)
	}
	return nil
}
