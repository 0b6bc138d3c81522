package adapters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorageAdapter stores undelivered events as a JSON array in a single file.
type FileStorageAdapter struct {
	path string
}

// Ensure FileStorageAdapter implements StorageAdapter interface
var _ StorageAdapter = (*FileStorageAdapter)(nil)

// NewFileStorageAdapter creates a new FileStorageAdapter instance.
//
// Parameters:
//   - path: Path to the file where events will be stored
func NewFileStorageAdapter(path string) *FileStorageAdapter {
	return &FileStorageAdapter{path: path}
}

// Save writes events to a temporary file next to the target and renames it
// into place, so a crash never leaves a truncated file behind.
func (f *FileStorageAdapter) Save(events []Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Load retrieves events from the JSON file.
// Returns empty slice if the file doesn't exist.
func (f *FileStorageAdapter) Load() ([]Event, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Event{}, nil
		}
		return nil, err
	}

	events := []Event{}
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.path, err)
	}
	return events, nil
}

// Clear removes the storage file. A missing file is not an error.
func (f *FileStorageAdapter) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
