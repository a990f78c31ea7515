package adapters

import (
	"encoding/json"
	"os"
)

// FileStorageAdapter is the default storage adapter implementation using the
// file system. Stores the key/value pairs as JSON in a single file.
type FileStorageAdapter struct {
	filepath string
}

// Ensure FileStorageAdapter implements StorageAdapter interface
var _ StorageAdapter = (*FileStorageAdapter)(nil)

// NewFileStorageAdapter creates a new FileStorageAdapter instance.
//
// Parameters:
//   - filepath: Path to the file where values will be stored
func NewFileStorageAdapter(filepath string) StorageAdapter {
	return &FileStorageAdapter{filepath: filepath}
}

// Get retrieves the value stored under key.
// Returns "" if the file or the key does not exist.
func (f *FileStorageAdapter) Get(key string) (string, error) {
	values, err := f.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// Set stores value under key and rewrites the file.
func (f *FileStorageAdapter) Set(key string, value string) error {
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(f.filepath, data, 0644)
}

// Clear removes the storage file.
func (f *FileStorageAdapter) Clear() error {
	err := os.Remove(f.filepath)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *FileStorageAdapter) load() (map[string]string, error) {
	data, err := os.ReadFile(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}
