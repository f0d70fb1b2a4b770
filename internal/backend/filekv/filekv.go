// Package filekv implements storage.Backend as a single JSON file.
//
// The file holds one JSON object mapping keys to string values. Every
// SetItem rewrites the whole file atomically (temp file, fsync, rename),
// so a crash leaves either the old or the new contents.
package filekv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the default storage file name inside the config directory.
const FileName = "storage.json"

// Store is a file-backed key/value store.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a Store at path. The file is created on first write.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("filekv: path is required")
	}
	return &Store{path: path}, nil
}

// Path returns the storage file path.
func (s *Store) Path() string {
	return s.path
}

// GetItem implements storage.Backend.
func (s *Store) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

// SetItem implements storage.Backend.
func (s *Store) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	items[key] = value

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("filekv: encode: %w", err)
	}
	return writeFileAtomic(s.path, append(data, '\n'), 0600)
}

// Close implements storage.Backend. The file is not held open between calls.
func (s *Store) Close() error {
	return nil
}

// load reads the file. A missing file is an empty store.
func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("filekv: read %s: %w", s.path, err)
	}

	items := make(map[string]string)
	if len(bytes.TrimSpace(data)) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("filekv: %s is not a key/value object: %w", s.path, err)
	}
	return items, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("filekv: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("filekv: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("filekv: write: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("filekv: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("filekv: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filekv: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("filekv: %w", err)
	}
	committed = true
	return nil
}
