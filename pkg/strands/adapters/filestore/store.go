// Package filestore provides a filesystem-backed ObjectStore. Keys map to
// files under a root directory; writes are atomic via temp-file rename.
package filestore

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cagataycali/strands-go/pkg/strands/ports"
)

// Store persists objects as files under root.
type Store struct {
	root string
}

// Verify interface compliance at compile time.
var _ ports.ObjectStore = (*Store)(nil)

// New creates a file store rooted at the given directory, creating it if
// needed.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}

	return &Store{root: root}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// Put writes an object atomically: write to a temp file, then rename.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)

		return err
	}

	return nil
}

// Get reads an object; a missing file reports found=false.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return data, true, nil
}

// Exists reports whether the key holds an object.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// Delete removes an object; deleting a missing key is a no-op.
func (s *Store) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// List returns the keys under prefix in lexicographic order.
func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}

			return err
		}
		if entry.IsDir() || strings.HasSuffix(path, ".tmp") {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	return keys, nil
}
