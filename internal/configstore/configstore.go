// Package configstore keeps the backend rc file uploaded for each host.
package configstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	ErrEmpty    = errors.New("config file is empty")
	ErrTooLarge = errors.New("config file exceeds size limit")
)

// Store writes one file per host under its root directory.
type Store struct {
	fs      afero.Fs
	root    string
	maxSize int64
}

// New returns a store rooted at dir on fsys. maxSize <= 0 disables the size check.
func New(fsys afero.Fs, dir string, maxSize int64) (*Store, error) {
	if err := fsys.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &Store{fs: fsys, root: dir, maxSize: maxSize}, nil
}

func (s *Store) path(hostID string) string {
	return filepath.Join(s.root, hostID)
}

// Put replaces the host's config. Nothing is written for an empty or oversized blob.
func (s *Store) Put(hostID string, data []byte) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return ErrTooLarge
	}
	tmp, err := afero.TempFile(s.fs, s.root, "."+hostID+"-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(name)
		return err
	}
	if err := s.fs.Chmod(name, 0o600); err != nil {
		_ = s.fs.Remove(name)
		return err
	}
	if err := s.fs.Rename(name, s.path(hostID)); err != nil {
		_ = s.fs.Remove(name)
		return err
	}
	return nil
}

// Get returns the host's config; a missing file yields an error matching fs.ErrNotExist.
func (s *Store) Get(hostID string) ([]byte, error) {
	return afero.ReadFile(s.fs, s.path(hostID))
}

// Remove deletes the host's config. A missing file is not an error.
func (s *Store) Remove(hostID string) error {
	err := s.fs.Remove(s.path(hostID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) && !os.IsNotExist(err) {
		return err
	}
	return nil
}
