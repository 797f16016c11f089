package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps images on disk under a single flat directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// path rejects anything that would escape the uploads directory.
func (s *LocalStore) path(filename string) (string, error) {
	if filename != filepath.Base(filename) || filename == "." || filename == ".." {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	return filepath.Join(s.dir, filename), nil
}

func (s *LocalStore) Save(_ context.Context, filename string, reader io.Reader, size int64, _ string) error {
	target, err := s.path(filename)
	if err != nil {
		return err
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, reader)
	if err != nil {
		os.Remove(target)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if size > 0 && written != size {
		os.Remove(target)
		return fmt.Errorf("short write: expected %d bytes, wrote %d", size, written)
	}
	return nil
}

func (s *LocalStore) Open(_ context.Context, filename string) (io.ReadCloser, error) {
	target, err := s.path(filename)
	if err != nil {
		return nil, err
	}
	return os.Open(target)
}

func (s *LocalStore) Delete(_ context.Context, filename string) error {
	target, err := s.path(filename)
	if err != nil {
		return err
	}
	err = os.Remove(target)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
