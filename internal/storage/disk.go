package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage writes uploads to a flat directory tree on local disk,
// mirrored by the /uploads/ static mount on the HTTP server.
type DiskStorage struct {
	root string
}

func NewDiskStorage(root string) (*DiskStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &DiskStorage{root: root}, nil
}

func (s *DiskStorage) Save(ctx context.Context, key string, contents io.Reader, contentType string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", key, err)
	}

	if _, err := io.Copy(f, contents); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", key, err)
	}

	return nil
}

func (s *DiskStorage) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", key, err)
	}

	return nil
}

func (s *DiskStorage) URL(key string) string {
	return "/uploads/" + key
}

// Root returns the directory backing the /uploads/ static mount.
func (s *DiskStorage) Root() string {
	return s.root
}

// path resolves a key inside the root, refusing traversal outside it.
func (s *DiskStorage) path(key string) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(path, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return path, nil
}
