package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/bill-review/internal/application/port"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// LocalFileStorage implements port.FileStorage on a directory of the local filesystem.
// Relative paths never resolve outside that directory.
type LocalFileStorage struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalFileStorage creates the base directory if needed
func NewLocalFileStorage(baseDir string, logger *zap.Logger) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalFileStorage{
		baseDir: baseDir,
		logger:  logger,
	}, nil
}

// Save writes content to the relative path, creating parent directories
func (s *LocalFileStorage) Save(ctx context.Context, path string, content []byte) error {
	root, err := os.OpenRoot(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to open storage root: %w", err)
	}
	defer root.Close()

	path = filepath.Clean(path)
	if err := mkdirAll(root, filepath.Dir(path)); err != nil {
		s.logger.Error("Failed to create parent directories", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to create directories: %w", err)
	}

	f, err := root.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		s.logger.Error("Failed to open file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to write file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("File saved", zap.String("path", path), zap.Int("size", len(content)))
	return nil
}

// Read returns the content at the relative path; a missing file wraps fs.ErrNotExist
func (s *LocalFileStorage) Read(ctx context.Context, path string) ([]byte, error) {
	root, err := os.OpenRoot(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage root: %w", err)
	}
	defer root.Close()

	content, err := fs.ReadFile(root.FS(), filepath.ToSlash(filepath.Clean(path)))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("Failed to read file", zap.String("path", path), zap.Error(err))
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

// Exists reports whether a regular file exists at the relative path
func (s *LocalFileStorage) Exists(ctx context.Context, path string) bool {
	root, err := os.OpenRoot(s.baseDir)
	if err != nil {
		return false
	}
	defer root.Close()

	info, err := root.Stat(filepath.Clean(path))
	return err == nil && info.Mode().IsRegular()
}

// Delete removes the file at the relative path; deleting a missing file succeeds
func (s *LocalFileStorage) Delete(ctx context.Context, path string) error {
	root, err := os.OpenRoot(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to open storage root: %w", err)
	}
	defer root.Close()

	if err := root.Remove(filepath.Clean(path)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("Failed to delete file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetFullPath converts a relative path to a path under the base directory
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

// SanitizeName returns a single path element safe to store, keeping the extension
func SanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "")
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "proof"
	}
	return name
}

// mkdirAll creates every directory of dir inside root
func mkdirAll(root *os.Root, dir string) error {
	if dir == "." || dir == "" {
		return nil
	}
	current := ""
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		current = filepath.Join(current, part)
		if err := root.Mkdir(current, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	return nil
}

var _ port.FileStorage = (*LocalFileStorage)(nil)
