package filestorage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/pkg/logger"
)

// LocalStorage implements Storage on the local filesystem
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a local storage rooted at basePath, creating it if needed
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// cleanName rejects names that would escape the storage directory
func cleanName(subPath, name string) (string, string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", "", apperrors.NewValidationError(fmt.Sprintf("invalid file name %q", name))
	}
	subPath = filepath.Clean("/" + subPath)[1:]
	return subPath, name, nil
}

// SaveBytes writes data as subPath/name, replacing any previous file
func (s *LocalStorage) SaveBytes(subPath, name string, data []byte) (string, error) {
	subPath, name, err := cleanName(subPath, name)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.basePath, subPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Debug().Str("path", fullPath).Int("bytes", len(data)).Msg("Stored document")
	return s.baseURL + "/" + path.Join(filepath.ToSlash(subPath), name), nil
}

// Open reads a stored document
func (s *LocalStorage) Open(subPath, name string) ([]byte, error) {
	subPath, name, err := cleanName(subPath, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.basePath, subPath, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.NewResourceNotFoundError("document not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// GetFullPath returns the filesystem path of a stored document
func (s *LocalStorage) GetFullPath(subPath, name string) string {
	return filepath.Join(s.basePath, subPath, name)
}

// GetBaseURL returns the URL prefix documents are served under
func (s *LocalStorage) GetBaseURL() string {
	return s.baseURL
}

// GetBasePath returns the storage root directory
func (s *LocalStorage) GetBasePath() string {
	return s.basePath
}
