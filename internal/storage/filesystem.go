package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mockupgen/internal/domain"
)

// FileStore persists generated mockups onto the local filesystem under a
// single flat directory served statically by the HTTP layer.
type FileStore struct {
	basePath string
}

// NewFileStore initializes a FileStore rooted at basePath. The directory is
// created at startup and held for the process lifetime.
func NewFileStore(basePath string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// SaveMockup writes the bytes under a freshly generated filename combining
// the current timestamp with a random hex suffix, and returns that filename.
// Every call produces a new file; identical inputs are never deduplicated,
// and the fresh name means concurrent writers cannot collide.
func (s *FileStore) SaveMockup(ctx context.Context, data []byte, mimeType string) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := "jpg"
	if mimeType == "image/png" {
		ext = "png"
	}
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("storage: random suffix: %w", err)
	}
	filename := fmt.Sprintf("mockup_%d_%s.%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), ext)

	if err := os.WriteFile(filepath.Join(s.basePath, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return filename, nil
}

// Open returns a handle on a persisted mockup. Filenames are flat keys; a
// missing file — including one the sweeper removed between listing and
// reading — surfaces as domain.ErrFileNotFound, never as a crash.
func (s *FileStore) Open(filename string) (*os.File, error) {
	clean, err := sanitizeFilename(filename)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.basePath, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("storage: open file: %w", err)
	}
	return f, nil
}

// sanitizeFilename rejects anything that could escape the flat storage root.
func sanitizeFilename(filename string) (string, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return "", domain.ErrFileNotFound
	}
	if strings.ContainsAny(filename, "/\\") || filename != filepath.Base(filename) {
		return "", domain.ErrFileNotFound
	}
	return filename, nil
}
