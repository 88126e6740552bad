package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"techcom/internal/config"
	"techcom/internal/domain"
	"techcom/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// LocalStorage keeps uploaded files in a single flat directory.
type LocalStorage struct {
	dir     string
	allowed map[string]struct{}
}

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage(cfg config.UploadConfig) (*LocalStorage, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("upload directory is not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = struct{}{}
	}
	return &LocalStorage{dir: cfg.Dir, allowed: allowed}, nil
}

func sanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(filepath.Base(name), "_")
}

// uniqueName prefixes the sanitized original name with a uuid.
func uniqueName(original string) string {
	return uuid.New().String() + "-" + sanitizeFilename(original)
}

func (s *LocalStorage) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(s.allowed) > 0 {
		if _, ok := s.allowed[ext]; !ok {
			return "", domain.ValidationErrors{domain.NewInvalidFormatError("files", originalName)}
		}
	}

	name := uniqueName(originalName)
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	logger.Get().Debug("Stored upload", zap.String("original", originalName), zap.String("stored", name))
	return name, nil
}

func (s *LocalStorage) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", domain.NewValidationError("invalid file name")
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.NewNotFoundError("file", name)
		}
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return "", domain.NewNotFoundError("file", name)
	}
	return path, nil
}

// Delete removes a stored file; a missing file is not an error.
func (s *LocalStorage) Delete(name string) error {
	path, err := s.Resolve(name)
	if err != nil {
		if domain.HasCode(err, domain.CodeNotFound) {
			return nil
		}
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

var _ domain.FileStorage = (*LocalStorage)(nil)
