// internal/domain/upload/service.go
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/your-org/boutique-store/internal/config"
)

var (
	ErrEmptyFile    = errors.New("uploaded file is empty")
	ErrFileTooLarge = errors.New("uploaded file is too large")
)

// Service stores product images on the local filesystem
type Service struct {
	config    config.UploadConfig
	urlPrefix string
}

// NewService creates a new upload service
func NewService(cfg config.UploadConfig) *Service {
	return &Service{
		config:    cfg,
		urlPrefix: "/static/uploads",
	}
}

// Dir returns the upload directory
func (s *Service) Dir() string {
	return s.config.Dir
}

// URL returns the public URL of a stored image
func (s *Service) URL(name string) string {
	return path.Join(s.urlPrefix, name)
}

// SaveProductImage writes an uploaded image under a generated unique name.
// The content is stored as-is.
func (s *Service) SaveProductImage(header *multipart.FileHeader) (*StoredImage, error) {
	if header == nil || header.Size == 0 {
		return nil, ErrEmptyFile
	}
	if s.config.MaxSize > 0 && header.Size > s.config.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, header.Size, s.config.MaxSize)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return s.save(src, header.Filename)
}

func (s *Service) save(src io.Reader, originalName string) (*StoredImage, error) {
	if err := os.MkdirAll(s.config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", strings.ReplaceAll(uuid.New().String(), "-", ""), SanitizeFilename(originalName))
	dst := filepath.Join(s.config.Dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	limit := s.config.MaxSize
	var reader io.Reader = src
	if limit > 0 {
		reader = io.LimitReader(src, limit+1)
	}

	written, err := io.Copy(f, reader)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && limit > 0 && written > limit {
		err = ErrFileTooLarge
	}
	if err == nil && written == 0 {
		err = ErrEmptyFile
	}
	if err != nil {
		_ = os.Remove(dst)
		if errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrEmptyFile) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredImage{
		Name:         name,
		OriginalName: originalName,
		Size:         written,
		URL:          s.URL(name),
	}, nil
}

// Remove deletes a stored image. Missing files are ignored.
func (s *Service) Remove(name string) error {
	if name == "" {
		return nil
	}
	// only plain names produced by save are accepted
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid image name: %q", name)
	}

	err := os.Remove(filepath.Join(s.config.Dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}
