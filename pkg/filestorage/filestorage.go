package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorageInterface is the storage contract consumed by the services.
// Save must return a path that is stable enough to be handed to PublicURL.
type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	PublicURL(filePath string) string
	Delete(filePath string) error
}

type LocalFileStorage struct {
	basePath      string
	publicBaseURL string
}

func NewLocalFileStorage(basePath, publicBaseURL string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	return &LocalFileStorage{
		basePath:      basePath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	// Collision-resistant name: timestamp plus a random suffix plus the
	// original extension.
	ext := filepath.Ext(originalFileName)
	uniqueFileName := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)

	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, datePath, uniqueFileName)), nil
}

// PublicURL maps a stored path to the URL the static file handler serves it at.
func (s *LocalFileStorage) PublicURL(filePath string) string {
	return s.publicBaseURL + "/uploads/" + strings.TrimPrefix(filePath, "/")
}

func (s *LocalFileStorage) Delete(fileURL string) error {
	// Accepts either a bare relative path or a "/uploads/..." URL path.
	relativePath := strings.TrimPrefix(fileURL, s.publicBaseURL)
	relativePath = strings.TrimPrefix(relativePath, "/uploads/")
	relativePath = strings.TrimPrefix(relativePath, "/")

	fullPath := filepath.Join(s.basePath, relativePath)

	// A missing file counts as already deleted.
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(fullPath)
}
