// pkg/filestorage/local_filestorage.go

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

type LocalFileStorage struct {
	basePath string
	now      func() time.Time
}

func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию: %w", err)
	}
	return &LocalFileStorage{basePath: basePath, now: time.Now}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	now := s.now()
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.New().String(), ext)

	datePath := now.Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", err
	}

	if _, err = io.Copy(dst, file); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", err
	}
	if err = dst.Close(); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, datePath, uniqueFileName)), nil
}

func (s *LocalFileStorage) Delete(fileURL string) error {
	if i := strings.Index(fileURL, URLPrefix); i >= 0 {
		fileURL = fileURL[i+len(URLPrefix):]
	}
	relativePath := filepath.Clean("/" + fileURL)
	fullPath := filepath.Join(s.basePath, relativePath)

	// Файла нет - считаем, что удалён.
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(fullPath)
}
