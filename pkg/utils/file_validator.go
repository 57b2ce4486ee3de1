package utils

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"print3d-service/config"
	apperrors "print3d-service/pkg/errors"
)

// ValidateFile проверяет размер и тип файла по правилам контекста загрузки.
// После проверки указатель файла возвращается в начало.
func ValidateFile(fileName string, size int64, file io.ReadSeeker, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("неизвестный контекст загрузки: %s", contextName)
	}

	if rules.MaxSizeBytes > 0 && size > rules.MaxSizeBytes {
		return fmt.Errorf("%w: %d KB при лимите %d MB", apperrors.ErrFileTooLarge, size/1024, rules.MaxSizeBytes/(1024*1024))
	}

	if len(rules.AllowedExtensions) > 0 {
		if err := ValidateExtension(fileName, contextName); err != nil {
			return err
		}
	}

	if len(rules.AllowedMimeTypes) == 0 {
		return nil
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("не удалось прочитать файл для определения типа")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("не удалось сбросить указатель файла")
	}

	mimeType := sniffMimeType(buffer[:n])
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return fmt.Errorf("%w: тип %s", apperrors.ErrInvalidFile, mimeType)
	}
	return nil
}

// ValidateExtension проверяет расширение имени файла по белому списку контекста.
func ValidateExtension(fileName, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("неизвестный контекст загрузки: %s", contextName)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !slices.Contains(rules.AllowedExtensions, ext) {
		return fmt.Errorf("%w: расширение %q не поддерживается", apperrors.ErrInvalidFile, ext)
	}
	return nil
}

func sniffMimeType(head []byte) string {
	mimeType := http.DetectContentType(head)
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return mimeType
}
