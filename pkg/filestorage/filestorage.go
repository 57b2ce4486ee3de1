package filestorage

import "io"

// URLPrefix - публичный префикс, под которым отдаются сохранённые файлы.
const URLPrefix = "/uploads/"

// FileStorageInterface определяет контракт для сервиса хранения файлов.
type FileStorageInterface interface {
	// Save сохраняет поток и возвращает путь относительно корня хранилища.
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	// Delete удаляет файл по публичному URL ("/uploads/...") или относительному пути.
	Delete(fileURL string) error
}
