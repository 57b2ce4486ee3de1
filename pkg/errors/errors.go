package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Авторизация
	ErrEmptyAdminToken = fmt.Errorf("токен администратора отсутствует")
	ErrUnauthorized    = fmt.Errorf("неверный токен доступа")

	// Заявки и файлы
	ErrInvalidStatus    = fmt.Errorf("недопустимый статус заявки")
	ErrFileTooLarge     = fmt.Errorf("файл превышает допустимый размер")
	ErrInvalidFile      = fmt.Errorf("недопустимый файл")
	ErrTooManyRequests  = fmt.Errorf("слишком много заявок, попробуйте позже")
	ErrInvalidBase64    = fmt.Errorf("файл передан в неверной кодировке")
	ErrMissingFileName  = fmt.Errorf("не указано имя файла")
	ErrUnknownLanguage  = fmt.Errorf("неизвестный язык")
	ErrUnknownMaterial  = fmt.Errorf("неизвестный материал")
	ErrUnknownTechnique = fmt.Errorf("неизвестная технология печати")

	// Общие
	ErrNotFound       = fmt.Errorf("запись не найдена")
	ErrBadRequest     = fmt.Errorf("неверный запрос")
	ErrInternalServer = fmt.Errorf("внутренняя ошибка сервера")
)

var statusByError = map[error]int{
	ErrEmptyAdminToken:  http.StatusUnauthorized,
	ErrUnauthorized:     http.StatusUnauthorized,
	ErrInvalidStatus:    http.StatusBadRequest,
	ErrFileTooLarge:     http.StatusRequestEntityTooLarge,
	ErrInvalidFile:      http.StatusBadRequest,
	ErrTooManyRequests:  http.StatusTooManyRequests,
	ErrInvalidBase64:    http.StatusBadRequest,
	ErrMissingFileName:  http.StatusBadRequest,
	ErrUnknownLanguage:  http.StatusNotFound,
	ErrUnknownMaterial:  http.StatusBadRequest,
	ErrUnknownTechnique: http.StatusBadRequest,
	ErrNotFound:         http.StatusNotFound,
	ErrBadRequest:       http.StatusBadRequest,
	ErrInternalServer:   http.StatusInternalServerError,
}

// StatusFor возвращает HTTP-код для известной ошибки и false, если ошибка не из списка.
func StatusFor(err error) (int, bool) {
	for known, code := range statusByError {
		if errors.Is(err, known) {
			return code, true
		}
	}
	return 0, false
}

// HttpError - ошибка с готовым HTTP-кодом и сообщением для клиента.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
