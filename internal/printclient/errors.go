package printclient

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized - сервер отклонил токен (HTTP 401). Завершает админ-сессию.
	ErrUnauthorized = errors.New("токен администратора отклонён")
	// ErrNetwork - сервер недоступен или истёк таймаут.
	ErrNetwork          = errors.New("сервер недоступен")
	ErrSubmitInProgress = errors.New("заявка уже отправляется")
	ErrNotConfirmed     = errors.New("удаление не подтверждено")
	ErrNotAuthenticated = errors.New("вход не выполнен")
	ErrInvalidStatus    = errors.New("недопустимый статус заявки")
)

// ValidationError перечисляет все поля формы, не прошедшие проверку: поле -> причина.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "ошибка валидации: " + strings.Join(e.FieldNames(), ", ")
}

// FieldNames возвращает имена полей в алфавитном порядке.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileTooLargeError - вложение больше допустимого. Size - сколько байт успели прочитать.
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("файл больше %d байт", e.Limit)
}

// LimitMB - лимит в мегабайтах для сообщения пользователю.
func (e *FileTooLargeError) LimitMB() int64 {
	return e.Limit / (1024 * 1024)
}

// ServerError - сервер ответил кодом вне 2xx (кроме 401).
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("сервер вернул %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("сервер вернул %d", e.StatusCode)
}

func (e *ServerError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}
