package printclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"print3d-service/pkg/constants"
)

type apiError struct {
	Message string `json:"message"`
}

// doJSON отправляет body как JSON и разбирает ответ в out (out может быть nil).
// Пустой token - публичный вызов.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ошибка кодирования запроса %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, token, out)
}

func (c *Client) send(req *http.Request, token string, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(constants.HeaderAdminToken, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Запрос не выполнен", zap.String("method", req.Method), zap.String("path", req.URL.Path), zap.Error(err))
		return fmt.Errorf("%w: %s %s: %w", ErrNetwork, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var apiErr apiError
		_ = json.Unmarshal(raw, &apiErr)
		c.logger.Warn("Сервер вернул ошибку",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return &ServerError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("не удалось разобрать ответ %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
