package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "print3d-service/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse переводит ошибку слоя сервисов в JSON-ответ {"status": false, "message": ...}.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil && httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		var validationErrors validator.ValidationErrors
		if errors.As(httpErr.Err, &validationErrors) {
			return validationResponse(c, validationErrors)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return validationResponse(c, validationErrors)
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": inputErr.Message})
	}

	if code, ok := apperrors.StatusFor(err); ok {
		if code >= http.StatusInternalServerError {
			logger.Error("Internal Error", zap.Error(err))
		}
		return c.JSON(code, map[string]interface{}{"status": false, "message": err.Error()})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}

func validationResponse(c echo.Context, validationErrors validator.ValidationErrors) error {
	fields := make(map[string]string, len(validationErrors))
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = e.Tag()
		msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
	}
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"status":  false,
		"message": "Ошибка валидации: " + strings.Join(msgs, "; "),
		"body":    fields,
	})
}
