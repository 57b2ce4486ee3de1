package middleware

import (
	"crypto/subtle"
	"strings"

	"print3d-service/pkg/constants"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenVerifier проверяет статический токен администратора.
type TokenVerifier interface {
	Verify(token string) bool
}

type adminTokenVerifier struct {
	plain []byte
	hash  []byte
}

// NewTokenVerifier сравнивает токен с bcrypt-хешем, если он задан, иначе
// с открытым значением за постоянное время. Без обоих значений любой токен отклоняется.
func NewTokenVerifier(plain, hash string) TokenVerifier {
	return &adminTokenVerifier{plain: []byte(plain), hash: []byte(hash)}
}

func (v *adminTokenVerifier) Verify(token string) bool {
	if token == "" {
		return false
	}
	if len(v.hash) > 0 {
		return bcrypt.CompareHashAndPassword(v.hash, []byte(token)) == nil
	}
	if len(v.plain) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(v.plain, []byte(token)) == 1
}

const isAdminKey = "is_admin"

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// Auth пропускает запрос только с валидным заголовком X-Admin-Token.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := strings.TrimSpace(c.Request().Header.Get(constants.HeaderAdminToken))
		if token == "" {
			m.logger.Warn("AuthMiddleware: пустой заголовок X-Admin-Token", zap.String("path", c.Path()))
			return utils.ErrorResponse(c, apperrors.ErrEmptyAdminToken, m.logger)
		}
		if !m.verifier.Verify(token) {
			m.logger.Warn("AuthMiddleware: неверный токен администратора",
				zap.String("path", c.Path()),
				zap.String("ip", c.RealIP()),
			)
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}
		c.Set(isAdminKey, true)
		return next(c)
	}
}

// Identify помечает запрос как административный при валидном токене,
// но не отклоняет анонимные запросы. Нужен публичным спискам портфолио и клиентов.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := strings.TrimSpace(c.Request().Header.Get(constants.HeaderAdminToken))
		c.Set(isAdminKey, token != "" && m.verifier.Verify(token))
		return next(c)
	}
}

func IsAdmin(c echo.Context) bool {
	v, _ := c.Get(isAdminKey).(bool)
	return v
}
