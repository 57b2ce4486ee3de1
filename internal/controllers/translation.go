package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print3d-service/internal/services"
	"print3d-service/pkg/utils"
)

type TranslationController struct {
	translationService services.TranslationServiceInterface
	logger             *zap.Logger
}

func NewTranslationController(translationService services.TranslationServiceInterface, logger *zap.Logger) *TranslationController {
	return &TranslationController{translationService: translationService, logger: logger}
}

func (c *TranslationController) GetTranslations(ctx echo.Context) error {
	res, err := c.translationService.GetTranslations(ctx.Param("lang"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}
