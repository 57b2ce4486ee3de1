package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print3d-service/internal/controllers"
	"print3d-service/internal/services"
)

func runTranslationRouter(group *echo.Group, translationService services.TranslationServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewTranslationController(translationService, logger)
	group.GET("/translations/:lang", ctrl.GetTranslations)
}
