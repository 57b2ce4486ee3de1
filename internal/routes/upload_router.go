package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print3d-service/internal/controllers"
	"print3d-service/internal/services"
	"print3d-service/pkg/middleware"
)

func runUploadRouter(
	group *echo.Group,
	uploadService services.UploadServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	uploadController := controllers.NewUploadController(uploadService, logger)

	group.POST("/upload", uploadController.Upload, authMW.Auth)
}
