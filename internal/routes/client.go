package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print3d-service/internal/controllers"
	"print3d-service/internal/services"
	"print3d-service/pkg/middleware"
)

func runClientRouter(
	group *echo.Group,
	clientService services.ClientServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	ctrl := controllers.NewClientController(clientService, logger)

	group.GET("/clients", ctrl.GetClients, authMW.Identify)
	group.POST("/clients", ctrl.CreateClient, authMW.Auth)
	group.PUT("/clients", ctrl.UpdateClient, authMW.Auth)
	group.DELETE("/clients", ctrl.DeleteClient, authMW.Auth)
}
