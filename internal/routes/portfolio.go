package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print3d-service/internal/controllers"
	"print3d-service/internal/services"
	"print3d-service/pkg/middleware"
)

func runPortfolioRouter(
	group *echo.Group,
	portfolioService services.PortfolioServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	ctrl := controllers.NewPortfolioController(portfolioService, logger)

	group.GET("/portfolio", ctrl.GetPortfolio, authMW.Identify)
	group.POST("/portfolio", ctrl.CreatePortfolioItem, authMW.Auth)
	group.PUT("/portfolio", ctrl.UpdatePortfolioItem, authMW.Auth)
	group.DELETE("/portfolio", ctrl.DeletePortfolioItem, authMW.Auth)
}
