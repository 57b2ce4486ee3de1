package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print3d-service/internal/controllers"
	"print3d-service/internal/services"
	"print3d-service/pkg/middleware"
)

func runOrderRouter(
	group *echo.Group,
	orderService services.OrderServiceInterface,
	opts RouterOptions,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	orderCtrl := controllers.NewOrderController(orderService, logger)
	rateLimit := middleware.RateLimit(opts.RateCounter, "orders", opts.Order.RateLimit, opts.Order.RateWindow, logger)

	orders := group.Group("/orders")
	orders.POST("", orderCtrl.CreateOrder, rateLimit)
	orders.POST("/estimate", orderCtrl.Estimate)

	orders.GET("", orderCtrl.GetOrders, authMW.Auth)
	orders.GET("/export", orderCtrl.ExportOrders, authMW.Auth)
	orders.POST("/status", orderCtrl.UpdateStatus, authMW.Auth)
	orders.DELETE("", orderCtrl.DeleteOrder, authMW.Auth)
}
