package controllers

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print3d-service/internal/dto"
	"print3d-service/internal/export"
	"print3d-service/internal/services"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/types"
	"print3d-service/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

// CreateOrder - публичная отправка заявки. Проверки полей выполняет сервис.
func (c *OrderController) CreateOrder(ctx echo.Context) error {
	var in dto.CreateOrderDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}

	res, err := c.orderService.CreateOrder(ctx.Request().Context(), in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *OrderController) Estimate(ctx echo.Context) error {
	var in dto.EstimateRequestDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}

	res, err := c.orderService.Estimate(ctx.Request().Context(), in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	filter := types.ParseOrderFilter(ctx.QueryParams())

	res, err := c.orderService.GetOrders(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *OrderController) UpdateStatus(ctx echo.Context) error {
	var in dto.UpdateOrderStatusDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации", err, nil), c.logger)
	}

	res, err := c.orderService.UpdateStatus(ctx.Request().Context(), in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *OrderController) DeleteOrder(ctx echo.Context) error {
	var in dto.DeleteOrderDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации", err, nil), c.logger)
	}

	if err := c.orderService.DeleteOrder(ctx.Request().Context(), in.OrderID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, dto.MutationResultDTO{Success: true})
}

func (c *OrderController) ExportOrders(ctx echo.Context) error {
	filter := types.ParseOrderFilter(ctx.QueryParams())

	data, fileName, err := c.orderService.ExportOrders(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename*=UTF-8''"+url.PathEscape(fileName))
	return ctx.Blob(http.StatusOK, export.SpreadsheetMIME, data)
}
