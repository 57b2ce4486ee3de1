package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print3d-service/internal/dto"
	"print3d-service/internal/services"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/middleware"
	"print3d-service/pkg/utils"
)

type ClientController struct {
	clientService services.ClientServiceInterface
	logger        *zap.Logger
}

func NewClientController(clientService services.ClientServiceInterface, logger *zap.Logger) *ClientController {
	return &ClientController{clientService: clientService, logger: logger}
}

func (c *ClientController) GetClients(ctx echo.Context) error {
	res, err := c.clientService.GetClients(ctx.Request().Context(), middleware.IsAdmin(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *ClientController) CreateClient(ctx echo.Context) error {
	var in dto.CreateClientDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации", err, nil), c.logger)
	}

	res, err := c.clientService.CreateClient(ctx.Request().Context(), in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (c *ClientController) UpdateClient(ctx echo.Context) error {
	var in dto.UpdateClientDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации", err, nil), c.logger)
	}

	res, err := c.clientService.UpdateClient(ctx.Request().Context(), in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *ClientController) DeleteClient(ctx echo.Context) error {
	var in dto.IDRequestDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации", err, nil), c.logger)
	}

	if err := c.clientService.DeleteClient(ctx.Request().Context(), in.ID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, dto.MutationResultDTO{Success: true, ID: in.ID})
}
