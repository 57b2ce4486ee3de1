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

type PortfolioController struct {
	portfolioService services.PortfolioServiceInterface
	logger           *zap.Logger
}

func NewPortfolioController(portfolioService services.PortfolioServiceInterface, logger *zap.Logger) *PortfolioController {
	return &PortfolioController{portfolioService: portfolioService, logger: logger}
}

func (c *PortfolioController) GetPortfolio(ctx echo.Context) error {
	res, err := c.portfolioService.GetPortfolio(ctx.Request().Context(), middleware.IsAdmin(ctx))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *PortfolioController) CreatePortfolioItem(ctx echo.Context) error {
	var in dto.CreatePortfolioDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации", err, nil), c.logger)
	}

	res, err := c.portfolioService.CreatePortfolioItem(ctx.Request().Context(), in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (c *PortfolioController) UpdatePortfolioItem(ctx echo.Context) error {
	var in dto.UpdatePortfolioDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации", err, nil), c.logger)
	}

	res, err := c.portfolioService.UpdatePortfolioItem(ctx.Request().Context(), in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *PortfolioController) DeletePortfolioItem(ctx echo.Context) error {
	var in dto.IDRequestDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации", err, nil), c.logger)
	}

	if err := c.portfolioService.DeletePortfolioItem(ctx.Request().Context(), in.ID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, dto.MutationResultDTO{Success: true, ID: in.ID})
}
