package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print3d-service/internal/services"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/utils"
)

type UploadController struct {
	uploadService services.UploadServiceInterface
	logger        *zap.Logger
}

func NewUploadController(uploadService services.UploadServiceInterface, logger *zap.Logger) *UploadController {
	return &UploadController{uploadService: uploadService, logger: logger}
}

// Upload принимает multipart-поле "file" и необязательное поле "context".
func (c *UploadController) Upload(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Файл не передан", err, nil), c.logger)
	}

	res, err := c.uploadService.Upload(ctx.Request().Context(), fileHeader, ctx.FormValue("context"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}
