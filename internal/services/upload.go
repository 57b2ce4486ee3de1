package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"

	"print3d-service/config"
	"print3d-service/internal/dto"
	"print3d-service/pkg/constants"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/filestorage"
	"print3d-service/pkg/utils"
)

type UploadServiceInterface interface {
	Upload(ctx context.Context, fileHeader *multipart.FileHeader, uploadContext string) (*dto.UploadResultDTO, error)
}

// UploadService принимает изображения для портфолио и логотипы клиентов.
type UploadService struct {
	fileStorage   filestorage.FileStorageInterface
	publicBaseURL string
	logger        *zap.Logger
}

func NewUploadService(fileStorage filestorage.FileStorageInterface, publicBaseURL string, logger *zap.Logger) *UploadService {
	return &UploadService{
		fileStorage:   fileStorage,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

func (s *UploadService) Upload(_ context.Context, fileHeader *multipart.FileHeader, uploadContext string) (*dto.UploadResultDTO, error) {
	if uploadContext == "" {
		uploadContext = constants.UploadContextPortfolioImage.String()
	}
	if uploadContext != constants.UploadContextPortfolioImage.String() && uploadContext != constants.UploadContextClientLogo.String() {
		return nil, fmt.Errorf("%w: неизвестный контекст загрузки %q", apperrors.ErrBadRequest, uploadContext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Не удалось открыть загруженный файл", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}
	defer file.Close()

	if err := utils.ValidateFile(fileHeader.Filename, fileHeader.Size, file, uploadContext); err != nil {
		return nil, err
	}

	relativePath, err := s.fileStorage.Save(file, fileHeader.Filename, config.UploadContexts[uploadContext].PathPrefix)
	if err != nil {
		s.logger.Error("Не удалось сохранить файл", zap.String("fileName", fileHeader.Filename), zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}

	url := s.publicBaseURL + filestorage.URLPrefix + relativePath
	s.logger.Info("Файл загружен", zap.String("context", uploadContext), zap.String("url", url))
	return &dto.UploadResultDTO{URL: url}, nil
}
