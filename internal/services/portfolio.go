package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"print3d-service/internal/dto"
	"print3d-service/internal/entities"
	"print3d-service/internal/repositories"
	apperrors "print3d-service/pkg/errors"
)

type PortfolioServiceInterface interface {
	GetPortfolio(ctx context.Context, includeHidden bool) (*dto.PortfolioListDTO, error)
	CreatePortfolioItem(ctx context.Context, in dto.CreatePortfolioDTO) (*dto.MutationResultDTO, error)
	UpdatePortfolioItem(ctx context.Context, in dto.UpdatePortfolioDTO) (*dto.MutationResultDTO, error)
	DeletePortfolioItem(ctx context.Context, id uint64) error
}

type PortfolioService struct {
	repo   repositories.PortfolioRepositoryInterface
	cache  *publicCache
	logger *zap.Logger
}

func NewPortfolioService(
	repo repositories.PortfolioRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *PortfolioService {
	return &PortfolioService{repo: repo, cache: newPublicCache(cache, cacheTTL, logger), logger: logger}
}

// GetPortfolio: гостю - только видимые работы (из кеша), администратору - все.
func (s *PortfolioService) GetPortfolio(ctx context.Context, includeHidden bool) (*dto.PortfolioListDTO, error) {
	load := func(ctx context.Context) (*dto.PortfolioListDTO, error) {
		items, err := s.repo.GetPortfolio(ctx, !includeHidden)
		if err != nil {
			s.logger.Error("Ошибка получения портфолио", zap.Error(err))
			return nil, err
		}
		list := &dto.PortfolioListDTO{Portfolio: make([]dto.PortfolioItemDTO, 0, len(items))}
		for _, item := range items {
			list.Portfolio = append(list.Portfolio, dto.NewPortfolioItemDTO(item))
		}
		return list, nil
	}

	if includeHidden {
		return load(ctx)
	}
	return loadCached(ctx, s.cache, portfolioPublicCacheKey, load)
}

func (s *PortfolioService) CreatePortfolioItem(ctx context.Context, in dto.CreatePortfolioDTO) (*dto.MutationResultDTO, error) {
	item := entities.PortfolioItem{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		DisplayOrder: in.DisplayOrder,
		IsVisible:    !in.IsVisible.Valid || in.IsVisible.Bool,
	}
	if item.Title == "" || item.ImageURL == "" {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Название и изображение обязательны", nil, nil)
	}

	id, err := s.repo.CreatePortfolioItem(ctx, item)
	if err != nil {
		s.logger.Error("Ошибка создания работы портфолио", zap.Error(err))
		return nil, err
	}
	s.cache.invalidate(ctx, portfolioPublicCacheKey)
	s.logger.Info("Добавлена работа в портфолио", zap.Uint64("id", id), zap.String("title", item.Title))
	return &dto.MutationResultDTO{Success: true, ID: id}, nil
}

func (s *PortfolioService) UpdatePortfolioItem(ctx context.Context, in dto.UpdatePortfolioDTO) (*dto.MutationResultDTO, error) {
	if in.Title.Valid {
		in.Title.String = strings.TrimSpace(in.Title.String)
		if in.Title.String == "" {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Название не может быть пустым", nil, nil)
		}
	}
	if in.ImageURL.Valid {
		in.ImageURL.String = strings.TrimSpace(in.ImageURL.String)
		if in.ImageURL.String == "" {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Изображение не может быть пустым", nil, nil)
		}
	}

	if err := s.repo.UpdatePortfolioItem(ctx, in); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, portfolioPublicCacheKey)
	return &dto.MutationResultDTO{Success: true, ID: in.ID}, nil
}

func (s *PortfolioService) DeletePortfolioItem(ctx context.Context, id uint64) error {
	if err := s.repo.DeletePortfolioItem(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, portfolioPublicCacheKey)
	s.logger.Info("Работа удалена из портфолио", zap.Uint64("id", id))
	return nil
}
