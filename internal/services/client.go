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

type ClientServiceInterface interface {
	GetClients(ctx context.Context, includeHidden bool) (*dto.ClientsListDTO, error)
	CreateClient(ctx context.Context, in dto.CreateClientDTO) (*dto.MutationResultDTO, error)
	UpdateClient(ctx context.Context, in dto.UpdateClientDTO) (*dto.MutationResultDTO, error)
	DeleteClient(ctx context.Context, id uint64) error
}

type ClientService struct {
	repo   repositories.ClientRepositoryInterface
	cache  *publicCache
	logger *zap.Logger
}

func NewClientService(
	repo repositories.ClientRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{repo: repo, cache: newPublicCache(cache, cacheTTL, logger), logger: logger}
}

func (s *ClientService) GetClients(ctx context.Context, includeHidden bool) (*dto.ClientsListDTO, error) {
	load := func(ctx context.Context) (*dto.ClientsListDTO, error) {
		clients, err := s.repo.GetClients(ctx, !includeHidden)
		if err != nil {
			s.logger.Error("Ошибка получения клиентов", zap.Error(err))
			return nil, err
		}
		list := &dto.ClientsListDTO{Clients: make([]dto.ClientDTO, 0, len(clients))}
		for _, c := range clients {
			list.Clients = append(list.Clients, dto.NewClientDTO(c))
		}
		return list, nil
	}

	if includeHidden {
		return load(ctx)
	}
	return loadCached(ctx, s.cache, clientsPublicCacheKey, load)
}

func (s *ClientService) CreateClient(ctx context.Context, in dto.CreateClientDTO) (*dto.MutationResultDTO, error) {
	client := entities.Client{
		Name:         strings.TrimSpace(in.Name),
		LogoURL:      strings.TrimSpace(in.LogoURL),
		DisplayOrder: in.DisplayOrder,
		IsVisible:    !in.IsVisible.Valid || in.IsVisible.Bool,
	}
	if client.Name == "" || client.LogoURL == "" {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Название и логотип обязательны", nil, nil)
	}

	id, err := s.repo.CreateClient(ctx, client)
	if err != nil {
		s.logger.Error("Ошибка создания клиента", zap.Error(err))
		return nil, err
	}
	s.cache.invalidate(ctx, clientsPublicCacheKey)
	s.logger.Info("Добавлен клиент", zap.Uint64("id", id), zap.String("name", client.Name))
	return &dto.MutationResultDTO{Success: true, ID: id}, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, in dto.UpdateClientDTO) (*dto.MutationResultDTO, error) {
	if in.Name.Valid {
		in.Name.String = strings.TrimSpace(in.Name.String)
		if in.Name.String == "" {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Название не может быть пустым", nil, nil)
		}
	}
	if in.LogoURL.Valid {
		in.LogoURL.String = strings.TrimSpace(in.LogoURL.String)
		if in.LogoURL.String == "" {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Логотип не может быть пустым", nil, nil)
		}
	}

	if err := s.repo.UpdateClient(ctx, in); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx, clientsPublicCacheKey)
	return &dto.MutationResultDTO{Success: true, ID: in.ID}, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id uint64) error {
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, clientsPublicCacheKey)
	s.logger.Info("Клиент удалён", zap.Uint64("id", id))
	return nil
}
