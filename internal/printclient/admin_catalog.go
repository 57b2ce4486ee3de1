package printclient

import (
	"context"
	"io"
	"net/http"

	"github.com/aarondl/null/v8"

	"print3d-service/internal/dto"
	"print3d-service/internal/i18n"
)

// ListPortfolio возвращает все работы, включая скрытые.
func (s *AdminSession) ListPortfolio(ctx context.Context) ([]dto.PortfolioItemDTO, error) {
	var items []dto.PortfolioItemDTO
	err := s.authorized(func(token string) error {
		var err error
		items, err = s.client.listPortfolio(ctx, token)
		return err
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}
	return items, nil
}

// SavePortfolio создаёт работу (ID == 0) или перезаписывает все её поля,
// затем перечитывает список.
func (s *AdminSession) SavePortfolio(ctx context.Context, item dto.PortfolioItemDTO) ([]dto.PortfolioItemDTO, error) {
	err := s.authorized(func(token string) error {
		if item.ID == 0 {
			_, err := s.client.mutate(ctx, http.MethodPost, "/api/portfolio", token, dto.CreatePortfolioDTO{
				Title:        item.Title,
				Description:  item.Description,
				ImageURL:     item.ImageURL,
				DisplayOrder: item.DisplayOrder,
				IsVisible:    null.BoolFrom(item.IsVisible),
			})
			return err
		}
		_, err := s.client.mutate(ctx, http.MethodPut, "/api/portfolio", token, dto.UpdatePortfolioDTO{
			ID:           item.ID,
			Title:        null.StringFrom(item.Title),
			Description:  null.StringFrom(item.Description),
			ImageURL:     null.StringFrom(item.ImageURL),
			DisplayOrder: null.IntFrom(item.DisplayOrder),
			IsVisible:    null.BoolFrom(item.IsVisible),
		})
		return err
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}
	return s.ListPortfolio(ctx)
}

func (s *AdminSession) DeletePortfolio(ctx context.Context, id uint64, confirm Confirmer) ([]dto.PortfolioItemDTO, error) {
	if confirm == nil || !confirm.Confirm(s.client.T(i18n.KeyAdminConfirmDeleteItem, id)) {
		return nil, ErrNotConfirmed
	}
	err := s.authorized(func(token string) error {
		_, err := s.client.mutate(ctx, http.MethodDelete, "/api/portfolio", token, dto.IDRequestDTO{ID: id})
		return err
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}
	return s.ListPortfolio(ctx)
}

func (s *AdminSession) ListClients(ctx context.Context) ([]dto.ClientDTO, error) {
	var items []dto.ClientDTO
	err := s.authorized(func(token string) error {
		var err error
		items, err = s.client.listClients(ctx, token)
		return err
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}
	return items, nil
}

func (s *AdminSession) SaveClient(ctx context.Context, item dto.ClientDTO) ([]dto.ClientDTO, error) {
	err := s.authorized(func(token string) error {
		if item.ID == 0 {
			_, err := s.client.mutate(ctx, http.MethodPost, "/api/clients", token, dto.CreateClientDTO{
				Name:         item.Name,
				LogoURL:      item.LogoURL,
				DisplayOrder: item.DisplayOrder,
				IsVisible:    null.BoolFrom(item.IsVisible),
			})
			return err
		}
		_, err := s.client.mutate(ctx, http.MethodPut, "/api/clients", token, dto.UpdateClientDTO{
			ID:           item.ID,
			Name:         null.StringFrom(item.Name),
			LogoURL:      null.StringFrom(item.LogoURL),
			DisplayOrder: null.IntFrom(item.DisplayOrder),
			IsVisible:    null.BoolFrom(item.IsVisible),
		})
		return err
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}
	return s.ListClients(ctx)
}

func (s *AdminSession) DeleteClient(ctx context.Context, id uint64, confirm Confirmer) ([]dto.ClientDTO, error) {
	if confirm == nil || !confirm.Confirm(s.client.T(i18n.KeyAdminConfirmDeleteItem, id)) {
		return nil, ErrNotConfirmed
	}
	err := s.authorized(func(token string) error {
		_, err := s.client.mutate(ctx, http.MethodDelete, "/api/clients", token, dto.IDRequestDTO{ID: id})
		return err
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}
	return s.ListClients(ctx)
}

// UploadImage загружает картинку (portfolio_image или client_logo) и возвращает её URL.
func (s *AdminSession) UploadImage(ctx context.Context, name string, r io.Reader, uploadContext string) (string, error) {
	var url string
	err := s.authorized(func(token string) error {
		var err error
		url, err = s.client.uploadImage(ctx, token, name, r, uploadContext)
		return err
	})
	if err != nil {
		s.fail(err)
		return "", err
	}
	return url, nil
}
