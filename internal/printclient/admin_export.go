package printclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"print3d-service/internal/dto"
	"print3d-service/internal/export"
)

// ExportToSpreadsheet пишет переданный (обычно уже отфильтрованный) список в xlsx.
// Сеть не используется.
func ExportToSpreadsheet(w io.Writer, orders []dto.OrderDTO) error {
	return export.WriteOrdersSpreadsheet(w, orders)
}

// ExportBundle выгружает заявки, портфолио и клиентов одним JSON-файлом.
// Раздел, который не удалось получить, выгружается пустым.
func (s *AdminSession) ExportBundle(ctx context.Context, w io.Writer, now time.Time) error {
	var db export.Database

	orders, err := s.ListOrders(ctx)
	if errors.Is(err, ErrUnauthorized) {
		return err
	}
	if err != nil {
		s.client.logger.Warn("Экспорт: заявки не получены", zap.Error(err))
	}
	db.Orders = orders

	portfolio, err := s.ListPortfolio(ctx)
	if errors.Is(err, ErrUnauthorized) {
		return err
	}
	if err != nil {
		s.client.logger.Warn("Экспорт: портфолио не получено", zap.Error(err))
	}
	db.Portfolio = portfolio

	clients, err := s.ListClients(ctx)
	if errors.Is(err, ErrUnauthorized) {
		return err
	}
	if err != nil {
		s.client.logger.Warn("Экспорт: клиенты не получены", zap.Error(err))
	}
	db.Clients = clients

	domain := s.client.baseURL
	if u, err := url.Parse(s.client.baseURL); err == nil && u.Host != "" {
		domain = u.Hostname()
	}
	return export.WriteBundle(w, export.NewBundle(s.client.baseURL, domain, now, db))
}

type ImportResult struct {
	Succeeded int
	Failed    int
}

// ImportBundle заново создаёт работы портфолио и клиентов из архива (id не переносится).
// Заявки не импортируются. После импорта списки перечитываются.
func (s *AdminSession) ImportBundle(ctx context.Context, r io.Reader) (ImportResult, error) {
	var res ImportResult

	bundle, err := export.ReadBundle(r)
	if err != nil {
		return res, err
	}

	create := func(path string, body interface{}) error {
		err := s.authorized(func(token string) error {
			_, err := s.client.mutate(ctx, http.MethodPost, path, token, body)
			return err
		})
		if err != nil {
			res.Failed++
			s.client.logger.Warn("Импорт: запись не создана", zap.String("path", path), zap.Error(err))
			return err
		}
		res.Succeeded++
		return nil
	}

	for _, item := range bundle.Database.Portfolio {
		err := create("/api/portfolio", dto.CreatePortfolioDTO{
			Title:        item.Title,
			Description:  item.Description,
			ImageURL:     item.ImageURL,
			DisplayOrder: item.DisplayOrder,
			IsVisible:    null.BoolFrom(item.IsVisible),
		})
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotAuthenticated) {
			return res, err
		}
	}
	for _, item := range bundle.Database.Clients {
		err := create("/api/clients", dto.CreateClientDTO{
			Name:         item.Name,
			LogoURL:      item.LogoURL,
			DisplayOrder: item.DisplayOrder,
			IsVisible:    null.BoolFrom(item.IsVisible),
		})
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotAuthenticated) {
			return res, err
		}
	}

	if _, err := s.ListPortfolio(ctx); err != nil {
		return res, err
	}
	if _, err := s.ListClients(ctx); err != nil {
		return res, err
	}
	return res, nil
}
