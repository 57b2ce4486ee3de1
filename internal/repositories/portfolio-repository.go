package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"print3d-service/internal/dto"
	"print3d-service/internal/entities"
	apperrors "print3d-service/pkg/errors"
)

const portfolioTable = "portfolio"

var portfolioFields = []string{"id", "title", "description", "image_url", "display_order", "is_visible", "created_at", "updated_at"}

type PortfolioRepositoryInterface interface {
	GetPortfolio(ctx context.Context, onlyVisible bool) ([]entities.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, item entities.PortfolioItem) (uint64, error)
	UpdatePortfolioItem(ctx context.Context, upd dto.UpdatePortfolioDTO) error
	DeletePortfolioItem(ctx context.Context, id uint64) error
}

type PortfolioRepository struct{ storage querier }

func NewPortfolioRepository(storage *pgxpool.Pool) PortfolioRepositoryInterface {
	return &PortfolioRepository{storage: storage}
}

func (r *PortfolioRepository) GetPortfolio(ctx context.Context, onlyVisible bool) ([]entities.PortfolioItem, error) {
	builder := psql.Select(portfolioFields...).From(portfolioTable)
	if onlyVisible {
		builder = builder.Where(sq.Eq{"is_visible": true})
	}
	query, args, err := builder.OrderBy("display_order ASC", "created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetPortfolio: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения портфолио: %w", err)
	}
	defer rows.Close()

	items := make([]entities.PortfolioItem, 0)
	for rows.Next() {
		var p entities.PortfolioItem
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.DisplayOrder, &p.IsVisible, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *PortfolioRepository) CreatePortfolioItem(ctx context.Context, item entities.PortfolioItem) (uint64, error) {
	query, args, err := psql.Insert(portfolioTable).
		Columns("title", "description", "image_url", "display_order", "is_visible", "created_at", "updated_at").
		Values(item.Title, item.Description, item.ImageURL, item.DisplayOrder, item.IsVisible, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса CreatePortfolioItem: %w", err)
	}

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		return 0, fmt.Errorf("ошибка создания работы портфолио: %w", err)
	}
	return newID, nil
}

// UpdatePortfolioItem обновляет только переданные поля.
func (r *PortfolioRepository) UpdatePortfolioItem(ctx context.Context, upd dto.UpdatePortfolioDTO) error {
	builder := psql.Update(portfolioTable).Set("updated_at", sq.Expr("NOW()"))
	if upd.Title.Valid {
		builder = builder.Set("title", upd.Title.String)
	}
	if upd.Description.Valid {
		builder = builder.Set("description", upd.Description.String)
	}
	if upd.ImageURL.Valid {
		builder = builder.Set("image_url", upd.ImageURL.String)
	}
	if upd.DisplayOrder.Valid {
		builder = builder.Set("display_order", upd.DisplayOrder.Int)
	}
	if upd.IsVisible.Valid {
		builder = builder.Set("is_visible", upd.IsVisible.Bool)
	}

	query, args, err := builder.Where(sq.Eq{"id": upd.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса UpdatePortfolioItem: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления портфолио: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PortfolioRepository) DeletePortfolioItem(ctx context.Context, id uint64) error {
	query, args, err := psql.Delete(portfolioTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса DeletePortfolioItem: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка удаления портфолио: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
