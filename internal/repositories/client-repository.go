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

const clientTable = "clients"

var clientFields = []string{"id", "name", "logo_url", "display_order", "is_visible", "created_at", "updated_at"}

type ClientRepositoryInterface interface {
	GetClients(ctx context.Context, onlyVisible bool) ([]entities.Client, error)
	CreateClient(ctx context.Context, client entities.Client) (uint64, error)
	UpdateClient(ctx context.Context, upd dto.UpdateClientDTO) error
	DeleteClient(ctx context.Context, id uint64) error
}

type ClientRepository struct{ storage querier }

func NewClientRepository(storage *pgxpool.Pool) ClientRepositoryInterface {
	return &ClientRepository{storage: storage}
}

func (r *ClientRepository) GetClients(ctx context.Context, onlyVisible bool) ([]entities.Client, error) {
	builder := psql.Select(clientFields...).From(clientTable)
	if onlyVisible {
		builder = builder.Where(sq.Eq{"is_visible": true})
	}
	query, args, err := builder.OrderBy("display_order ASC", "created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetClients: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения клиентов: %w", err)
	}
	defer rows.Close()

	clients := make([]entities.Client, 0)
	for rows.Next() {
		var c entities.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.LogoURL, &c.DisplayOrder, &c.IsVisible, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) CreateClient(ctx context.Context, client entities.Client) (uint64, error) {
	query, args, err := psql.Insert(clientTable).
		Columns("name", "logo_url", "display_order", "is_visible", "created_at", "updated_at").
		Values(client.Name, client.LogoURL, client.DisplayOrder, client.IsVisible, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса CreateClient: %w", err)
	}

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		return 0, fmt.Errorf("ошибка создания клиента: %w", err)
	}
	return newID, nil
}

func (r *ClientRepository) UpdateClient(ctx context.Context, upd dto.UpdateClientDTO) error {
	builder := psql.Update(clientTable).Set("updated_at", sq.Expr("NOW()"))
	if upd.Name.Valid {
		builder = builder.Set("name", upd.Name.String)
	}
	if upd.LogoURL.Valid {
		builder = builder.Set("logo_url", upd.LogoURL.String)
	}
	if upd.DisplayOrder.Valid {
		builder = builder.Set("display_order", upd.DisplayOrder.Int)
	}
	if upd.IsVisible.Valid {
		builder = builder.Set("is_visible", upd.IsVisible.Bool)
	}

	query, args, err := builder.Where(sq.Eq{"id": upd.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса UpdateClient: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления клиента: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) DeleteClient(ctx context.Context, id uint64) error {
	query, args, err := psql.Delete(clientTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса DeleteClient: %w", err)
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка удаления клиента: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
