package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"print3d-service/internal/entities"
	db "print3d-service/internal/infrastructure/bd"
	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/types"
	"print3d-service/pkg/utils"
)

const orderTable = "orders"

var orderFields = []string{
	"id", "order_number", "customer_type", "company_name", "inn", "email", "phone",
	"length", "width", "height", "plastic_type", "color", "infill", "quantity",
	"description", "file_url", "file_name", "status", "created_at", "updated_at",
}

type dbOrder struct {
	ID           uint64
	OrderNumber  string
	CustomerType string
	CompanyName  sql.NullString
	INN          sql.NullString
	Email        string
	Phone        sql.NullString
	Length       float64
	Width        float64
	Height       float64
	PlasticType  string
	Color        string
	Infill       int
	Quantity     int
	Description  sql.NullString
	FileURL      sql.NullString
	FileName     sql.NullString
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (o *dbOrder) scanTargets() []interface{} {
	return []interface{}{
		&o.ID, &o.OrderNumber, &o.CustomerType, &o.CompanyName, &o.INN, &o.Email, &o.Phone,
		&o.Length, &o.Width, &o.Height, &o.PlasticType, &o.Color, &o.Infill, &o.Quantity,
		&o.Description, &o.FileURL, &o.FileName, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	}
}

func (o *dbOrder) toEntity() entities.Order {
	order := entities.Order{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerType: o.CustomerType,
		CompanyName:  o.CompanyName.String,
		INN:          o.INN.String,
		Email:        o.Email,
		Phone:        o.Phone.String,
		Length:       o.Length,
		Width:        o.Width,
		Height:       o.Height,
		PlasticType:  o.PlasticType,
		Color:        o.Color,
		Infill:       o.Infill,
		Quantity:     o.Quantity,
		Description:  o.Description.String,
		FileURL:      o.FileURL.String,
		FileName:     o.FileName.String,
		Status:       o.Status,
	}
	order.CreatedAt = o.CreatedAt
	order.UpdatedAt = o.UpdatedAt
	return order
}

type OrderRepositoryInterface interface {
	CreateOrder(ctx context.Context, order *entities.Order) error
	GetOrders(ctx context.Context, filter types.OrderFilter) ([]entities.Order, error)
	FindOrder(ctx context.Context, id uint64) (*entities.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (*entities.Order, error)
	DeleteOrder(ctx context.Context, id uint64) (*entities.Order, error)
}

type OrderRepository struct {
	storage querier
	logger  *zap.Logger
}

// Коды ошибок PostgreSQL, которые означают неверные данные заявки, а не сбой БД.
const (
	pgCheckViolation    = "23514"
	pgNumericOutOfRange = "22003"
)

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

// CreateOrder вставляет заявку и заполняет ID и временные метки из БД.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	query, args, err := psql.Insert(orderTable).
		Columns(
			"order_number", "customer_type", "company_name", "inn", "email", "phone",
			"length", "width", "height", "plastic_type", "color", "infill", "quantity",
			"description", "file_url", "file_name", "status", "created_at", "updated_at",
		).
		Values(
			order.OrderNumber, order.CustomerType, utils.NilIfEmpty(order.CompanyName), utils.NilIfEmpty(order.INN),
			order.Email, utils.NilIfEmpty(order.Phone),
			order.Length, order.Width, order.Height, order.PlasticType, order.Color, order.Infill, order.Quantity,
			utils.NilIfEmpty(order.Description), utils.NilIfEmpty(order.FileURL), utils.NilIfEmpty(order.FileName),
			order.Status, sq.Expr("NOW()"), sq.Expr("NOW()"),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса CreateOrder: %w", err)
	}

	if err := r.storage.QueryRow(ctx, query, args...).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgCheckViolation:
				return apperrors.NewHttpError(http.StatusBadRequest, "Заявка не прошла проверку данных", err, nil)
			case pgNumericOutOfRange:
				return apperrors.NewHttpError(http.StatusBadRequest, "Числовое значение вне допустимого диапазона", err, nil)
			}
		}
		return fmt.Errorf("ошибка создания заявки: %w", err)
	}
	return nil
}

// GetOrders возвращает заявки от новых к старым.
func (r *OrderRepository) GetOrders(ctx context.Context, filter types.OrderFilter) ([]entities.Order, error) {
	builder := psql.Select(orderFields...).From(orderTable)
	builder = db.ApplyOrderFilter(builder, filter, db.OrderColumns{Status: "status", Email: "email"})

	query, args, err := builder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса GetOrders: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заявок: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		var row dbOrder
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, err
		}
		orders = append(orders, row.toEntity())
	}
	return orders, rows.Err()
}

func (r *OrderRepository) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	query, args, err := psql.Select(orderFields...).From(orderTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindOrder: %w", err)
	}
	return r.scanOne(r.storage.QueryRow(ctx, query, args...))
}

// UpdateStatus меняет статус без проверки графа переходов и обновляет updated_at.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint64, status string) (*entities.Order, error) {
	query, args, err := psql.Update(orderTable).
		Set("status", status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinFields(orderFields)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса UpdateStatus: %w", err)
	}
	return r.scanOne(r.storage.QueryRow(ctx, query, args...))
}

// DeleteOrder удаляет заявку безвозвратно и возвращает удалённую строку.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	query, args, err := psql.Delete(orderTable).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinFields(orderFields)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса DeleteOrder: %w", err)
	}
	return r.scanOne(r.storage.QueryRow(ctx, query, args...))
}

func (r *OrderRepository) scanOne(row pgx.Row) (*entities.Order, error) {
	var dbRow dbOrder
	if err := row.Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	order := dbRow.toEntity()
	return &order, nil
}
