package seeders

import (
	"context"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// SeedPortfolio наполняет портфолио демонстрационными работами.
// Если force=false и таблица не пуста, ничего не делает.
func SeedPortfolio(ctx context.Context, db *pgxpool.Pool, force bool) error {
	log.Println("▶️  Наполнение таблицы 'portfolio'...")

	insert := psql.Insert("portfolio").Columns("title", "description", "image_url", "display_order", "is_visible")
	for _, p := range portfolioData {
		insert = insert.Values(p.Title, p.Description, p.ImageURL, p.DisplayOrder, true)
	}
	n, err := seedTable(ctx, db, "portfolio", insert, force)
	if err != nil {
		return err
	}
	log.Printf("✅ Портфолио: добавлено %d записей", n)
	return nil
}

// SeedClients наполняет список клиентов демонстрационными логотипами.
func SeedClients(ctx context.Context, db *pgxpool.Pool, force bool) error {
	log.Println("▶️  Наполнение таблицы 'clients'...")

	insert := psql.Insert("clients").Columns("name", "logo_url", "display_order", "is_visible")
	for _, c := range clientsData {
		insert = insert.Values(c.Name, c.LogoURL, c.DisplayOrder, true)
	}
	n, err := seedTable(ctx, db, "clients", insert, force)
	if err != nil {
		return err
	}
	log.Printf("✅ Клиенты: добавлено %d записей", n)
	return nil
}

func seedTable(ctx context.Context, db *pgxpool.Pool, table string, insert sq.InsertBuilder, force bool) (int64, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if !force {
		var count int64
		countSQL, args, err := psql.Select("COUNT(*)").From(table).ToSql()
		if err != nil {
			return 0, err
		}
		if err := tx.QueryRow(ctx, countSQL, args...).Scan(&count); err != nil {
			return 0, fmt.Errorf("не удалось посчитать записи в %s: %w", table, err)
		}
		if count > 0 {
			log.Printf("    - Таблица '%s' уже содержит %d записей, пропуск (используйте -force)", table, count)
			return 0, nil
		}
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ошибка вставки в %s: %w", table, err)
	}
	return tag.RowsAffected(), tx.Commit(ctx)
}
