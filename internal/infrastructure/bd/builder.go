package db

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"print3d-service/pkg/types"
)

// OrderColumns - колонки, по которым фильтруется список заявок.
type OrderColumns struct {
	Status string
	Email  string
}

// ApplyOrderFilter добавляет к выборке условия фильтра заявок.
// Статус "all" или пустой не ограничивает выборку, несколько статусов можно передать через запятую.
func ApplyOrderFilter(builder sq.SelectBuilder, filter types.OrderFilter, cols OrderColumns) sq.SelectBuilder {
	switch statuses := filter.Statuses(); len(statuses) {
	case 0:
	case 1:
		builder = builder.Where(sq.Eq{cols.Status: statuses[0]})
	default:
		builder = builder.Where(sq.Eq{cols.Status: statuses})
	}

	if filter.Email != "" {
		builder = builder.Where(sq.ILike{cols.Email: "%" + EscapeLike(filter.Email) + "%"})
	}

	return builder
}

// EscapeLike экранирует спецсимволы шаблона LIKE, чтобы подстрока искалась буквально.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
