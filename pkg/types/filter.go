package types

import (
	"net/url"
	"strings"
)

// OrderFilter - фильтр списка заявок: статус ("all" или пусто - любой)
// и подстрока email без учёта регистра.
type OrderFilter struct {
	Status string `json:"status,omitempty"`
	Email  string `json:"email,omitempty"`
}

func ParseOrderFilter(values url.Values) OrderFilter {
	return OrderFilter{
		Status: strings.TrimSpace(values.Get("status")),
		Email:  strings.TrimSpace(values.Get("email")),
	}
}

// MatchesAnyStatus сообщает, что фильтр по статусу не задан.
func (f OrderFilter) MatchesAnyStatus() bool {
	return f.Status == "" || f.Status == "all"
}

// Statuses возвращает перечисленные через запятую статусы или nil, если фильтр не задан.
// Список через запятую понимает только серверная выборка GET /api/orders.
func (f OrderFilter) Statuses() []string {
	if f.MatchesAnyStatus() {
		return nil
	}
	var out []string
	for _, st := range strings.Split(f.Status, ",") {
		if st = strings.TrimSpace(st); st != "" {
			out = append(out, st)
		}
	}
	return out
}

// Matches применяет фильтр к одной заявке: статус сравнивается целиком,
// без разбора списка через запятую.
func (f OrderFilter) Matches(status, email string) bool {
	if !f.MatchesAnyStatus() && status != f.Status {
		return false
	}
	return f.Email == "" || strings.Contains(strings.ToLower(email), strings.ToLower(f.Email))
}
