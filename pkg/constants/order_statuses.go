package constants

import "slices"

// --- СТАТУСЫ ЗАЯВОК (Совпадает с кодами в БД) ---
const (
	StatusNew        = "new"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"

	// StatusAll - значение фильтра, совпадающее с любым статусом.
	StatusAll = "all"
)

// OrderStatuses - все допустимые статусы. Переход возможен из любого в любой.
var OrderStatuses = []string{StatusNew, StatusProcessing, StatusCompleted, StatusCancelled}

// StatusLabels - подписи статусов для админки и выгрузки.
var StatusLabels = map[string]string{
	StatusNew:        "Новая",
	StatusProcessing: "В работе",
	StatusCompleted:  "Выполнена",
	StatusCancelled:  "Отменена",
}

func IsValidStatus(code string) bool {
	return slices.Contains(OrderStatuses, code)
}
