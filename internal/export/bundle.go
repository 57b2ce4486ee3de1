package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"print3d-service/internal/dto"
)

// ErrMissingDatabase - в файле импорта нет ключа "database".
var ErrMissingDatabase = errors.New("неверный формат файла: отсутствует раздел database")

type ProjectInfo struct {
	Name       string `json:"name"`
	ExportDate string `json:"export_date"`
	Platform   string `json:"platform"`
	Domain     string `json:"domain"`
}

type TechStack struct {
	Frontend  string `json:"frontend"`
	Backend   string `json:"backend"`
	Database  string `json:"database"`
	UILibrary string `json:"ui_library"`
}

type BackendFunction struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type Database struct {
	Orders    []dto.OrderDTO         `json:"orders"`
	Portfolio []dto.PortfolioItemDTO `json:"portfolio"`
	Clients   []dto.ClientDTO        `json:"clients"`
}

type Secrets struct {
	Note     string   `json:"note"`
	Required []string `json:"required"`
}

// Bundle - полный архив: данные БД плюс справочные сведения о проекте. Значения секретов не выгружаются.
type Bundle struct {
	ProjectInfo      ProjectInfo       `json:"project_info"`
	TechStack        TechStack         `json:"tech_stack"`
	BackendFunctions []BackendFunction `json:"backend_functions"`
	Database         *Database         `json:"database"`
	Secrets          Secrets           `json:"secrets"`
}

// NewBundle собирает архив. baseURL - адрес API, на который указывают backend_functions.
func NewBundle(baseURL, domain string, exportedAt time.Time, db Database) *Bundle {
	if db.Orders == nil {
		db.Orders = []dto.OrderDTO{}
	}
	if db.Portfolio == nil {
		db.Portfolio = []dto.PortfolioItemDTO{}
	}
	if db.Clients == nil {
		db.Clients = []dto.ClientDTO{}
	}

	return &Bundle{
		ProjectInfo: ProjectInfo{
			Name:       "3D Print Service",
			ExportDate: exportedAt.UTC().Format(time.RFC3339),
			Platform:   "print3d-service",
			Domain:     domain,
		},
		TechStack: TechStack{
			Frontend:  "SPA (ru/en/zh)",
			Backend:   "Go: echo, pgx, Redis",
			Database:  "PostgreSQL",
			UILibrary: "-",
		},
		BackendFunctions: []BackendFunction{
			{Name: "orders-get", URL: baseURL + "/api/orders", Description: "Управление заявками"},
			{Name: "send-order", URL: baseURL + "/api/orders", Description: "Создание новой заявки"},
			{Name: "order-update-status", URL: baseURL + "/api/orders/status", Description: "Обновление статуса заявки"},
			{Name: "portfolio-admin", URL: baseURL + "/api/portfolio", Description: "Управление портфолио"},
			{Name: "clients-get", URL: baseURL + "/api/clients", Description: "Управление клиентами"},
		},
		Database: &db,
		Secrets: Secrets{
			Note: "Значения секретов не экспортируются. Указаны только названия.",
			Required: []string{
				"DATABASE_URL - строка подключения к PostgreSQL",
				"ADMIN_TOKEN - токен доступа к админ-панели",
				"SMTP_PASSWORD - пароль почтового ящика для уведомлений",
			},
		},
	}
}

// BundleFileName - имя файла вида 3DPrint_Complete_Export_31-01-2025.json.
func BundleFileName(now time.Time) string {
	return "3DPrint_Complete_Export_" + now.Format("02-01-2006") + ".json"
}

func WriteBundle(w io.Writer, b *Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// ReadBundle разбирает архив. Кроме наличия раздела database ничего не проверяется.
func ReadBundle(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл импорта: %w", err)
	}
	if b.Database == nil {
		return nil, ErrMissingDatabase
	}
	return &b, nil
}
