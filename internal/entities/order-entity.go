package entities

import "print3d-service/pkg/types"

// Order - заявка на печать. Создаётся публичной формой, дальше меняется только администратором.
type Order struct {
	ID           uint64  `json:"id"`
	OrderNumber  string  `json:"order_number"`
	CustomerType string  `json:"customer_type"`
	CompanyName  string  `json:"company_name"`
	INN          string  `json:"inn"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	PlasticType  string  `json:"plastic_type"`
	Color        string  `json:"color"`
	Infill       int     `json:"infill"`
	Quantity     int     `json:"quantity"`
	Description  string  `json:"description"`
	FileURL      string  `json:"file_url"`
	FileName     string  `json:"file_name"`
	Status       string  `json:"status"`

	types.BaseEntity
}
