package dto

import (
	"time"

	"print3d-service/internal/entities"
)

// CreateOrderDTO - тело публичной заявки. Имена полей в camelCase, как их шлёт форма.
type CreateOrderDTO struct {
	Length       float64 `json:"length" validate:"required,gte=0.01,lte=99999999.99"`
	Width        float64 `json:"width" validate:"required,gte=0.01,lte=99999999.99"`
	Height       float64 `json:"height" validate:"required,gte=0.01,lte=99999999.99"`
	Plastic      string  `json:"plastic" validate:"required,plastic"`
	Color        string  `json:"color" validate:"required,order_color"`
	Infill       int     `json:"infill" validate:"required,min=10,max=100"`
	Quantity     int     `json:"quantity" validate:"required,min=1,max=2147483647"`
	CustomerType string  `json:"customerType" validate:"required,customer_type"`
	CompanyName  string  `json:"companyName,omitempty" validate:"required_if=CustomerType legal,max=255"`
	INN          string  `json:"inn,omitempty" validate:"required_if=CustomerType legal,inn"`
	Email        string  `json:"email" validate:"required,email,max=255"`
	Phone        string  `json:"phone,omitempty" validate:"omitempty,max=32"`
	Description  string  `json:"description,omitempty" validate:"max=5000"`
	FileName     string  `json:"fileName,omitempty" validate:"required_with=FileBase64,max=255"`
	FileBase64   string  `json:"fileBase64,omitempty"`
}

type UpdateOrderStatusDTO struct {
	OrderID uint64 `json:"order_id" validate:"required"`
	Status  string `json:"status" validate:"required,order_status"`
}

type DeleteOrderDTO struct {
	OrderID uint64 `json:"order_id" validate:"required"`
}

type OrderDTO struct {
	ID           uint64    `json:"id"`
	OrderNumber  string    `json:"order_number"`
	CustomerType string    `json:"customer_type"`
	CompanyName  string    `json:"company_name"`
	INN          string    `json:"inn"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Length       float64   `json:"length"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	PlasticType  string    `json:"plastic_type"`
	Color        string    `json:"color"`
	Infill       int       `json:"infill"`
	Quantity     int       `json:"quantity"`
	Description  string    `json:"description"`
	FileURL      string    `json:"file_url"`
	FileName     string    `json:"file_name"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewOrderDTO(o entities.Order) OrderDTO {
	return OrderDTO{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerType: o.CustomerType,
		CompanyName:  o.CompanyName,
		INN:          o.INN,
		Email:        o.Email,
		Phone:        o.Phone,
		Length:       o.Length,
		Width:        o.Width,
		Height:       o.Height,
		PlasticType:  o.PlasticType,
		Color:        o.Color,
		Infill:       o.Infill,
		Quantity:     o.Quantity,
		Description:  o.Description,
		FileURL:      o.FileURL,
		FileName:     o.FileName,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

type OrdersListDTO struct {
	Orders []OrderDTO `json:"orders"`
}

type OrderConfirmationDTO struct {
	Success     bool   `json:"success"`
	OrderNumber string `json:"orderNumber"`
	Email       string `json:"email,omitempty"`
}

type OrderStatusUpdatedDTO struct {
	Success bool   `json:"success"`
	OrderID uint64 `json:"order_id"`
	Status  string `json:"status"`
}
