package dto

import (
	"time"

	"print3d-service/internal/entities"

	"github.com/aarondl/null/v8"
)

// CreatePortfolioDTO - IsVisible не передан => работа показывается.
type CreatePortfolioDTO struct {
	Title        string    `json:"title" validate:"required,max=255"`
	Description  string    `json:"description" validate:"max=5000"`
	ImageURL     string    `json:"image_url" validate:"required,max=1024"`
	DisplayOrder int       `json:"display_order"`
	IsVisible    null.Bool `json:"is_visible"`
}

// UpdatePortfolioDTO - частичное обновление: невалидные (не переданные) поля не трогаются.
type UpdatePortfolioDTO struct {
	ID           uint64      `json:"id" validate:"required"`
	Title        null.String `json:"title" validate:"omitempty,max=255"`
	Description  null.String `json:"description" validate:"omitempty,max=5000"`
	ImageURL     null.String `json:"image_url" validate:"omitempty,max=1024"`
	DisplayOrder null.Int    `json:"display_order"`
	IsVisible    null.Bool   `json:"is_visible"`
}

type PortfolioItemDTO struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	DisplayOrder int       `json:"display_order"`
	IsVisible    bool      `json:"is_visible"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewPortfolioItemDTO(p entities.PortfolioItem) PortfolioItemDTO {
	return PortfolioItemDTO{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		DisplayOrder: p.DisplayOrder,
		IsVisible:    p.IsVisible,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type PortfolioListDTO struct {
	Portfolio []PortfolioItemDTO `json:"portfolio"`
}
