package dto

import (
	"time"

	"print3d-service/internal/entities"

	"github.com/aarondl/null/v8"
)

type CreateClientDTO struct {
	Name         string    `json:"name" validate:"required,max=255"`
	LogoURL      string    `json:"logo_url" validate:"required,max=1024"`
	DisplayOrder int       `json:"display_order"`
	IsVisible    null.Bool `json:"is_visible"`
}

type UpdateClientDTO struct {
	ID           uint64      `json:"id" validate:"required"`
	Name         null.String `json:"name" validate:"omitempty,max=255"`
	LogoURL      null.String `json:"logo_url" validate:"omitempty,max=1024"`
	DisplayOrder null.Int    `json:"display_order"`
	IsVisible    null.Bool   `json:"is_visible"`
}

type ClientDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logo_url"`
	DisplayOrder int       `json:"display_order"`
	IsVisible    bool      `json:"is_visible"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewClientDTO(c entities.Client) ClientDTO {
	return ClientDTO{
		ID:           c.ID,
		Name:         c.Name,
		LogoURL:      c.LogoURL,
		DisplayOrder: c.DisplayOrder,
		IsVisible:    c.IsVisible,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type ClientsListDTO struct {
	Clients []ClientDTO `json:"clients"`
}
