package entities

import "print3d-service/pkg/types"

// Client - логотип клиента в карусели на главной.
type Client struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	LogoURL      string `json:"logo_url"`
	DisplayOrder int    `json:"display_order"`
	IsVisible    bool   `json:"is_visible"`

	types.BaseEntity
}
