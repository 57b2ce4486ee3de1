package entities

import "print3d-service/pkg/types"

type PortfolioItem struct {
	ID           uint64 `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
	IsVisible    bool   `json:"is_visible"`

	types.BaseEntity
}
