package dto

import (
	"time"

	"gorm.io/datatypes"
)

type CreateProductRequest struct {
	SKU         string         `json:"sku" binding:"required,min=3,max=64"`
	Name        string         `json:"name" binding:"required,min=2,max=120"`
	Description string         `json:"description" binding:"omitempty,max=500"`
	Price       float64        `json:"price" binding:"required,gte=0"`
	Stock       int            `json:"stock" binding:"gte=0"`
	Attributes  map[string]any `json:"attributes" binding:"omitempty"`
}

type UpdateProductRequest struct {
	Name        string         `json:"name" binding:"omitempty,min=2,max=120"`
	Description string         `json:"description" binding:"omitempty,max=500"`
	Price       *float64       `json:"price" binding:"omitempty,gte=0"`
	Stock       *int           `json:"stock" binding:"omitempty,gte=0"`
	Attributes  map[string]any `json:"attributes" binding:"omitempty"`
}

type ProductResponse struct {
	ID          uint           `json:"id"`
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Price       float64        `json:"price"`
	Stock       int            `json:"stock"`
	Attributes  datatypes.JSON `json:"attributes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
