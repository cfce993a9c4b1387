package product

import "time"

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gt=0"`
	Unit        string  `json:"unit"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name"`
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
	UnitPrice   *float64 `json:"unit_price" binding:"omitempty,gt=0"`
	Unit        string   `json:"unit"`
	IsActive    *bool    `json:"is_active"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku,omitempty"`
	Description string    `json:"description,omitempty"`
	UnitPrice   float64   `json:"unit_price"`
	Unit        string    `json:"unit"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
