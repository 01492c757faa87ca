package product

import (
	"keyshop-backend/internal/models"
	"time"
)

type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	IsFeatured  bool    `json:"is_featured"`
	LicenseKey  string  `json:"license_key" binding:"required"`
}

// UpdateProductRequest is a partial update; absent fields are left unchanged.
type UpdateProductRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	ImageURL    *string  `json:"image_url,omitempty"`
	CategoryID  *uint    `json:"category_id,omitempty"`
	IsFeatured  *bool    `json:"is_featured,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
	LicenseKey  *string  `json:"license_key,omitempty"`
}

// AdminProductResponse includes the license key; this view never leaves the
// admin surface.
type AdminProductResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	CategoryID  uint      `json:"category_id"`
	Category    string    `json:"category"`
	IsFeatured  bool      `json:"is_featured"`
	IsActive    bool      `json:"is_active"`
	IsSold      bool      `json:"is_sold"`
	LicenseKey  string    `json:"license_key"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newAdminProductResponse(p models.Product) AdminProductResponse {
	return AdminProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
		Category:    p.Category.Name,
		IsFeatured:  p.IsFeatured,
		IsActive:    p.IsActive,
		IsSold:      p.IsSold,
		LicenseKey:  p.LicenseKey,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type AdminProductListResponse struct {
	Products []AdminProductResponse `json:"products"`
}
