package product

import (
	"keyshop-backend/internal/models"
	"time"
)

// CategoryResponse is the slim category view embedded in product responses.
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ProductResponse is the public catalog view of a product. License keys are
// never exposed through the catalog.
type ProductResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	ImageURL    string           `json:"image_url,omitempty"`
	Category    CategoryResponse `json:"category"`
	IsFeatured  bool             `json:"is_featured"`
	IsActive    bool             `json:"is_active"`
	IsSold      bool             `json:"is_sold"`
	CreatedAt   time.Time        `json:"created_at"`
}

func NewProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category: CategoryResponse{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
		IsFeatured: p.IsFeatured,
		IsActive:   p.IsActive,
		IsSold:     p.IsSold,
		CreatedAt:  p.CreatedAt,
	}
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}
