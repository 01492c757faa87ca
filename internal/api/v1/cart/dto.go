package cart

import (
	"keyshop-backend/internal/api/v1/product"
	"keyshop-backend/internal/models"
)

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,gte=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// CartItemResponse is a cart line with the joined product view.
type CartItemResponse struct {
	ID       uint                    `json:"id"`
	Quantity int                     `json:"quantity"`
	Product  product.ProductResponse `json:"product"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
	Count int                `json:"count"`
}

func newCartItemResponse(item models.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:       item.ID,
		Quantity: item.Quantity,
		Product:  product.NewProductResponse(item.Product),
	}
}
