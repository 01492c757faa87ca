package checkout

import (
	"keyshop-backend/internal/models"
	"time"
)

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// OrderResponse is the per-line purchase record returned from checkout and
// the order history. The license key is only disclosed once the order is
// completed.
type OrderResponse struct {
	ID            string             `json:"id"`
	ProductID     uint               `json:"product_id"`
	ProductTitle  string             `json:"product_title,omitempty"`
	Amount        float64            `json:"amount"`
	Status        models.OrderStatus `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	LicenseKey    string             `json:"license_key,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type CheckoutResponse struct {
	Orders      []OrderResponse `json:"orders"`
	TotalAmount float64         `json:"total_amount"`
}

func NewOrderResponse(o models.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		ProductID:     o.ProductID,
		ProductTitle:  o.Product.Title,
		Amount:        o.Amount,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
	if o.Status == models.OrderStatusCompleted {
		resp.LicenseKey = o.LicenseKey
	}
	return resp
}
