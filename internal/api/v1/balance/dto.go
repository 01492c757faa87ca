package balance

import (
	"keyshop-backend/internal/models"
	"time"
)

type DepositRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

type TransactionResponse struct {
	ID            uint                   `json:"id"`
	Amount        float64                `json:"amount"`
	BalanceBefore float64                `json:"balance_before"`
	BalanceAfter  float64                `json:"balance_after"`
	Type          models.TransactionType `json:"type"`
	Description   string                 `json:"description"`
	CreatedAt     time.Time              `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
