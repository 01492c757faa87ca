package models

import "time"

const (
	TopUpStatusPending   = "pending"
	TopUpStatusPaid      = "paid"
	TopUpStatusCancelled = "cancelled"
)

// TopUpOrder tracks a balance deposit made through an external payment
// gateway. It stays pending until the signed notify callback completes it.
type TopUpOrder struct {
	ID          string  `gorm:"primarykey;type:varchar(36)"`
	UserID      uint    `gorm:"index;not null"`
	Amount      float64 `gorm:"type:decimal(20,8);not null"`
	Status      string  `gorm:"type:varchar(20);index;not null;default:'pending'"`
	PaymentUUID string  `gorm:"type:varchar(36)"`
	ExternalID  string  `gorm:"type:varchar(100)"` // gateway-side trade number
	Remark      string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
