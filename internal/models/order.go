package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

// Order is a single product purchase record, not a multi-line invoice:
// checkout creates one order per cart line. LicenseKey is snapshotted from
// the product at creation time so later catalog edits cannot change what the
// customer bought.
type Order struct {
	ID            string `gorm:"primarykey;type:varchar(36)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserID        uint        `gorm:"index;not null"`
	ProductID     uint        `gorm:"index;not null"`
	Product       Product     `gorm:"foreignKey:ProductID"`
	Amount        float64     `gorm:"type:decimal(20,8);not null"`
	Status        OrderStatus `gorm:"type:varchar(20);index;not null;default:'PENDING'"`
	PaymentMethod string      `gorm:"type:varchar(50);not null"`
	LicenseKey    string
}
