package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentConfig stores gateway credentials for balance top-ups. Config is an
// opaque JSON blob interpreted by the matching payment driver.
type PaymentConfig struct {
	ID            uint   `gorm:"primarykey"`
	UUID          string `gorm:"uniqueIndex;type:varchar(36);not null"`
	Name          string `gorm:"not null"`
	PaymentMethod string `gorm:"type:varchar(50);not null"` // e.g. "epay"
	Config        datatypes.JSON
	Enable        bool `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
