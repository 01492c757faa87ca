package models

import "time"

// Product is a single-inventory digital good. Once IsSold flips to true the
// license key has been consumed by a completed order and the product must
// never be purchasable again.
type Product struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string  `gorm:"not null"`
	Description string  `gorm:"type:text;not null"`
	Price       float64 `gorm:"type:decimal(20,8);not null"`
	ImageURL    string
	CategoryID  uint     `gorm:"index;not null"`
	Category    Category `gorm:"foreignKey:CategoryID"`
	IsFeatured  bool     `gorm:"not null;default:false"`
	IsActive    bool     `gorm:"not null"`
	IsSold      bool     `gorm:"not null;default:false"`
	LicenseKey  string   `json:"-"`
}

// Purchasable reports whether the product can still be added to a cart.
func (p *Product) Purchasable() bool {
	return p.IsActive && !p.IsSold
}
