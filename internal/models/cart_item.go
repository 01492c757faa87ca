package models

import "time"

// CartItem holds at most one row per (user, product) pair; adding an already
// carted product increments Quantity instead of inserting a duplicate.
type CartItem struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint    `gorm:"uniqueIndex:idx_cart_user_product;not null"`
	ProductID uint    `gorm:"uniqueIndex:idx_cart_user_product;not null"`
	Product   Product `gorm:"foreignKey:ProductID"`
	Quantity  int     `gorm:"not null;default:1"`
}
