package models

import "time"

type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Email     string  `gorm:"uniqueIndex;not null"`
	Username  string  `gorm:"uniqueIndex;not null"`
	Password  string  `gorm:"not null" json:"-"`
	Role      string  `gorm:"not null;default:'user'"`
	Balance   float64 `gorm:"type:decimal(20,8);not null;default:0"`
	Version   int     `gorm:"default:1"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
