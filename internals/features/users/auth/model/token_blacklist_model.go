package model

import (
	"time"
)

// TokenBlacklist menampung access token yang sudah di-logout.
// Baris kadaluarsa dibersihkan scheduler.
type TokenBlacklist struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Token     string     `gorm:"type:text;not null;index" json:"token"`
	ExpiredAt time.Time  `gorm:"not null" json:"expired_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
