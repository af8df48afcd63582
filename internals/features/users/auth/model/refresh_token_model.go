package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken menyimpan hash HMAC dari refresh token aktif (rotasi:
// token lama dihapus saat refresh berhasil).
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash []byte    `gorm:"column:token_hash;type:bytea;not null;uniqueIndex" json:"-"`
	ExpiredAt time.Time `gorm:"not null" json:"expired_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
