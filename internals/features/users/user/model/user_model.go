package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel merepresentasikan tabel users. Email dipakai sebagai login
// field; username digenerate dari bagian lokal email saat registrasi.
type UserModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName    string         `gorm:"size:150;unique;not null" json:"username"`
	Email       string         `gorm:"size:255;unique;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	FirstName   string         `gorm:"size:150" json:"first_name"`
	LastName    string         `gorm:"size:150" json:"last_name"`
	Avatar      *string        `gorm:"size:255" json:"avatar"`
	GoogleID    *string        `gorm:"size:255;unique" json:"-"`
	IsSuperuser bool           `gorm:"not null;default:false" json:"is_superuser"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	Preferences datatypes.JSON `gorm:"type:jsonb" json:"preferences"`
	DateJoined  time.Time      `gorm:"autoCreateTime" json:"date_joined"`
}

func (UserModel) TableName() string {
	return "users"
}

// FullName: "LastName FirstName", fallback ke username kalau kosong.
func (u *UserModel) FullName() string {
	full := strings.TrimSpace(u.LastName + " " + u.FirstName)
	if full == "" {
		return u.UserName
	}
	return full
}
