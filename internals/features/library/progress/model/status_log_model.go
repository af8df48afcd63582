package model

import (
	"time"

	"github.com/google/uuid"
)

// StatusLogModel adalah catatan progress membaca.
// Position 0 = sentinel "paused / disimpan dulu", bukan posisi nol.
// Append-only: engine analitik tidak pernah mengubah baris yang sudah ada.
type StatusLogModel struct {
	StatusLogID        uuid.UUID `gorm:"column:status_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"status_log_id"`
	StatusLogBookID    uuid.UUID `gorm:"column:status_log_book_id;type:uuid;not null;index" json:"status_log_book_id"`
	StatusLogPosition  int       `gorm:"column:status_log_position;not null" json:"status_log_position"`
	StatusLogUserID    uuid.UUID `gorm:"column:status_log_user_id;type:uuid;not null;index" json:"status_log_user_id"`
	StatusLogCreatedAt time.Time `gorm:"column:status_log_created_at;autoCreateTime;index" json:"status_log_created_at"`
}

func (StatusLogModel) TableName() string {
	return "status_logs"
}
