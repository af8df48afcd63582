package model

import (
	"time"

	"github.com/google/uuid"
)

type NoteModel struct {
	NoteID         uuid.UUID `gorm:"column:note_id;type:uuid;default:gen_random_uuid();primaryKey" json:"note_id"`
	NoteBookID     uuid.UUID `gorm:"column:note_book_id;type:uuid;not null;index" json:"note_book_id"`
	NotePosition   int       `gorm:"column:note_position;not null" json:"note_position"`
	NoteContent    string    `gorm:"column:note_content;type:text;not null" json:"note_content"`
	NoteQuoteText  *string   `gorm:"column:note_quote_text;type:text" json:"note_quote_text"`
	NoteQuoteImage *string   `gorm:"column:note_quote_image;size:255" json:"note_quote_image"`
	NoteUserID     uuid.UUID `gorm:"column:note_user_id;type:uuid;not null;index" json:"note_user_id"`
	NoteCreatedAt  time.Time `gorm:"column:note_created_at;autoCreateTime" json:"note_created_at"`
}

func (NoteModel) TableName() string {
	return "notes"
}
