package model

import (
	"github.com/google/uuid"
)

type AuthorModel struct {
	AuthorID   uuid.UUID `gorm:"column:author_id;type:uuid;default:gen_random_uuid();primaryKey" json:"author_id"`
	AuthorName string    `gorm:"column:author_name;size:100;not null;uniqueIndex" json:"author_name"`
}

func (AuthorModel) TableName() string {
	return "authors"
}

// Join table eksplisit: urutan penulis per buku dipertahankan lewat kolom order.
type BookAuthorModel struct {
	BookAuthorID uuid.UUID `gorm:"column:book_author_id;type:uuid;default:gen_random_uuid();primaryKey" json:"book_author_id"`
	BookID       uuid.UUID `gorm:"column:book_id;type:uuid;not null;index" json:"book_id"`
	AuthorID     uuid.UUID `gorm:"column:author_id;type:uuid;not null;index" json:"author_id"`
	AuthorOrder  int       `gorm:"column:author_order;not null" json:"author_order"`
}

func (BookAuthorModel) TableName() string {
	return "book_authors"
}
