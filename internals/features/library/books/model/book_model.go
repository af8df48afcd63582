package model

import (
	"time"

	"github.com/google/uuid"
)

// Format jenis buku: paged = buku fisik (satuan halaman),
// location-based = e-book (satuan posisi/location).
const (
	FormatPaged    = 0
	FormatLocation = 1
)

type BookModel struct {
	BookID        uuid.UUID  `gorm:"column:book_id;type:uuid;default:gen_random_uuid();primaryKey" json:"book_id"`
	BookIDGoogle  string     `gorm:"column:book_id_google;size:12" json:"book_id_google"`
	BookTitle     string     `gorm:"column:book_title;size:100;not null" json:"book_title"`
	BookThumbnail *string    `gorm:"column:book_thumbnail;size:255" json:"book_thumbnail"`
	BookFormat    int        `gorm:"column:book_format;not null;default:0" json:"book_format"`
	BookTotal     int        `gorm:"column:book_total;not null" json:"book_total"`
	BookTotalPage *int       `gorm:"column:book_total_page" json:"book_total_page"` // wajib >0 kalau format location-based
	BookAmazonDP  *string    `gorm:"column:book_amazon_dp;size:13" json:"book_amazon_dp"`
	BookUserID    uuid.UUID  `gorm:"column:book_user_id;type:uuid;not null;index" json:"book_user_id"`
	BookCreatedAt time.Time  `gorm:"column:book_created_at;autoCreateTime" json:"book_created_at"`

	Authors []AuthorModel `gorm:"many2many:book_authors;joinForeignKey:book_id;joinReferences:author_id" json:"-"`
}

func (BookModel) TableName() string {
	return "books"
}
