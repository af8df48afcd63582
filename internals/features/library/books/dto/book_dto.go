package dto

import (
	"errors"
	"time"

	"bookshelf_backend/internals/features/library/books/model"
)

// Placeholder untuk buku tanpa cover.
const NoCoverImage = "https://dummyimage.com/140x185/c4c4c4/636363.png&text=No+Image"

// ============================
// Response DTO
// ============================

type BookDTO struct {
	ID         string    `json:"id"`
	IDGoogle   string    `json:"id_google"`
	Title      string    `json:"title"`
	Authors    []string  `json:"authors"`
	Thumbnail  string    `json:"thumbnail"`
	FormatType int       `json:"format_type"`
	Total      int       `json:"total"`
	TotalPage  *int      `json:"total_page"`
	AmazonDP   *string   `json:"amazon_dp"`
	CreatedAt  time.Time `json:"created_at"`
}

// ============================
// Create / Update Request DTO
// ============================

type CreateBookRequest struct {
	IDGoogle   string   `json:"id_google" validate:"omitempty,max=12"`
	Title      string   `json:"title" validate:"required,max=100"`
	Authors    []string `json:"authors" validate:"omitempty,dive,max=100"`
	Thumbnail  *string  `json:"thumbnail" validate:"omitempty,url"`
	FormatType int      `json:"format_type" validate:"oneof=0 1"`
	Total      int      `json:"total"`
	TotalPage  *int     `json:"total_page"`
	AmazonDP   *string  `json:"amazon_dp" validate:"omitempty,min=10,max=13"`
}

// Validate menegakkan invariant entitas di write boundary:
// total > 0, dan buku location-based wajib punya total_page > 0.
// Engine analitik tidak memvalidasi ulang per panggilan.
func (r *CreateBookRequest) Validate() error {
	if r.Total <= 0 {
		return errors.New("total: masukkan bilangan bulat lebih besar dari 0")
	}
	if r.FormatType == model.FormatLocation && (r.TotalPage == nil || *r.TotalPage <= 0) {
		return errors.New("total_page: masukkan bilangan bulat lebih besar dari 0")
	}
	return nil
}

type UpdateBookRequest struct {
	IDGoogle   *string   `json:"id_google" validate:"omitempty,max=12"`
	Title      *string   `json:"title" validate:"omitempty,max=100"`
	Authors    *[]string `json:"authors" validate:"omitempty,dive,max=100"`
	Thumbnail  *string   `json:"thumbnail" validate:"omitempty,url"`
	FormatType *int      `json:"format_type" validate:"omitempty,oneof=0 1"`
	Total      *int      `json:"total"`
	TotalPage  *int      `json:"total_page"`
	AmazonDP   *string   `json:"amazon_dp" validate:"omitempty,min=10,max=13"`
}

// Validate mengecek invariant terhadap hasil merge dengan row existing.
func (r *UpdateBookRequest) Validate(existing *model.BookModel) error {
	total := existing.BookTotal
	if r.Total != nil {
		total = *r.Total
	}
	if total <= 0 {
		return errors.New("total: masukkan bilangan bulat lebih besar dari 0")
	}

	format := existing.BookFormat
	if r.FormatType != nil {
		format = *r.FormatType
	}
	totalPage := existing.BookTotalPage
	if r.TotalPage != nil {
		totalPage = r.TotalPage
	}
	if format == model.FormatLocation && (totalPage == nil || *totalPage <= 0) {
		return errors.New("total_page: masukkan bilangan bulat lebih besar dari 0")
	}
	return nil
}

// ============================
// Converter
// ============================

func ToBookDTO(m model.BookModel, authors []string) BookDTO {
	thumbnail := NoCoverImage
	if m.BookThumbnail != nil && *m.BookThumbnail != "" {
		thumbnail = *m.BookThumbnail
	}
	if authors == nil {
		authors = []string{}
	}
	return BookDTO{
		ID:         m.BookID.String(),
		IDGoogle:   m.BookIDGoogle,
		Title:      m.BookTitle,
		Authors:    authors,
		Thumbnail:  thumbnail,
		FormatType: m.BookFormat,
		Total:      m.BookTotal,
		TotalPage:  m.BookTotalPage,
		AmazonDP:   m.BookAmazonDP,
		CreatedAt:  m.BookCreatedAt,
	}
}
