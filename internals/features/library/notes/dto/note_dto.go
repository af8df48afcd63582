package dto

import (
	"errors"
	"time"

	bookDto "bookshelf_backend/internals/features/library/books/dto"
	bookModel "bookshelf_backend/internals/features/library/books/model"
	"bookshelf_backend/internals/features/library/notes/model"
	helper "bookshelf_backend/internals/helpers"
)

// ============================
// Response DTO
// ============================

type NoteDTO struct {
	ID         string           `json:"id"`
	Position   int              `json:"position"`
	Content    string           `json:"content"`
	QuoteText  *string          `json:"quote_text"`
	QuoteImage *string          `json:"quote_image"`
	CreatedAt  time.Time        `json:"created_at"`
	Book       *bookDto.BookDTO `json:"book,omitempty"`
}

// ============================
// Create / Update Request DTO
// ============================

// CreateNoteRequest datang sebagai multipart form (quote_image berupa file),
// jadi parsing field dilakukan manual di controller, bukan lewat BodyParser.
type CreateNoteRequest struct {
	Book      string `form:"book" validate:"required,uuid"`
	Position  int    `form:"position"`
	Content   string `form:"content" validate:"required"`
	QuoteText string `form:"quote_text"`
}

func (r *CreateNoteRequest) Validate(book *bookModel.BookModel) error {
	if r.Position < 0 {
		return errors.New("position: masukkan bilangan bulat 0 atau lebih")
	}
	if r.Position > book.BookTotal {
		return errors.New("position: posisi melebihi total buku")
	}
	return nil
}

type UpdateNoteRequest struct {
	Position  *int    `form:"position"`
	Content   *string `form:"content"`
	QuoteText *string `form:"quote_text"`
}

func (r *UpdateNoteRequest) Validate(book *bookModel.BookModel) error {
	if r.Position == nil {
		return nil
	}
	if *r.Position < 0 {
		return errors.New("position: masukkan bilangan bulat 0 atau lebih")
	}
	if *r.Position > book.BookTotal {
		return errors.New("position: posisi melebihi total buku")
	}
	return nil
}

// ============================
// Converter
// ============================

func ToNoteDTO(m model.NoteModel, bookView *bookDto.BookDTO) NoteDTO {
	dto := NoteDTO{
		ID:        m.NoteID.String(),
		Position:  m.NotePosition,
		Content:   m.NoteContent,
		QuoteText: m.NoteQuoteText,
		CreatedAt: m.NoteCreatedAt,
		Book:      bookView,
	}
	if m.NoteQuoteImage != nil && *m.NoteQuoteImage != "" {
		url := helper.PublicMediaURL(*m.NoteQuoteImage)
		dto.QuoteImage = &url
	}
	return dto
}
