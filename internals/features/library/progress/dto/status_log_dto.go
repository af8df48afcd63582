package dto

import (
	"errors"
	"time"

	bookDto "bookshelf_backend/internals/features/library/books/dto"
	bookModel "bookshelf_backend/internals/features/library/books/model"
	"bookshelf_backend/internals/features/library/progress/model"
	"bookshelf_backend/internals/features/library/progress/service"
)

// ============================
// Response DTO
// ============================

type StatusLogDTO struct {
	ID        string           `json:"id"`
	State     service.State    `json:"state"`
	Diff      service.Progress `json:"diff"`
	Position  service.Progress `json:"position"`
	CreatedAt time.Time        `json:"created_at"`
	Book      *bookDto.BookDTO `json:"book,omitempty"`
}

// ============================
// Create Request DTO
// ============================

type CreateStatusLogRequest struct {
	Book     string `json:"book" validate:"required,uuid"`
	Position int    `json:"position"`
}

// Validate: posisi 0..total (0 = paused). Posisi sama dengan record
// sebelumnya diterima — engine melaporkannya sebagai diff 0.
func (r *CreateStatusLogRequest) Validate(book *bookModel.BookModel) error {
	if r.Position < 0 {
		return errors.New("position: masukkan bilangan bulat 0 atau lebih")
	}
	if r.Position > book.BookTotal {
		return errors.New("position: posisi melebihi total buku")
	}
	return nil
}

// ============================
// Converter
// ============================

// ToStatusLogDTO membentuk representasi satu progress event.
// State diklasifikasikan dari posisi mentah; position yang ditampilkan
// memakai resolusi paused-sentinel; diff dihitung terhadap predecessor
// non-paused — semua dari satu History index yang sama.
func ToStatusLogDTO(ev model.StatusLogModel, book *bookModel.BookModel, h *service.History, bookView *bookDto.BookDTO) StatusLogDTO {
	return StatusLogDTO{
		ID:        ev.StatusLogID.String(),
		State:     service.ClassifyState(ev.StatusLogPosition, book.BookTotal),
		Diff:      service.Diff(ev, book, h),
		Position:  service.Snapshot(service.EffectivePosition(ev, h), book),
		CreatedAt: ev.StatusLogCreatedAt,
		Book:      bookView,
	}
}
