package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	bookModel "bookshelf_backend/internals/features/library/books/model"
	progressModel "bookshelf_backend/internals/features/library/progress/model"
)

/* ==========================
   State & Progress
========================== */

type State string

const (
	StateToBeRead State = "to_be_read"
	StateReading  State = "reading"
	StateRead     State = "read"
)

// Progress merepresentasikan satu nilai progress dalam tiga satuan:
// raw value, persentase, dan ekuivalen halaman.
type Progress struct {
	Value      int `json:"value"`
	Percentage int `json:"percentage"`
	Page       int `json:"page"`
}

// ClassifyState mengklasifikasikan posisi menjadi salah satu dari tiga state.
// position == 0 selalu to_be_read (sentinel paused), position >= total = read.
func ClassifyState(position, total int) State {
	if position == 0 {
		return StateToBeRead
	}
	if position >= total {
		return StateRead
	}
	return StateReading
}

// Percentage = floor(100 * value / total).
func Percentage(value, total int) int {
	return 100 * value / total
}

// PageEquivalent mengkonversi raw value ke satuan halaman.
// Buku paged: value sudah dalam halaman. Buku location-based: skala
// proporsional ke total_page, dibulatkan ke atas supaya progress yang
// nonzero tidak pernah tampil sebagai 0 halaman.
func PageEquivalent(value int, book *bookModel.BookModel) int {
	if book.BookFormat != bookModel.FormatLocation {
		return value
	}
	totalPage := 0
	if book.BookTotalPage != nil {
		totalPage = *book.BookTotalPage
	}
	return (totalPage*value + book.BookTotal - 1) / book.BookTotal
}

// Snapshot membungkus satu posisi menjadi Progress lengkap.
func Snapshot(value int, book *bookModel.BookModel) Progress {
	return Progress{
		Value:      value,
		Percentage: Percentage(value, book.BookTotal),
		Page:       PageEquivalent(value, book),
	}
}

/* ==========================
   History index
========================== */

// History mengindeks snapshot status log per buku, terurut paling baru dulu.
// Dibangun sekali per request supaya klasifikasi/diff tidak perlu query
// ulang per record.
type History struct {
	byBook map[uuid.UUID][]progressModel.StatusLogModel
}

func NewHistory(events []progressModel.StatusLogModel) *History {
	h := &History{byBook: make(map[uuid.UUID][]progressModel.StatusLogModel)}
	for _, ev := range events {
		h.byBook[ev.StatusLogBookID] = append(h.byBook[ev.StatusLogBookID], ev)
	}
	for id := range h.byBook {
		list := h.byBook[id]
		sort.SliceStable(list, func(i, j int) bool {
			if !list[i].StatusLogCreatedAt.Equal(list[j].StatusLogCreatedAt) {
				return list[i].StatusLogCreatedAt.After(list[j].StatusLogCreatedAt)
			}
			// tie-break konsisten
			return list[i].StatusLogID.String() > list[j].StatusLogID.String()
		})
	}
	return h
}

// Before mengembalikan event buku yang sama yang strictly lebih tua dari ev,
// terurut paling baru dulu.
func (h *History) Before(ev progressModel.StatusLogModel) []progressModel.StatusLogModel {
	list := h.byBook[ev.StatusLogBookID]
	for i, other := range list {
		if other.StatusLogCreatedAt.Before(ev.StatusLogCreatedAt) {
			return list[i:]
		}
	}
	return nil
}

// ForBook mengembalikan seluruh event satu buku, terurut paling baru dulu.
func (h *History) ForBook(bookID uuid.UUID) []progressModel.StatusLogModel {
	return h.byBook[bookID]
}

// Latest mengembalikan event terbaru untuk satu buku (nil kalau belum ada).
func (h *History) Latest(bookID uuid.UUID) *progressModel.StatusLogModel {
	list := h.byBook[bookID]
	if len(list) == 0 {
		return nil
	}
	return &list[0]
}

// BookIDs mengembalikan semua buku yang punya minimal satu event.
func (h *History) BookIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(h.byBook))
	for id := range h.byBook {
		ids = append(ids, id)
	}
	return ids
}

/* ==========================
   Effective position
========================== */

// EffectivePosition menentukan posisi yang ditampilkan untuk satu event.
// Event paused (position 0) sengaja membuang posisi terakhir pembaca;
// UI tetap harus menampilkan di mana mereka berhenti, jadi kita cari
// event terakhir dengan position > 0 di history yang lebih tua.
func EffectivePosition(ev progressModel.StatusLogModel, h *History) int {
	if ev.StatusLogPosition != 0 {
		return ev.StatusLogPosition
	}
	for _, prev := range h.Before(ev) {
		if prev.StatusLogPosition > 0 {
			return prev.StatusLogPosition
		}
	}
	return 0
}

// mustBook: event yang menunjuk buku di luar snapshot berarti caller
// melanggar invariant data model — ini programmer error, bukan kondisi
// yang di-handle diam-diam.
func mustBook(books map[uuid.UUID]*bookModel.BookModel, id uuid.UUID) *bookModel.BookModel {
	b, ok := books[id]
	if !ok || b == nil {
		panic(fmt.Sprintf("status log references unknown book %s", id))
	}
	return b
}
