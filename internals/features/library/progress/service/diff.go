package service

import (
	bookModel "bookshelf_backend/internals/features/library/books/model"
	progressModel "bookshelf_backend/internals/features/library/progress/model"
)

// Diff menghitung progress yang dibuat oleh satu event relatif terhadap
// predecessor non-paused terdekatnya.
//
// Aturan:
//   - event pertama (tidak ada predecessor): seluruh posisinya dihitung
//     sebagai progress
//   - event paused (position 0) di antara dua record dilewati — mereka tidak
//     membawa informasi progress
//   - mundur atau posisi sama: diff 0, progress negatif tidak pernah
//     dilaporkan
//
// Fungsi ini pure terhadap (ev, book, history): hasilnya idempoten.
func Diff(ev progressModel.StatusLogModel, book *bookModel.BookModel, h *History) Progress {
	prevPosition := 0
	for _, prev := range h.Before(ev) {
		if prev.StatusLogPosition > 0 {
			prevPosition = prev.StatusLogPosition
			break
		}
	}

	diff := 0
	if ev.StatusLogPosition > prevPosition {
		diff = ev.StatusLogPosition - prevPosition
	}

	return Snapshot(diff, book)
}
