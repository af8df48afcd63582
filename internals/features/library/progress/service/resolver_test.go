package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	bookModel "bookshelf_backend/internals/features/library/books/model"
	progressModel "bookshelf_backend/internals/features/library/progress/model"
)

func pagedBook(total int) *bookModel.BookModel {
	return &bookModel.BookModel{
		BookID:     uuid.New(),
		BookTitle:  "test book",
		BookFormat: bookModel.FormatPaged,
		BookTotal:  total,
	}
}

func locationBook(total, totalPage int) *bookModel.BookModel {
	return &bookModel.BookModel{
		BookID:        uuid.New(),
		BookTitle:     "test ebook",
		BookFormat:    bookModel.FormatLocation,
		BookTotal:     total,
		BookTotalPage: &totalPage,
	}
}

func logAt(bookID uuid.UUID, position int, at time.Time) progressModel.StatusLogModel {
	return progressModel.StatusLogModel{
		StatusLogID:        uuid.New(),
		StatusLogBookID:    bookID,
		StatusLogPosition:  position,
		StatusLogUserID:    uuid.Nil,
		StatusLogCreatedAt: at,
	}
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestClassifyState(t *testing.T) {
	testCases := []struct {
		name     string
		position int
		total    int
		expected State
	}{
		{name: "zero is paused sentinel", position: 0, total: 100, expected: StateToBeRead},
		{name: "first page", position: 1, total: 100, expected: StateReading},
		{name: "one before the end", position: 99, total: 100, expected: StateReading},
		{name: "exactly at total", position: 100, total: 100, expected: StateRead},
		{name: "past total", position: 150, total: 100, expected: StateRead},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyState(tc.position, tc.total))
		})
	}
}

func TestClassifyStatePartitionsEveryPosition(t *testing.T) {
	// state harus total function: tepat satu state untuk setiap posisi
	for position := 0; position <= 120; position++ {
		state := ClassifyState(position, 100)
		assert.Contains(t, []State{StateToBeRead, StateReading, StateRead}, state)
	}
}

func TestEffectivePosition(t *testing.T) {
	book := pagedBook(200)
	history := NewHistory([]progressModel.StatusLogModel{
		logAt(book.BookID, 15, at(2022, 1, 1, 10, 0)),
		logAt(book.BookID, 40, at(2022, 1, 2, 10, 0)),
		logAt(book.BookID, 0, at(2022, 1, 3, 10, 0)),
	})

	t.Run("non paused returns its own position", func(t *testing.T) {
		ev := logAt(book.BookID, 77, at(2022, 1, 4, 10, 0))
		assert.Equal(t, 77, EffectivePosition(ev, history))
	})

	t.Run("paused resolves to last known position", func(t *testing.T) {
		ev := logAt(book.BookID, 0, at(2022, 1, 4, 10, 0))
		assert.Equal(t, 40, EffectivePosition(ev, history))
	})

	t.Run("paused with only paused predecessors", func(t *testing.T) {
		onlyPaused := NewHistory([]progressModel.StatusLogModel{
			logAt(book.BookID, 0, at(2022, 1, 1, 10, 0)),
		})
		ev := logAt(book.BookID, 0, at(2022, 1, 2, 10, 0))
		assert.Equal(t, 0, EffectivePosition(ev, onlyPaused))
	})

	t.Run("paused with no history at all", func(t *testing.T) {
		ev := logAt(uuid.New(), 0, at(2022, 1, 2, 10, 0))
		assert.Equal(t, 0, EffectivePosition(ev, history))
	})
}

func TestPageEquivalent(t *testing.T) {
	t.Run("paged book is identity", func(t *testing.T) {
		book := pagedBook(110)
		assert.Equal(t, 32, PageEquivalent(32, book))
		assert.Equal(t, 0, PageEquivalent(0, book))
	})

	t.Run("location based scales with ceiling", func(t *testing.T) {
		book := locationBook(2500, 220)
		assert.Equal(t, 88, PageEquivalent(991, book))  // ceil(220*991/2500)
		assert.Equal(t, 98, PageEquivalent(1111, book)) // ceil(220*1111/2500)
		assert.Equal(t, 0, PageEquivalent(0, book))
	})

	t.Run("tiny nonzero progress still registers a page", func(t *testing.T) {
		book := locationBook(10000, 200)
		assert.Equal(t, 1, PageEquivalent(1, book))
	})
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 110))
	assert.Equal(t, 29, Percentage(32, 110)) // floor(3200/110)
	assert.Equal(t, 100, Percentage(110, 110))
}

func TestHistoryBeforeExcludesSelfAndNewer(t *testing.T) {
	book := pagedBook(100)
	first := logAt(book.BookID, 10, at(2022, 1, 1, 0, 0))
	second := logAt(book.BookID, 20, at(2022, 1, 2, 0, 0))
	third := logAt(book.BookID, 30, at(2022, 1, 3, 0, 0))
	history := NewHistory([]progressModel.StatusLogModel{third, first, second})

	older := history.Before(second)
	assert.Len(t, older, 1)
	assert.Equal(t, first.StatusLogID, older[0].StatusLogID)

	assert.Empty(t, history.Before(first))

	latest := history.Latest(book.BookID)
	assert.NotNil(t, latest)
	assert.Equal(t, third.StatusLogID, latest.StatusLogID)
}
