package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	progressModel "bookshelf_backend/internals/features/library/progress/model"
)

func TestDiffFirstEventReportsFullPosition(t *testing.T) {
	book := pagedBook(110)
	ev := logAt(book.BookID, 21, at(2022, 1, 1, 0, 0))
	history := NewHistory([]progressModel.StatusLogModel{ev})

	diff := Diff(ev, book, history)
	assert.Equal(t, 21, diff.Value)
	assert.Equal(t, 21, diff.Page)
	assert.Equal(t, 19, diff.Percentage)
}

func TestDiffUnchangedPositionIsZero(t *testing.T) {
	// total=110, posisi [1, 32] lalu 32 lagi → diff event ketiga harus 0
	book := pagedBook(110)
	events := []progressModel.StatusLogModel{
		logAt(book.BookID, 1, at(2022, 1, 1, 0, 0)),
		logAt(book.BookID, 32, at(2022, 1, 2, 0, 0)),
		logAt(book.BookID, 32, at(2022, 1, 3, 0, 0)),
	}
	history := NewHistory(events)

	diff := Diff(events[2], book, history)
	assert.Equal(t, 0, diff.Value)
	assert.Equal(t, 0, diff.Page)
	assert.Equal(t, 0, diff.Percentage)
}

func TestDiffRegressionClampsToZero(t *testing.T) {
	book := pagedBook(100)
	events := []progressModel.StatusLogModel{
		logAt(book.BookID, 50, at(2022, 1, 1, 0, 0)),
		logAt(book.BookID, 30, at(2022, 1, 2, 0, 0)),
	}
	history := NewHistory(events)

	assert.Equal(t, 0, Diff(events[1], book, history).Value)
}

func TestDiffLocationBasedConversion(t *testing.T) {
	// total=2500 locations, total_page=220, dari 120 ke 1111
	book := locationBook(2500, 220)
	events := []progressModel.StatusLogModel{
		logAt(book.BookID, 120, at(2022, 1, 1, 0, 0)),
		logAt(book.BookID, 1111, at(2022, 1, 2, 0, 0)),
	}
	history := NewHistory(events)

	diff := Diff(events[1], book, history)
	assert.Equal(t, 991, diff.Value)
	assert.Equal(t, 88, diff.Page)

	position := Snapshot(events[1].StatusLogPosition, book)
	assert.Equal(t, 1111, position.Value)
	assert.Equal(t, 98, position.Page)
	assert.Equal(t, 44, position.Percentage)
}

func TestDiffSkipsPausedPredecessors(t *testing.T) {
	// posisi 1, lalu paused dua kali, lalu 32 → diff dihitung terhadap 1
	book := pagedBook(110)
	events := []progressModel.StatusLogModel{
		logAt(book.BookID, 1, at(2022, 1, 1, 0, 0)),
		logAt(book.BookID, 0, at(2022, 1, 2, 0, 0)),
		logAt(book.BookID, 0, at(2022, 1, 3, 0, 0)),
		logAt(book.BookID, 32, at(2022, 1, 4, 0, 0)),
	}
	history := NewHistory(events)

	assert.Equal(t, 31, Diff(events[3], book, history).Value)
}

func TestDiffPausedChainEquivalence(t *testing.T) {
	// k event paused berturut-turut tidak boleh mengubah hasil dibanding
	// history tanpa event paused sama sekali
	book := pagedBook(300)
	real := []progressModel.StatusLogModel{
		logAt(book.BookID, 40, at(2022, 1, 1, 0, 0)),
		logAt(book.BookID, 95, at(2022, 1, 10, 0, 0)),
	}

	for k := 1; k <= 4; k++ {
		padded := []progressModel.StatusLogModel{real[0]}
		for i := 0; i < k; i++ {
			padded = append(padded, logAt(book.BookID, 0, at(2022, 1, 2+i, 0, 0)))
		}
		padded = append(padded, real[1])

		want := Diff(real[1], book, NewHistory(real))
		got := Diff(real[1], book, NewHistory(padded))
		assert.Equal(t, want, got, "k=%d paused events changed the diff", k)
	}
}

func TestDiffPausedEventItselfContributesNothing(t *testing.T) {
	book := pagedBook(100)
	events := []progressModel.StatusLogModel{
		logAt(book.BookID, 12, at(2022, 1, 1, 0, 0)),
		logAt(book.BookID, 0, at(2022, 1, 2, 0, 0)),
	}
	history := NewHistory(events)

	assert.Equal(t, Progress{}, Diff(events[1], book, history))
}

func TestDiffIsIdempotent(t *testing.T) {
	book := locationBook(2500, 220)
	events := []progressModel.StatusLogModel{
		logAt(book.BookID, 120, at(2022, 1, 1, 0, 0)),
		logAt(book.BookID, 0, at(2022, 1, 2, 0, 0)),
		logAt(book.BookID, 1111, at(2022, 1, 3, 0, 0)),
	}
	history := NewHistory(events)

	for _, ev := range events {
		first := Diff(ev, book, history)
		second := Diff(ev, book, history)
		assert.Equal(t, first, second)
	}
}

func TestDiffNeverNegative(t *testing.T) {
	book := pagedBook(100)
	positions := []int{30, 0, 5, 90, 90, 12, 0, 0, 100}
	events := make([]progressModel.StatusLogModel, 0, len(positions))
	for i, p := range positions {
		events = append(events, logAt(book.BookID, p, at(2022, 1, 1, 0, 0).Add(time.Duration(i)*time.Hour)))
	}
	history := NewHistory(events)

	for _, ev := range events {
		assert.GreaterOrEqual(t, Diff(ev, book, history).Value, 0)
	}
}
