package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "bookshelf_backend/internals/features/library/books/model"
	progressModel "bookshelf_backend/internals/features/library/progress/model"
)

// Fixture dua buku dengan campuran progress, regresi dan paused,
// total diff.page = 97 (21 + 0 + 39 untuk buku pertama,
// 12 + 0 + 0 + 22 + 3 untuk buku kedua).
func pagesFixture() ([]progressModel.StatusLogModel, map[uuid.UUID]*bookModel.BookModel) {
	first := pagedBook(100)
	second := pagedBook(210)

	events := []progressModel.StatusLogModel{
		logAt(first.BookID, 21, at(2022, 1, 1, 0, 0)),
		logAt(first.BookID, 12, at(2022, 1, 1, 0, 1)),
		logAt(second.BookID, 12, at(2022, 1, 2, 0, 0)),
		logAt(second.BookID, 0, at(2022, 1, 2, 0, 1)),
		logAt(second.BookID, 5, at(2022, 1, 2, 0, 2)),
		logAt(second.BookID, 27, at(2022, 1, 2, 0, 3)),
		logAt(second.BookID, 30, at(2022, 1, 3, 0, 0)),
		logAt(first.BookID, 51, at(2022, 1, 3, 0, 1)),
	}
	books := map[uuid.UUID]*bookModel.BookModel{
		first.BookID:  first,
		second.BookID: second,
	}
	return events, books
}

func filterByDate(events []progressModel.StatusLogModel, from, to *time.Time) []progressModel.StatusLogModel {
	out := make([]progressModel.StatusLogModel, 0, len(events))
	for _, ev := range events {
		if from != nil && ev.StatusLogCreatedAt.Before(*from) {
			continue
		}
		if to != nil && ev.StatusLogCreatedAt.After(*to) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := at(y, m, d, 0, 0)
	return &t
}

func TestSumPagesRead(t *testing.T) {
	events, books := pagesFixture()
	history := NewHistory(events)
	loc := time.UTC

	t.Run("default window from join date", func(t *testing.T) {
		// joined 1/1, dievaluasi pada 1/4 → 4 hari
		w := ResolveWindow(nil, nil, at(2022, 1, 1, 0, 0), at(2022, 1, 4, 0, 0), loc)
		result := SumPagesRead(events, books, history, w, loc)
		assert.Equal(t, 97, result.Total)
		assert.Equal(t, 24, result.AvgPerDay) // floor(97/4)
	})

	t.Run("joined mid-series", func(t *testing.T) {
		// joined 1/2, dievaluasi pada 1/4 → numerator hanya event >= 1/2
		w := ResolveWindow(nil, nil, at(2022, 1, 2, 0, 0), at(2022, 1, 4, 0, 0), loc)
		result := SumPagesRead(events, books, history, w, loc)
		assert.Equal(t, 97, result.Total)
		assert.Equal(t, 25, result.AvgPerDay) // floor(76/3)
	})

	t.Run("explicit single-day window", func(t *testing.T) {
		from, to := datePtr(2022, 1, 2), datePtr(2022, 1, 2)
		filtered := filterByDate(events, from, &[]time.Time{to.Add(24*time.Hour - time.Second)}[0])
		w := ResolveWindow(from, to, at(2022, 1, 1, 0, 0), at(2022, 1, 4, 0, 0), loc)
		result := SumPagesRead(filtered, books, history, w, loc)
		assert.Equal(t, 34, result.Total)
		assert.Equal(t, 34, result.AvgPerDay)
	})

	t.Run("open start bound", func(t *testing.T) {
		to := datePtr(2022, 1, 2)
		filtered := filterByDate(events, nil, &[]time.Time{to.Add(24*time.Hour - time.Second)}[0])
		w := ResolveWindow(nil, to, at(2022, 1, 1, 0, 0), at(2022, 1, 4, 0, 0), loc)
		result := SumPagesRead(filtered, books, history, w, loc)
		assert.Equal(t, 55, result.Total)
		assert.Equal(t, 27, result.AvgPerDay) // floor(55/2)
	})

	t.Run("open end bound", func(t *testing.T) {
		from := datePtr(2022, 1, 2)
		filtered := filterByDate(events, from, nil)
		w := ResolveWindow(from, nil, at(2022, 1, 1, 0, 0), at(2022, 1, 4, 0, 0), loc)
		result := SumPagesRead(filtered, books, history, w, loc)
		assert.Equal(t, 76, result.Total)
		assert.Equal(t, 25, result.AvgPerDay) // floor(76/3)
	})

	t.Run("diff masih dihitung terhadap history penuh", func(t *testing.T) {
		// event 1/3 buku pertama difilter sendirian: prev-nya (1/1) tetap
		// harus terlihat lewat history, diff = 51-12 = 39
		from := datePtr(2022, 1, 3)
		filtered := filterByDate(events, from, nil)
		w := ResolveWindow(from, nil, at(2022, 1, 1, 0, 0), at(2022, 1, 4, 0, 0), loc)
		result := SumPagesRead(filtered, books, history, w, loc)
		assert.Equal(t, 42, result.Total)
	})
}

// Fixture streak: 1/1..1/4 berurutan, gap, lalu 1/6..1/7 (dua event per hari).
func daysFixture(book *bookModel.BookModel) []progressModel.StatusLogModel {
	var events []progressModel.StatusLogModel
	for i := 0; i < 4; i++ {
		events = append(events, logAt(book.BookID, 10+i, at(2022, 1, 1+i, 12, 0)))
	}
	for i := 0; i < 2; i++ {
		events = append(events, logAt(book.BookID, 20+i, at(2022, 1, 6+i, 9, 0)))
		events = append(events, logAt(book.BookID, 30+i, at(2022, 1, 6+i, 21, 0)))
	}
	return events
}

func TestReadingDays(t *testing.T) {
	loc := time.UTC
	book := pagedBook(100)
	events := daysFixture(book)

	t.Run("streak broken as of evaluation date", func(t *testing.T) {
		w := ResolveWindow(nil, nil, at(2022, 1, 1, 0, 0), at(2022, 1, 8, 0, 0), loc)
		result := ReadingDays(events, w, loc)
		assert.Equal(t, 6, result.Total)
		assert.Equal(t, 2, result.Continuous)
		assert.Equal(t, 4, result.ContinuousMax)
	})

	t.Run("no events", func(t *testing.T) {
		w := ResolveWindow(nil, nil, at(2022, 1, 1, 0, 0), at(2022, 1, 8, 0, 0), loc)
		result := ReadingDays(nil, w, loc)
		assert.Equal(t, 0, result.Total)
		assert.Equal(t, 0, result.Continuous)
		assert.Equal(t, 0, result.ContinuousMax)
	})

	t.Run("windowed subset", func(t *testing.T) {
		from, to := datePtr(2022, 1, 2), datePtr(2022, 1, 6)
		filtered := filterByDate(events, from, &[]time.Time{to.Add(24*time.Hour - time.Second)}[0])
		w := ResolveWindow(from, to, at(2022, 1, 1, 0, 0), at(2022, 1, 8, 0, 0), loc)
		result := ReadingDays(filtered, w, loc)
		assert.Equal(t, 4, result.Total)
		assert.Equal(t, 1, result.Continuous)
		assert.Equal(t, 3, result.ContinuousMax)
	})

	t.Run("streak alive at window end", func(t *testing.T) {
		w := ResolveWindow(nil, nil, at(2022, 1, 1, 0, 0), at(2022, 1, 7, 0, 0), loc)
		result := ReadingDays(events, w, loc)
		assert.Equal(t, 2, result.Continuous)
	})

	t.Run("continuous_max never below continuous", func(t *testing.T) {
		for day := 1; day <= 12; day++ {
			w := ResolveWindow(nil, nil, at(2022, 1, 1, 0, 0), at(2022, 1, day, 0, 0), loc)
			result := ReadingDays(events, w, loc)
			assert.GreaterOrEqual(t, result.ContinuousMax, result.Continuous, "end=1/%d", day)
		}
	})
}

func TestCountBooksByState(t *testing.T) {
	toBeRead := pagedBook(100)
	reading := pagedBook(100)
	read := pagedBook(100)
	books := map[uuid.UUID]*bookModel.BookModel{
		toBeRead.BookID: toBeRead,
		reading.BookID:  reading,
		read.BookID:     read,
	}

	events := []progressModel.StatusLogModel{
		// pernah dibaca lalu disimpan: event terbaru 0 → to_be_read
		logAt(toBeRead.BookID, 10, at(2022, 1, 1, 0, 0)),
		logAt(toBeRead.BookID, 0, at(2022, 1, 1, 0, 1)),
		logAt(reading.BookID, 50, at(2022, 1, 2, 0, 0)),
		logAt(read.BookID, 100, at(2022, 1, 3, 0, 0)),
	}
	full := NewHistory(events)

	t.Run("classification uses latest event", func(t *testing.T) {
		result := CountBooksByState(events, books, full, 1)
		assert.Equal(t, 2, result.ToBeRead) // 1 paused + 1 unstarted
		assert.Equal(t, 1, result.Reading)
		assert.Equal(t, 1, result.Read)
		assert.Equal(t, 4, result.All)
	})

	t.Run("windowed events still classified against full history", func(t *testing.T) {
		// window hanya berisi event 10 halaman milik buku paused; state-nya
		// tetap to_be_read karena event terbarunya (di luar window) adalah 0
		windowed := events[:1]
		result := CountBooksByState(windowed, books, full, 0)
		assert.Equal(t, 1, result.ToBeRead)
		assert.Equal(t, 0, result.Reading)
		assert.Equal(t, 1, result.All)
	})

	t.Run("panics on event for unknown book", func(t *testing.T) {
		stray := []progressModel.StatusLogModel{logAt(uuid.New(), 10, at(2022, 1, 1, 0, 0))}
		assert.Panics(t, func() {
			CountBooksByState(stray, books, NewHistory(stray), 0)
		})
	})
}

func TestAuthorsRanking(t *testing.T) {
	bookAuthors := map[uuid.UUID][]string{
		uuid.New(): {"夏目漱石"},
		uuid.New(): {"夏目漱石"},
		uuid.New(): {"夏目漱石", "森鷗外"},
		uuid.New(): {"森鷗外"},
		uuid.New(): {"芥川龍之介", "芥川龍之介"}, // duplikat dalam satu buku dihitung sekali
	}

	ranking := AuthorsRanking(bookAuthors, 0)
	require.Len(t, ranking, 3)
	assert.Equal(t, AuthorCount{Name: "夏目漱石", Count: 3}, ranking[0])
	assert.Equal(t, AuthorCount{Name: "森鷗外", Count: 2}, ranking[1])
	assert.Equal(t, AuthorCount{Name: "芥川龍之介", Count: 1}, ranking[2])

	t.Run("head truncates", func(t *testing.T) {
		top := AuthorsRanking(bookAuthors, 2)
		require.Len(t, top, 2)
		assert.Equal(t, "夏目漱石", top[0].Name)
	})

	t.Run("ties break by name ascending", func(t *testing.T) {
		tied := map[uuid.UUID][]string{
			uuid.New(): {"b-author"},
			uuid.New(): {"a-author"},
		}
		result := AuthorsRanking(tied, 0)
		require.Len(t, result, 2)
		assert.Equal(t, "a-author", result[0].Name)
		assert.Equal(t, "b-author", result[1].Name)
	})

	t.Run("ordered json object", func(t *testing.T) {
		data, err := AuthorRanking{{Name: "x", Count: 2}, {Name: "y", Count: 1}}.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"x":2,"y":1}`, string(data))
	})
}

func TestPagesDaily(t *testing.T) {
	events, books := pagesFixture()
	history := NewHistory(events)
	loc := time.UTC

	t.Run("descending series", func(t *testing.T) {
		series := PagesDaily(events, books, history, loc, true)
		require.Len(t, series, 3)
		assert.Equal(t, at(2022, 1, 3, 0, 0), series[0].Date)
		assert.Equal(t, 42, series[0].Pages)
		assert.Equal(t, 34, series[1].Pages)
		assert.Equal(t, 21, series[2].Pages)
	})

	t.Run("ascending series", func(t *testing.T) {
		series := PagesDaily(events, books, history, loc, false)
		require.Len(t, series, 3)
		assert.Equal(t, at(2022, 1, 1, 0, 0), series[0].Date)
		assert.Equal(t, 21, series[0].Pages)
	})

	t.Run("ordered json object", func(t *testing.T) {
		series := DailySeries{{Date: at(2022, 1, 3, 0, 0), Pages: 42}, {Date: at(2022, 1, 2, 0, 0), Pages: 34}}
		data, err := series.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"2022-01-03":42,"2022-01-02":34}`, string(data))
	})
}

func TestWindow(t *testing.T) {
	loc := time.UTC

	t.Run("explicit bounds win", func(t *testing.T) {
		w := ResolveWindow(datePtr(2022, 1, 2), datePtr(2022, 1, 6), at(2022, 1, 1, 0, 0), at(2022, 1, 8, 0, 0), loc)
		assert.Equal(t, at(2022, 1, 2, 0, 0), w.Start)
		assert.Equal(t, at(2022, 1, 6, 0, 0), w.End)
		assert.Equal(t, 5, w.Days())
	})

	t.Run("fallback to join date and today", func(t *testing.T) {
		w := ResolveWindow(nil, nil, at(2022, 1, 1, 9, 30), at(2022, 1, 4, 23, 59), loc)
		assert.Equal(t, at(2022, 1, 1, 0, 0), w.Start)
		assert.Equal(t, at(2022, 1, 4, 0, 0), w.End)
		assert.Equal(t, 4, w.Days())
	})

	t.Run("single day window divides by one", func(t *testing.T) {
		w := ResolveWindow(datePtr(2022, 1, 2), datePtr(2022, 1, 2), at(2022, 1, 1, 0, 0), at(2022, 1, 8, 0, 0), loc)
		assert.Equal(t, 1, w.Days())
	})

	t.Run("inverted window never divides by zero", func(t *testing.T) {
		w := ResolveWindow(datePtr(2022, 1, 6), datePtr(2022, 1, 2), at(2022, 1, 1, 0, 0), at(2022, 1, 8, 0, 0), loc)
		assert.Equal(t, 1, w.Days())
	})

	t.Run("contains is inclusive", func(t *testing.T) {
		w := Window{Start: at(2022, 1, 2, 0, 0), End: at(2022, 1, 4, 0, 0)}
		assert.True(t, w.Contains(at(2022, 1, 2, 0, 0), loc))
		assert.True(t, w.Contains(at(2022, 1, 4, 23, 59), loc))
		assert.False(t, w.Contains(at(2022, 1, 5, 0, 0), loc))
		assert.False(t, w.Contains(at(2022, 1, 1, 23, 59), loc))
	})
}
