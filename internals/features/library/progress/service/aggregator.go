package service

import (
	"bytes"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	bookModel "bookshelf_backend/internals/features/library/books/model"
	progressModel "bookshelf_backend/internals/features/library/progress/model"
)

/* ==========================
   Result shapes
========================== */

type NumberOfBooks struct {
	ToBeRead int `json:"to_be_read"`
	Reading  int `json:"reading"`
	Read     int `json:"read"`
	All      int `json:"all"`
}

type PagesRead struct {
	Total     int `json:"total"`
	AvgPerDay int `json:"avg_per_day"`
}

type Days struct {
	Total         int `json:"total"`
	Continuous    int `json:"continuous"`
	ContinuousMax int `json:"continuous_max"`
}

type AuthorCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AuthorRanking diserialisasi sebagai object JSON {"nama": jumlah, ...}
// dengan urutan ranking dipertahankan.
type AuthorRanking []AuthorCount

func (r AuthorRanking) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(strconv.AppendQuote(nil, a.Name))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(a.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type DailyPages struct {
	Date  time.Time `json:"date"`
	Pages int       `json:"pages"`
}

// DailySeries diserialisasi sebagai {"2022-01-03": 42, ...} terurut.
type DailySeries []DailyPages

func (s DailySeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(strconv.AppendQuote(nil, d.Date.Format("2006-01-02")))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(d.Pages))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type Analytics struct {
	NumberOfBooks NumberOfBooks `json:"number_of_books"`
	PagesRead     PagesRead     `json:"pages_read"`
	Days          Days          `json:"days"`
	AuthorsCount  AuthorRanking `json:"authors_count"`
	PagesDaily    DailySeries   `json:"pages_daily"`
}

/* ==========================
   Aggregates
========================== */

// CountBooksByState menghitung jumlah buku per state. Klasifikasi memakai
// event TERBARU dari full (history lengkap tanpa filter tanggal), bukan
// event terakhir di dalam window — state sebuah buku adalah fakta terkini.
//
// unstarted = jumlah buku user yang belum punya event sama sekali; nilainya
// ditambahkan ke to_be_read dan all. Caller yang mau hitungan murni
// per-window cukup mengoper 0. (Lihat DESIGN.md soal perilaku filter pada
// dua bucket ini.)
func CountBooksByState(events []progressModel.StatusLogModel, books map[uuid.UUID]*bookModel.BookModel, full *History, unstarted int) NumberOfBooks {
	seen := make(map[uuid.UUID]struct{})
	out := NumberOfBooks{}

	for _, ev := range events {
		if _, ok := seen[ev.StatusLogBookID]; ok {
			continue
		}
		seen[ev.StatusLogBookID] = struct{}{}

		book := mustBook(books, ev.StatusLogBookID)
		latest := full.Latest(ev.StatusLogBookID)
		if latest == nil {
			continue
		}

		switch ClassifyState(latest.StatusLogPosition, book.BookTotal) {
		case StateToBeRead:
			out.ToBeRead++
		case StateReading:
			out.Reading++
		case StateRead:
			out.Read++
		}
	}

	out.All = len(seen) + unstarted
	out.ToBeRead += unstarted
	return out
}

// SumPagesRead menghitung total halaman (diff.page) dan rata-rata per hari.
// Total = seluruh koleksi events; numerator rata-rata = hanya events yang
// jatuh di dalam window, dibagi jumlah hari window yang sama.
func SumPagesRead(events []progressModel.StatusLogModel, books map[uuid.UUID]*bookModel.BookModel, h *History, w Window, loc *time.Location) PagesRead {
	total, windowTotal := 0, 0
	for _, ev := range events {
		page := Diff(ev, mustBook(books, ev.StatusLogBookID), h).Page
		total += page
		if w.Contains(ev.StatusLogCreatedAt, loc) {
			windowTotal += page
		}
	}
	return PagesRead{
		Total:     total,
		AvgPerDay: windowTotal / w.Days(),
	}
}

// ReadingDays menghitung total hari membaca dan streak (hari berurutan).
// Streak berjalan di-reset ke 0 kalau tanggal terakhir tercatat sudah lebih
// dari 1 hari sebelum akhir window (streak-nya sudah putus per "hari ini").
func ReadingDays(events []progressModel.StatusLogModel, w Window, loc *time.Location) Days {
	dateSet := make(map[time.Time]struct{})
	for _, ev := range events {
		dateSet[DateOf(ev.StatusLogCreatedAt, loc)] = struct{}{}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	continuous, continuousMax := 0, 0
	for i, d := range dates {
		// AddDate, bukan aritmetika jam: aman terhadap transisi DST
		if i > 0 && dates[i-1].AddDate(0, 0, 1).Equal(d) {
			continuous++
		} else {
			continuous = 1
		}
		if continuous > continuousMax {
			continuousMax = continuous
		}
	}

	if len(dates) == 0 || dates[len(dates)-1].AddDate(0, 0, 1).Before(w.End) {
		continuous = 0
	}

	return Days{
		Total:         len(dates),
		Continuous:    continuous,
		ContinuousMax: continuousMax,
	}
}

// AuthorsRanking menghitung jumlah buku distinct per nama penulis.
// bookAuthors: bookID -> daftar nama penulis (terurut). Satu buku dihitung
// sekali untuk setiap penulisnya. Urut turun berdasarkan jumlah, seri
// di-break dengan nama ascending supaya deterministik. head 0 = tanpa batas.
func AuthorsRanking(bookAuthors map[uuid.UUID][]string, head int) AuthorRanking {
	counts := make(map[string]int)
	for _, names := range bookAuthors {
		seen := make(map[string]struct{}, len(names))
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			counts[name]++
		}
	}

	ranking := make(AuthorRanking, 0, len(counts))
	for name, count := range counts {
		ranking = append(ranking, AuthorCount{Name: name, Count: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Name < ranking[j].Name
	})

	if head > 0 && len(ranking) > head {
		ranking = ranking[:head]
	}
	return ranking
}

// PagesDaily mengelompokkan events per tanggal kalender dan menjumlahkan
// diff.page per grup. desc menentukan urutan tanggal pada hasil.
func PagesDaily(events []progressModel.StatusLogModel, books map[uuid.UUID]*bookModel.BookModel, h *History, loc *time.Location, desc bool) DailySeries {
	byDate := make(map[time.Time]int)
	for _, ev := range events {
		d := DateOf(ev.StatusLogCreatedAt, loc)
		byDate[d] += Diff(ev, mustBook(books, ev.StatusLogBookID), h).Page
	}

	series := make(DailySeries, 0, len(byDate))
	for d, pages := range byDate {
		series = append(series, DailyPages{Date: d, Pages: pages})
	}
	sort.Slice(series, func(i, j int) bool {
		if desc {
			return series[i].Date.After(series[j].Date)
		}
		return series[i].Date.Before(series[j].Date)
	})
	return series
}
