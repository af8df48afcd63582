package service

import (
	"time"
)

// Window adalah rentang tanggal (inklusif, resolusi hari) yang dipakai
// aggregator. Start/End selalu ternormalisasi ke tengah malam di lokasi
// yang sama.
type Window struct {
	Start time.Time
	End   time.Time
}

// DateOf menormalisasi timestamp ke tanggal kalender (tengah malam, loc).
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ResolveWindow menentukan rentang analitik dari bound eksplisit caller.
// Fallback: start = tanggal registrasi akun, end = hari ini.
func ResolveWindow(from, to *time.Time, joined, now time.Time, loc *time.Location) Window {
	start := DateOf(joined, loc)
	if from != nil {
		start = DateOf(*from, loc)
	}
	end := DateOf(now, loc)
	if to != nil {
		end = DateOf(*to, loc)
	}
	return Window{Start: start, End: end}
}

// Days menghitung jumlah hari kalender dalam window, minimal 1 supaya
// pembagian rata-rata tidak pernah membagi nol. Pembulatan setengah hari
// menyerap pergeseran DST pada tanggal ternormalisasi.
func (w Window) Days() int {
	days := int(w.End.Sub(w.Start).Hours()/24+0.5) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Contains: true kalau tanggal t (di loc) jatuh di dalam window.
func (w Window) Contains(t time.Time, loc *time.Location) bool {
	d := DateOf(t, loc)
	return !d.Before(w.Start) && !d.After(w.End)
}
