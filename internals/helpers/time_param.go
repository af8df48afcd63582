// file: internals/helpers/time_param.go
package helper

import "time"

// ParseTimeParam menerima timestamp RFC3339 atau tanggal polos (YYYY-MM-DD).
// String kosong dianggap "tidak diisi" (nil, tanpa error).
func ParseTimeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
