// file: internals/helpers/search.go
package helper

import (
	"strings"

	"gorm.io/gorm"
)

// SearchFields mendeskripsikan kolom yang ikut dicari.
// Like = ILIKE %word%, Exact = sama persis (mis. kode ASIN).
type SearchFields struct {
	Like  []string
	Exact []string
}

// ApplySearch menerapkan grammar pencarian teks bebas warisan API lama:
// kata dipisah spasi digabung AND, token literal "OR" menggabungkan
// kata berikutnya dengan OR. Spasi full-width dinormalisasi dulu.
//
//	"golang OR rust web" → (match golang) OR (match rust) AND (match web)
//
// Setiap kata dicocokkan terhadap seluruh kolom di fields (digabung OR).
func ApplySearch(tx *gorm.DB, fields SearchFields, value string) *gorm.DB {
	clause, args := buildSearchClause(fields, value)
	if clause == "" {
		return tx
	}
	return tx.Where(clause, args...)
}

// SearchCriteria merangkai beberapa filter teks menjadi satu WHERE.
// Filter And digabung AND; filter Or meniru perilaku union API lama:
// hasilnya (blok AND) OR or1 OR or2, jadi filter Or MEMPERLUAS hasil.
// Konsekuensinya filter Or tanpa satu pun filter And tidak menyaring
// apa-apa (union dengan seluruh tabel).
type SearchCriteria struct {
	and     []string
	andArgs []interface{}
	or      []string
	orArgs  []interface{}
}

func (sc *SearchCriteria) And(fields SearchFields, value string) {
	clause, args := buildSearchClause(fields, value)
	if clause == "" {
		return
	}
	sc.and = append(sc.and, "("+clause+")")
	sc.andArgs = append(sc.andArgs, args...)
}

func (sc *SearchCriteria) Or(fields SearchFields, value string) {
	clause, args := buildSearchClause(fields, value)
	if clause == "" {
		return
	}
	sc.or = append(sc.or, "("+clause+")")
	sc.orArgs = append(sc.orArgs, args...)
}

// Empty: true kalau criteria tidak akan menyaring baris mana pun.
func (sc *SearchCriteria) Empty() bool {
	return len(sc.and) == 0
}

func (sc *SearchCriteria) Apply(tx *gorm.DB) *gorm.DB {
	if sc.Empty() {
		return tx
	}
	clause := strings.Join(sc.and, " AND ")
	args := sc.andArgs
	if len(sc.or) > 0 {
		clause = "(" + clause + ") OR " + strings.Join(sc.or, " OR ")
		args = append(append([]interface{}{}, args...), sc.orArgs...)
	}
	return tx.Where(clause, args...)
}

func buildSearchClause(fields SearchFields, value string) (string, []interface{}) {
	value = strings.ReplaceAll(value, "　", " ")
	words := strings.Fields(value)
	if len(words) == 0 {
		return "", nil
	}

	var (
		sql  strings.Builder
		args []interface{}
		isOr bool
	)

	for _, word := range words {
		if word == "OR" {
			isOr = true
			continue
		}

		group, groupArgs := searchGroup(fields, word)
		if sql.Len() > 0 {
			if isOr {
				sql.WriteString(" OR ")
			} else {
				sql.WriteString(" AND ")
			}
		}
		isOr = false
		sql.WriteString(group)
		args = append(args, groupArgs...)
	}

	return sql.String(), args
}

func searchGroup(fields SearchFields, word string) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	for _, f := range fields.Like {
		conds = append(conds, f+" ILIKE ?")
		args = append(args, "%"+word+"%")
	}
	for _, f := range fields.Exact {
		conds = append(conds, f+" = ?")
		args = append(args, word)
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}
