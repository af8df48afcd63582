package service

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"bookshelf_backend/internals/features/library/books/model"
)

// Nama default kalau payload tidak menyebut penulis sama sekali.
const UnknownAuthor = "不明"

// Nama Jepang sering dikirim sebagai "姓 名"; spasi di antara dua karakter
// CJK dihapus supaya "太宰 治" dan "太宰治" jadi satu penulis. Rentang kanji
// 亜-熙 (JIS level 1-2) tidak mencakup semua karakter Han, jadi pasangan
// di luar rentang itu (mis. 村上 春樹) tetap memakai spasi.
var cjkPairRe = regexp.MustCompile(`([\x{4E9C}-\x{7199}\x{3041}-\x{3093}\x{30A1}-\x{30F6}]) ([\x{4E9C}-\x{7199}\x{3041}-\x{3093}\x{30A1}-\x{30F6}])`)

// NormalizeAuthorNames merapikan daftar nama penulis dari payload.
func NormalizeAuthorNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ReplaceAll(name, "　", " ")
		for {
			replaced := cjkPairRe.ReplaceAllString(name, "$1$2")
			if replaced == name {
				break
			}
			name = replaced
		}
		name = strings.TrimSpace(name)
		if name != "" {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		out = []string{UnknownAuthor}
	}
	return out
}

// ReplaceBookAuthors menulis ulang daftar penulis sebuah buku:
// get-or-create per nama, tulis ulang join table dengan urutan eksplisit,
// lalu GC penulis yang tidak punya buku lagi.
func ReplaceBookAuthors(tx *gorm.DB, bookID uuid.UUID, names []string) error {
	names = NormalizeAuthorNames(names)

	if err := tx.Where("book_id = ?", bookID).Delete(&model.BookAuthorModel{}).Error; err != nil {
		return err
	}

	for i, name := range names {
		var author model.AuthorModel
		if err := tx.Where(model.AuthorModel{AuthorName: name}).
			FirstOrCreate(&author).Error; err != nil {
			return err
		}
		rel := model.BookAuthorModel{
			BookID:      bookID,
			AuthorID:    author.AuthorID,
			AuthorOrder: i,
		}
		if err := tx.Create(&rel).Error; err != nil {
			return err
		}
	}

	return DeleteOrphanAuthors(tx)
}

// DeleteOrphanAuthors menghapus penulis tanpa satu pun relasi buku.
func DeleteOrphanAuthors(tx *gorm.DB) error {
	return tx.Exec(`
		DELETE FROM authors
		WHERE author_id NOT IN (SELECT DISTINCT author_id FROM book_authors)
	`).Error
}

// AuthorNamesByBook mengambil nama penulis seluruh buku dalam satu query,
// terurut sesuai kolom author_order, via array_agg.
func AuthorNamesByBook(tx *gorm.DB, bookIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	result := make(map[uuid.UUID][]string, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	rows := []struct {
		BookID uuid.UUID      `gorm:"column:book_id"`
		Names  pq.StringArray `gorm:"column:names;type:text[]"`
	}{}

	err := tx.Raw(`
		SELECT ba.book_id,
		       array_agg(a.author_name ORDER BY ba.author_order) AS names
		FROM book_authors ba
		JOIN authors a ON a.author_id = ba.author_id
		WHERE ba.book_id IN ?
		GROUP BY ba.book_id
	`, bookIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.BookID] = []string(row.Names)
	}
	return result, nil
}
