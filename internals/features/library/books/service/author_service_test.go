package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAuthorNames(t *testing.T) {
	t.Run("spasi antar karakter CJK dihapus", func(t *testing.T) {
		got := NormalizeAuthorNames([]string{"谷崎 潤一郎", "太宰　治"})
		assert.Equal(t, []string{"谷崎潤一郎", "太宰治"}, got)
	})

	t.Run("kanji di luar rentang 亜-熙 tidak digabung", func(t *testing.T) {
		got := NormalizeAuthorNames([]string{"村上 春樹", "夏目 漱石"})
		assert.Equal(t, []string{"村上 春樹", "夏目 漱石"}, got)
	})

	t.Run("nama dengan banyak spasi CJK", func(t *testing.T) {
		got := NormalizeAuthorNames([]string{"ドナルド エルヴィン クヌース"})
		assert.Equal(t, []string{"ドナルドエルヴィンクヌース"}, got)
	})

	t.Run("nama latin tidak diubah", func(t *testing.T) {
		got := NormalizeAuthorNames([]string{"Brian W. Kernighan", "  Alan Donovan  "})
		assert.Equal(t, []string{"Brian W. Kernighan", "Alan Donovan"}, got)
	})

	t.Run("list kosong jadi penulis tidak dikenal", func(t *testing.T) {
		assert.Equal(t, []string{UnknownAuthor}, NormalizeAuthorNames(nil))
		assert.Equal(t, []string{UnknownAuthor}, NormalizeAuthorNames([]string{"", "   "}))
	})
}
