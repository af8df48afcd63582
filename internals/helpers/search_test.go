package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchClause(t *testing.T) {
	fields := SearchFields{
		Like:  []string{"book_title", "author_name"},
		Exact: []string{"book_amazon_dp"},
	}

	t.Run("satu kata cocok ke semua kolom", func(t *testing.T) {
		clause, args := buildSearchClause(fields, "golang")

		assert.Equal(t, "(book_title ILIKE ? OR author_name ILIKE ? OR book_amazon_dp = ?)", clause)
		assert.Equal(t, []interface{}{"%golang%", "%golang%", "golang"}, args)
	})

	t.Run("dua kata digabung AND", func(t *testing.T) {
		clause, args := buildSearchClause(fields, "golang web")

		assert.Equal(t,
			"(book_title ILIKE ? OR author_name ILIKE ? OR book_amazon_dp = ?)"+
				" AND (book_title ILIKE ? OR author_name ILIKE ? OR book_amazon_dp = ?)",
			clause)
		assert.Len(t, args, 6)
	})

	t.Run("token OR menggabungkan dengan OR", func(t *testing.T) {
		clause, _ := buildSearchClause(fields, "golang OR rust web")

		assert.Equal(t,
			"(book_title ILIKE ? OR author_name ILIKE ? OR book_amazon_dp = ?)"+
				" OR (book_title ILIKE ? OR author_name ILIKE ? OR book_amazon_dp = ?)"+
				" AND (book_title ILIKE ? OR author_name ILIKE ? OR book_amazon_dp = ?)",
			clause)
	})

	t.Run("spasi full-width dinormalisasi", func(t *testing.T) {
		full, argsFull := buildSearchClause(fields, "夏目　漱石")
		half, argsHalf := buildSearchClause(fields, "夏目 漱石")

		assert.Equal(t, half, full)
		assert.Equal(t, argsHalf, argsFull)
	})

	t.Run("input kosong tidak menghasilkan clause", func(t *testing.T) {
		clause, args := buildSearchClause(fields, "   ")

		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("hanya token OR juga kosong", func(t *testing.T) {
		clause, _ := buildSearchClause(fields, "OR")

		assert.Empty(t, clause)
	})
}

func TestSearchCriteria(t *testing.T) {
	title := SearchFields{Like: []string{"book_title"}}
	author := SearchFields{Like: []string{"author_name"}}

	t.Run("filter And menumpuk dengan AND", func(t *testing.T) {
		sc := &SearchCriteria{}
		sc.And(title, "golang")
		sc.And(author, "donald")

		assert.False(t, sc.Empty())
		assert.Equal(t, []string{"((book_title ILIKE ?))", "((author_name ILIKE ?))"}, sc.and)
		assert.Equal(t, []interface{}{"%golang%", "%donald%"}, sc.andArgs)
	})

	t.Run("filter Or sendirian tidak menyaring", func(t *testing.T) {
		sc := &SearchCriteria{}
		sc.Or(title, "golang")

		assert.True(t, sc.Empty())
	})

	t.Run("value kosong diabaikan", func(t *testing.T) {
		sc := &SearchCriteria{}
		sc.And(title, "")
		sc.Or(author, "  ")

		assert.True(t, sc.Empty())
		assert.Empty(t, sc.and)
		assert.Empty(t, sc.or)
	})

	t.Run("filter Or memperluas blok And", func(t *testing.T) {
		sc := &SearchCriteria{}
		sc.And(title, "golang")
		sc.Or(author, "rob")

		assert.False(t, sc.Empty())
		assert.Len(t, sc.and, 1)
		assert.Len(t, sc.or, 1)
		assert.Equal(t, []interface{}{"%rob%"}, sc.orArgs)
	})
}
