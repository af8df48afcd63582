package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormString(t *testing.T) {
	values := map[string][]string{
		"first_name": {""},
		"last_name":  {"Tanaka"},
		"username":   {},
	}

	t.Run("field absen mengembalikan nil", func(t *testing.T) {
		assert.Nil(t, formString(values, "preferences"))
	})

	t.Run("slice kosong dianggap absen", func(t *testing.T) {
		assert.Nil(t, formString(values, "username"))
	})

	t.Run("field terisi mengembalikan nilainya", func(t *testing.T) {
		got := formString(values, "last_name")
		require.NotNil(t, got)
		assert.Equal(t, "Tanaka", *got)
	})

	t.Run("field kosong tetap dianggap dikirim", func(t *testing.T) {
		got := formString(values, "first_name")
		require.NotNil(t, got)
		assert.Equal(t, "", *got)
	})
}
