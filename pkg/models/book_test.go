package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookSummary(t *testing.T) {
	t.Parallel()

	year := 1944
	author := &Author{Name: "Jorge Luis Borges"}

	t.Run("with year", func(t *testing.T) {
		t.Parallel()
		b := &Book{Title: "Ficciones", Year: &year, Author: author}
		assert.Equal(t, "Ficciones: Publicado por Jorge Luis Borges en 1944", b.Summary())
	})

	t.Run("without year", func(t *testing.T) {
		t.Parallel()
		b := &Book{Title: "Ficciones", Author: author}
		assert.Equal(t, "Ficciones: Publicado por Jorge Luis Borges", b.Summary())
	})
}
