package models

import (
	"fmt"

	"time"

	"github.com/uptrace/bun"
)

// Book references exactly one Author via AuthorID. Year is optional; nil
// means unknown, which is distinct from zero.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `bun:",nullzero" json:"title"`
	Year      *int      `json:"year"`
	AuthorID  int       `bun:",nullzero" json:"author_id"`
	Author    *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
}

// Summary renders the catalog line for a book with its author denormalized,
// e.g. "Ficciones: Publicado por Jorge Luis Borges en 1944". The Author
// relation must be loaded; the year is left off when unknown.
func (b *Book) Summary() string {
	name := ""
	if b.Author != nil {
		name = b.Author.Name
	}
	if b.Year == nil {
		return fmt.Sprintf("%s: Publicado por %s", b.Title, name)
	}
	return fmt.Sprintf("%s: Publicado por %s en %d", b.Title, name, *b.Year)
}
