package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Author owns zero or more books. Names are unique (case-insensitive) at the
// schema level.
type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `bun:",nullzero" json:"name"`
	Books     []*Book   `bun:"rel:has-many,join:id=author_id" json:"books,omitempty"`
}
