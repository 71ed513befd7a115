package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `bun:",nullzero" json:"title"`
	AuthorID  int       `bun:",nullzero" json:"author_id"`
	Summary   string    `bun:",nullzero" json:"summary"`
	ISBN      string    `bun:"isbn,nullzero" json:"isbn"`

	// Author is joined at read time. There is no database-level constraint
	// backing this reference; the catalog services keep it consistent.
	Author *Author `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`

	// Genres is filled by the book service from the join relation.
	Genres []*Genre `bun:"-" json:"genres,omitempty"`
}
