package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Status values a book copy moves through. Inputs are not checked against
// this set; it exists for form select options and seed data.
const (
	StatusAvailable   = "Available"
	StatusMaintenance = "Maintenance"
	StatusLoaned      = "Loaned"
	StatusReserved    = "Reserved"
)

// Statuses lists every status in form-select order.
var Statuses = []string{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

// BookInstance is a physical copy of a book.
type BookInstance struct {
	bun.BaseModel `bun:"table:book_instances,alias:bi"`

	ID        int        `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	BookID    int        `bun:",nullzero" json:"book_id"`
	Imprint   string     `bun:",nullzero" json:"imprint"`
	Status    string     `bun:",nullzero" json:"status"`
	DueBack   *time.Time `json:"due_back"`

	Book *Book `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
}
