package bookinstances

import (
	"strconv"

	"github.com/clxsh19/locallibrary/pkg/models"
)

// BookInstancePayload is the create/update form body for a copy. Status is
// sanitized but deliberately not checked against the known status values, so
// an unknown status round-trips as-is.
type BookInstancePayload struct {
	Book    string `form:"book" mod:"trim,escape" validate:"required"`
	Imprint string `form:"imprint" mod:"trim,escape" validate:"required"`
	Status  string `form:"status" mod:"trim,escape"`
	DueBack string `form:"due_back" mod:"trim" validate:"date"`
}

// BookInstance builds the model from a validated payload.
func (p *BookInstancePayload) BookInstance() *models.BookInstance {
	bookID, _ := strconv.Atoi(p.Book)
	return &models.BookInstance{
		BookID:  bookID,
		Imprint: p.Imprint,
		Status:  p.Status,
		DueBack: models.ParseDate(p.DueBack),
	}
}
