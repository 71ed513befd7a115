package authors

import "github.com/clxsh19/locallibrary/pkg/models"

// AuthorPayload is the author create/update form. Names are trimmed, escaped,
// required, and alphanumeric-only; dates are optional ISO-8601 strings.
type AuthorPayload struct {
	FirstName   string `form:"first_name" json:"first_name" mod:"trim,escape" validate:"required,alphanum"`
	FamilyName  string `form:"family_name" json:"family_name" mod:"trim,escape" validate:"required,alphanum"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth" mod:"trim" validate:"date"`
	DateOfDeath string `form:"date_of_death" json:"date_of_death" mod:"trim" validate:"date"`
}

// Author builds the sanitized candidate entity. Empty date inputs normalize
// to nil so they persist as NULL.
func (p *AuthorPayload) Author() *models.Author {
	return &models.Author{
		FirstName:   p.FirstName,
		FamilyName:  p.FamilyName,
		DateOfBirth: models.ParseDate(p.DateOfBirth),
		DateOfDeath: models.ParseDate(p.DateOfDeath),
	}
}
