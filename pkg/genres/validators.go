package genres

// GenrePayload is the genre create/update form.
type GenrePayload struct {
	Name string `form:"name" json:"name" mod:"trim,escape" validate:"min=3"`
}
