package books

import "strconv"

// BookCreatePayload is the book create form. The author field carries the
// selected author's id; genre carries zero or more genre ids from the
// checkbox group (absent input decodes to an empty set, a single value to a
// one-element set).
type BookCreatePayload struct {
	Title   string   `form:"title" json:"title" mod:"trim,escape" validate:"required"`
	Author  string   `form:"author" json:"author" mod:"trim,escape" validate:"required"`
	Summary string   `form:"summary" json:"summary" mod:"trim,escape" validate:"required"`
	ISBN    string   `form:"isbn" json:"isbn" mod:"trim,escape" validate:"min=10"`
	Genre   []string `form:"genre" json:"genre" mod:"escape"`
}

// BookUpdatePayload mirrors BookCreatePayload except for the ISBN minimum:
// create requires at least 10 characters, update only requires the field to
// be non-empty. The mismatch is deliberate; see DESIGN.md.
type BookUpdatePayload struct {
	Title   string   `form:"title" json:"title" mod:"trim,escape" validate:"required"`
	Author  string   `form:"author" json:"author" mod:"trim,escape" validate:"required"`
	Summary string   `form:"summary" json:"summary" mod:"trim,escape" validate:"required"`
	ISBN    string   `form:"isbn" json:"isbn" mod:"trim,escape" validate:"min=1"`
	Genre   []string `form:"genre" json:"genre" mod:"escape"`
}

func parseAuthorID(author string) int {
	id, _ := strconv.Atoi(author)
	return id
}

func parseGenreIDs(genre []string) []int {
	ids := make([]int, 0, len(genre))
	for _, g := range genre {
		id, err := strconv.Atoi(g)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
