package books

import "github.com/clxsh19/locallibrary/pkg/models"

// GenreOption is one genre checkbox in the book form: the genre itself plus
// whether the current submission (or the stored book) has it selected. It is
// a fresh projection over the fetched genre list, never a mutation of it.
type GenreOption struct {
	*models.Genre
	Checked bool `json:"checked"`
}

// genreOptions cross-references the reference genre list against the
// selected ids so checkbox state survives a failed submission.
func genreOptions(all []*models.Genre, selected []int) []GenreOption {
	set := make(map[int]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
	}

	options := make([]GenreOption, len(all))
	for i, genre := range all {
		_, checked := set[genre.ID]
		options[i] = GenreOption{Genre: genre, Checked: checked}
	}
	return options
}
