package authors

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/clxsh19/locallibrary/pkg/errcodes"
	"github.com/clxsh19/locallibrary/pkg/models"
	"github.com/clxsh19/locallibrary/pkg/render"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type handler struct {
	authorService *Service
	rnd           render.Renderer
}

// authorView is the read shape handed to author views. Dates are rendered as
// "Jan 02, 2006" for detail/list views and "2006-01-02" for edit forms.
type authorView struct {
	ID          int    `json:"id"`
	FirstName   string `json:"first_name"`
	FamilyName  string `json:"family_name"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	DateOfDeath string `json:"date_of_death"`
}

func displayAuthor(a *models.Author) authorView {
	return authorView{
		ID:          a.ID,
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		Name:        a.Name(),
		DateOfBirth: models.DisplayDate(a.DateOfBirth),
		DateOfDeath: models.DisplayDate(a.DateOfDeath),
	}
}

func formAuthor(a *models.Author) authorView {
	return authorView{
		ID:          a.ID,
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		Name:        a.Name(),
		DateOfBirth: models.FormDate(a.DateOfBirth),
		DateOfDeath: models.FormDate(a.DateOfDeath),
	}
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	authors, err := h.authorService.ListAuthors(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]authorView, len(authors))
	for i, a := range authors {
		views[i] = displayAuthor(a)
	}

	return h.rnd.Render(c, http.StatusOK, "author_list", map[string]interface{}{
		"title":       "Author List",
		"author_list": views,
	})
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	// The author row and its books are independent reads.
	var author *models.Author
	var books []*models.Book

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		author, err = h.authorService.RetrieveAuthor(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = h.authorService.ListBooksFor(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "author_detail", map[string]interface{}{
		"title":        "Author Detail",
		"author":       displayAuthor(author),
		"author_books": books,
	})
}

func (h *handler) createForm(c echo.Context) error {
	return h.rnd.Render(c, http.StatusOK, "author_form", map[string]interface{}{
		"title": "Create Author",
	})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := AuthorPayload{}
	if err := c.Bind(&params); err != nil {
		fields, ok := errcodes.Fields(err)
		if !ok {
			return errors.WithStack(err)
		}
		// Re-render with the sanitized echo so nothing the user typed is
		// lost. Nothing is persisted.
		return h.rnd.Render(c, http.StatusOK, "author_form", map[string]interface{}{
			"title":  "Create Author",
			"author": params,
			"errors": fields,
		})
	}

	author := params.Author()
	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, fmt.Sprintf("/catalog/author/%d", author.ID))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "author_form", map[string]interface{}{
		"title":  "Update Author",
		"author": formAuthor(author),
	})
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	params := AuthorPayload{}
	if err := c.Bind(&params); err != nil {
		fields, ok := errcodes.Fields(err)
		if !ok {
			return errors.WithStack(err)
		}
		return h.rnd.Render(c, http.StatusOK, "author_form", map[string]interface{}{
			"title":  "Update Author",
			"author": params,
			"errors": fields,
		})
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	candidate := params.Author()
	author.FirstName = candidate.FirstName
	author.FamilyName = candidate.FamilyName
	author.DateOfBirth = candidate.DateOfBirth
	author.DateOfDeath = candidate.DateOfDeath

	opts := UpdateAuthorOptions{Columns: []string{"first_name", "family_name", "date_of_birth", "date_of_death"}}
	if err := h.authorService.UpdateAuthor(ctx, author, opts); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, fmt.Sprintf("/catalog/author/%d", author.ID))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return render.Redirect(c, "/catalog/authors")
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		// A missing author on the delete path is treated as already gone.
		if errors.Is(err, errcodes.NotFound("Author")) {
			return render.Redirect(c, "/catalog/authors")
		}
		return errors.WithStack(err)
	}

	books, err := h.authorService.ListBooksFor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "author_delete", map[string]interface{}{
		"title":        "Delete Author",
		"author":       displayAuthor(author),
		"author_books": books,
	})
}

func (h *handler) deleteAuthor(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return render.Redirect(c, "/catalog/authors")
	}

	if err := h.authorService.DeleteAuthor(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, "/catalog/authors")
}
