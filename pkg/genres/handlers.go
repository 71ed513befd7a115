package genres

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
	genreService *Service
	rnd          render.Renderer
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	genres, err := h.genreService.ListGenres(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "genre_list", map[string]interface{}{
		"title":      "Genre List",
		"genre_list": genres,
	})
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	var genre *models.Genre
	var books []*models.Book

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		genre, err = h.genreService.RetrieveGenre(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = h.genreService.ListBooksFor(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "genre_detail", map[string]interface{}{
		"title":       "Genre Detail",
		"genre":       genre,
		"genre_books": books,
	})
}

func (h *handler) createForm(c echo.Context) error {
	return h.rnd.Render(c, http.StatusOK, "genre_form", map[string]interface{}{
		"title": "Create Genre",
	})
}

// create is idempotent by genre name: when the submitted name already
// exists, no insert happens and the flow redirects to the existing genre.
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := GenrePayload{}
	if err := c.Bind(&params); err != nil {
		fields, ok := errcodes.Fields(err)
		if !ok {
			return errors.WithStack(err)
		}
		return h.rnd.Render(c, http.StatusOK, "genre_form", map[string]interface{}{
			"title":  "Create Genre",
			"genre":  params,
			"errors": fields,
		})
	}

	genre, err := h.genreService.FindOrCreateGenre(ctx, params.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, fmt.Sprintf("/catalog/genre/%d", genre.ID))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	genre, err := h.genreService.RetrieveGenre(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "genre_form", map[string]interface{}{
		"title": "Update Genre",
		"genre": genre,
	})
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Genre")
	}

	params := GenrePayload{}
	if err := c.Bind(&params); err != nil {
		fields, ok := errcodes.Fields(err)
		if !ok {
			return errors.WithStack(err)
		}
		return h.rnd.Render(c, http.StatusOK, "genre_form", map[string]interface{}{
			"title":  "Update Genre",
			"genre":  params,
			"errors": fields,
		})
	}

	genre, err := h.genreService.RetrieveGenre(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	genre.Name = params.Name
	opts := UpdateGenreOptions{Columns: []string{"name"}}
	if err := h.genreService.UpdateGenre(ctx, genre, opts); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, fmt.Sprintf("/catalog/genre/%d", genre.ID))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return render.Redirect(c, "/catalog/genres")
	}

	genre, err := h.genreService.RetrieveGenre(ctx, id)
	if err != nil {
		if errors.Is(err, errcodes.NotFound("Genre")) {
			return render.Redirect(c, "/catalog/genres")
		}
		return errors.WithStack(err)
	}

	books, err := h.genreService.ListBooksFor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "genre_delete", map[string]interface{}{
		"title":       "Delete Genre",
		"genre":       genre,
		"genre_books": books,
	})
}

func (h *handler) deleteGenre(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return render.Redirect(c, "/catalog/genres")
	}

	if err := h.genreService.DeleteGenre(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, "/catalog/genres")
}
