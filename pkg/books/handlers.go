package books

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/clxsh19/locallibrary/pkg/authors"
	"github.com/clxsh19/locallibrary/pkg/errcodes"
	"github.com/clxsh19/locallibrary/pkg/genres"
	"github.com/clxsh19/locallibrary/pkg/models"
	"github.com/clxsh19/locallibrary/pkg/render"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type handler struct {
	bookService   *Service
	authorService *authors.Service
	genreService  *genres.Service
	rnd           render.Renderer
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "book_list", map[string]interface{}{
		"title":     "Book List",
		"book_list": books,
	})
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// The book, its genres, and its copies are mutually independent reads.
	var book *models.Book
	var bookGenres []*models.Genre
	var instances []*models.BookInstance

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = h.bookService.RetrieveBook(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		bookGenres, err = h.bookService.ListGenresFor(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		instances, err = h.bookService.ListInstancesFor(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.WithStack(err)
	}

	book.Genres = bookGenres

	return h.rnd.Render(c, http.StatusOK, "book_detail", map[string]interface{}{
		"title":          book.Title,
		"book":           book,
		"book_instances": instanceViews(instances),
	})
}

func (h *handler) createForm(c echo.Context) error {
	ctx := c.Request().Context()

	allAuthors, allGenres, err := h.referenceData(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "book_form", map[string]interface{}{
		"title":   "Create Book",
		"authors": allAuthors,
		"genres":  genreOptions(allGenres, nil),
	})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookCreatePayload{}
	if err := c.Bind(&params); err != nil {
		fields, ok := errcodes.Fields(err)
		if !ok {
			return errors.WithStack(err)
		}
		return h.renderFormWithErrors(c, "Create Book", params.Title, params.Author,
			params.Summary, params.ISBN, parseGenreIDs(params.Genre), fields)
	}

	book := &models.Book{
		Title:    params.Title,
		AuthorID: parseAuthorID(params.Author),
		Summary:  params.Summary,
		ISBN:     params.ISBN,
	}
	if err := h.bookService.CreateBook(ctx, book, parseGenreIDs(params.Genre)); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, fmt.Sprintf("/catalog/book/%d", book.ID))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	var book *models.Book
	var bookGenres []*models.Genre
	var allAuthors []*models.Author
	var allGenres []*models.Genre

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = h.bookService.RetrieveBook(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		bookGenres, err = h.bookService.ListGenresFor(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		allAuthors, err = h.authorService.ListAuthors(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		allGenres, err = h.genreService.ListGenres(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return errors.WithStack(err)
	}

	selected := make([]int, len(bookGenres))
	for i, genre := range bookGenres {
		selected[i] = genre.ID
	}

	return h.rnd.Render(c, http.StatusOK, "book_form", map[string]interface{}{
		"title":   "Update Book",
		"book":    book,
		"authors": allAuthors,
		"genres":  genreOptions(allGenres, selected),
	})
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := BookUpdatePayload{}
	if err := c.Bind(&params); err != nil {
		fields, ok := errcodes.Fields(err)
		if !ok {
			return errors.WithStack(err)
		}
		return h.renderFormWithErrors(c, "Update Book", params.Title, params.Author,
			params.Summary, params.ISBN, parseGenreIDs(params.Genre), fields)
	}

	book, err := h.bookService.RetrieveBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	book.Title = params.Title
	book.AuthorID = parseAuthorID(params.Author)
	book.Summary = params.Summary
	book.ISBN = params.ISBN

	opts := UpdateBookOptions{
		Columns:       []string{"title", "author_id", "summary", "isbn"},
		ReplaceGenres: true,
		GenreIDs:      parseGenreIDs(params.Genre),
	}
	if err := h.bookService.UpdateBook(ctx, book, opts); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, fmt.Sprintf("/catalog/book/%d", book.ID))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return render.Redirect(c, "/catalog/books")
	}

	book, err := h.bookService.RetrieveBook(ctx, id)
	if err != nil {
		if errors.Is(err, errcodes.NotFound("Book")) {
			return render.Redirect(c, "/catalog/books")
		}
		return errors.WithStack(err)
	}

	instances, err := h.bookService.ListInstancesFor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "book_delete", map[string]interface{}{
		"title":          "Delete Book",
		"book":           book,
		"book_instances": instanceViews(instances),
	})
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return render.Redirect(c, "/catalog/books")
	}

	if err := h.bookService.DeleteBook(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, "/catalog/books")
}

// renderFormWithErrors re-renders the book form after a failed submission:
// the sanitized echo, the full error list, and the checkbox state rebuilt by
// cross-referencing the submitted genre ids against the reference list.
func (h *handler) renderFormWithErrors(c echo.Context, title, bookTitle, author, summary, isbn string, genreIDs []int, fields []errcodes.FieldError) error {
	ctx := c.Request().Context()

	allAuthors, allGenres, err := h.referenceData(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "book_form", map[string]interface{}{
		"title": title,
		"book": map[string]interface{}{
			"title":   bookTitle,
			"author":  author,
			"summary": summary,
			"isbn":    isbn,
		},
		"authors": allAuthors,
		"genres":  genreOptions(allGenres, genreIDs),
		"errors":  fields,
	})
}

// referenceData fetches the author and genre lists that populate the book
// form selects.
func (h *handler) referenceData(ctx context.Context) ([]*models.Author, []*models.Genre, error) {
	var allAuthors []*models.Author
	var allGenres []*models.Genre

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allAuthors, err = h.authorService.ListAuthors(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		allGenres, err = h.genreService.ListGenres(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return allAuthors, allGenres, nil
}

func instanceViews(instances []*models.BookInstance) []map[string]interface{} {
	views := make([]map[string]interface{}, len(instances))
	for i, inst := range instances {
		views[i] = map[string]interface{}{
			"id":       inst.ID,
			"imprint":  inst.Imprint,
			"status":   inst.Status,
			"due_back": models.DisplayDate(inst.DueBack),
		}
	}
	return views
}
