package bookinstances

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/clxsh19/locallibrary/pkg/books"
	"github.com/clxsh19/locallibrary/pkg/errcodes"
	"github.com/clxsh19/locallibrary/pkg/models"
	"github.com/clxsh19/locallibrary/pkg/render"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	instanceService *Service
	bookService     *books.Service
	rnd             render.Renderer
}

type instanceView struct {
	ID        int    `json:"id"`
	BookID    int    `json:"book_id"`
	BookTitle string `json:"book_title"`
	Imprint   string `json:"imprint"`
	Status    string `json:"status"`
	DueBack   string `json:"due_back"`
}

func displayInstance(inst *models.BookInstance) instanceView {
	view := instanceView{
		ID:      inst.ID,
		BookID:  inst.BookID,
		Imprint: inst.Imprint,
		Status:  inst.Status,
		DueBack: models.DisplayDate(inst.DueBack),
	}
	if inst.Book != nil {
		view.BookTitle = inst.Book.Title
	}
	return view
}

func formInstance(inst *models.BookInstance) instanceView {
	view := displayInstance(inst)
	view.DueBack = models.FormDate(inst.DueBack)
	return view
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	instances, err := h.instanceService.ListBookInstances(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]instanceView, len(instances))
	for i, inst := range instances {
		views[i] = displayInstance(inst)
	}

	return h.rnd.Render(c, http.StatusOK, "bookinstance_list", map[string]interface{}{
		"title":             "Book Instance List",
		"bookinstance_list": views,
	})
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("BookInstance")
	}

	instance, err := h.instanceService.RetrieveBookInstance(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "bookinstance_detail", map[string]interface{}{
		"title":        fmt.Sprintf("Copy: %d", instance.ID),
		"bookinstance": displayInstance(instance),
	})
}

func (h *handler) createForm(c echo.Context) error {
	ctx := c.Request().Context()

	allBooks, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "bookinstance_form", map[string]interface{}{
		"title":       "Create BookInstance",
		"book_list":   allBooks,
		"status_list": models.Statuses,
	})
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookInstancePayload{}
	if err := c.Bind(&params); err != nil {
		fields, ok := errcodes.Fields(err)
		if !ok {
			return errors.WithStack(err)
		}
		return h.renderFormWithErrors(c, "Create BookInstance", params, fields)
	}

	instance := params.BookInstance()
	if err := h.instanceService.CreateBookInstance(ctx, instance); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, fmt.Sprintf("/catalog/bookinstance/%d", instance.ID))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("BookInstance")
	}

	instance, err := h.instanceService.RetrieveBookInstance(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	allBooks, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "bookinstance_form", map[string]interface{}{
		"title":        "Update BookInstance",
		"bookinstance": formInstance(instance),
		"book_list":    allBooks,
		"status_list":  models.Statuses,
	})
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("BookInstance")
	}

	params := BookInstancePayload{}
	if err := c.Bind(&params); err != nil {
		fields, ok := errcodes.Fields(err)
		if !ok {
			return errors.WithStack(err)
		}
		return h.renderFormWithErrors(c, "Update BookInstance", params, fields)
	}

	instance, err := h.instanceService.RetrieveBookInstance(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	candidate := params.BookInstance()
	instance.BookID = candidate.BookID
	instance.Imprint = candidate.Imprint
	instance.Status = candidate.Status
	instance.DueBack = candidate.DueBack

	opts := UpdateBookInstanceOptions{Columns: []string{"book_id", "imprint", "status", "due_back"}}
	if err := h.instanceService.UpdateBookInstance(ctx, instance, opts); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, fmt.Sprintf("/catalog/bookinstance/%d", instance.ID))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return render.Redirect(c, "/catalog/bookinstances")
	}

	instance, err := h.instanceService.RetrieveBookInstance(ctx, id)
	if err != nil {
		if errors.Is(err, errcodes.NotFound("BookInstance")) {
			return render.Redirect(c, "/catalog/bookinstances")
		}
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "bookinstance_delete", map[string]interface{}{
		"title":        "Delete BookInstance",
		"bookinstance": displayInstance(instance),
	})
}

func (h *handler) deleteInstance(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return render.Redirect(c, "/catalog/bookinstances")
	}

	if err := h.instanceService.DeleteBookInstance(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return render.Redirect(c, "/catalog/bookinstances")
}

func (h *handler) renderFormWithErrors(c echo.Context, title string, params BookInstancePayload, fields []errcodes.FieldError) error {
	ctx := c.Request().Context()

	allBooks, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "bookinstance_form", map[string]interface{}{
		"title":        title,
		"bookinstance": params,
		"book_list":    allBooks,
		"status_list":  models.Statuses,
		"errors":       fields,
	})
}
