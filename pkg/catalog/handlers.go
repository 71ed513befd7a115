package catalog

import (
	"net/http"

	"github.com/clxsh19/locallibrary/pkg/render"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	catalogService *Service
	rnd            render.Renderer
}

func (h *handler) home(c echo.Context) error {
	ctx := c.Request().Context()

	counts, err := h.catalogService.RetrieveCounts(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.rnd.Render(c, http.StatusOK, "index", map[string]interface{}{
		"title":  "Local Library Home",
		"counts": counts,
	})
}
