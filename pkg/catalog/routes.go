package catalog

import (
	"github.com/clxsh19/locallibrary/pkg/render"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers the catalog home route on the given
// group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, rnd render.Renderer) {
	h := &handler{
		catalogService: NewService(db),
		rnd:            rnd,
	}

	g.GET("", h.home)
	g.GET("/", h.home)
}
