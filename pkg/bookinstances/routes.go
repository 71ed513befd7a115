package bookinstances

import (
	"github.com/clxsh19/locallibrary/pkg/books"
	"github.com/clxsh19/locallibrary/pkg/render"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers all book instance routes on the given
// group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, rnd render.Renderer) {
	h := &handler{
		instanceService: NewService(db),
		bookService:     books.NewService(db),
		rnd:             rnd,
	}

	g.GET("/bookinstances", h.list)
	g.GET("/bookinstance/create", h.createForm)
	g.POST("/bookinstance/create", h.create)
	g.GET("/bookinstance/:id", h.retrieve)
	g.GET("/bookinstance/:id/update", h.updateForm)
	g.POST("/bookinstance/:id/update", h.update)
	g.GET("/bookinstance/:id/delete", h.deleteForm)
	g.POST("/bookinstance/:id/delete", h.deleteInstance)
}
