package books

import (
	"github.com/clxsh19/locallibrary/pkg/authors"
	"github.com/clxsh19/locallibrary/pkg/genres"
	"github.com/clxsh19/locallibrary/pkg/render"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers all book routes on the given group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, rnd render.Renderer) {
	h := &handler{
		bookService:   NewService(db),
		authorService: authors.NewService(db),
		genreService:  genres.NewService(db),
		rnd:           rnd,
	}

	g.GET("/books", h.list)
	g.GET("/book/create", h.createForm)
	g.POST("/book/create", h.create)
	g.GET("/book/:id", h.retrieve)
	g.GET("/book/:id/update", h.updateForm)
	g.POST("/book/:id/update", h.update)
	g.GET("/book/:id/delete", h.deleteForm)
	g.POST("/book/:id/delete", h.deleteBook)
}
