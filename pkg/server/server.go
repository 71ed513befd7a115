package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/clxsh19/locallibrary/pkg/authors"
	"github.com/clxsh19/locallibrary/pkg/binder"
	"github.com/clxsh19/locallibrary/pkg/bookinstances"
	"github.com/clxsh19/locallibrary/pkg/books"
	"github.com/clxsh19/locallibrary/pkg/catalog"
	"github.com/clxsh19/locallibrary/pkg/config"
	"github.com/clxsh19/locallibrary/pkg/errcodes"
	"github.com/clxsh19/locallibrary/pkg/genres"
	"github.com/clxsh19/locallibrary/pkg/render"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())

	health.RegisterRoutes(e)

	rnd := render.NewJSON()

	// Everything catalog-facing hangs off a single group so the resource
	// packages stay unaware of the mount point.
	catalogGroup := e.Group("/catalog")
	catalog.RegisterRoutesWithGroup(catalogGroup, db, rnd)
	authors.RegisterRoutesWithGroup(catalogGroup, db, rnd)
	genres.RegisterRoutesWithGroup(catalogGroup, db, rnd)
	books.RegisterRoutesWithGroup(catalogGroup, db, rnd)
	bookinstances.RegisterRoutesWithGroup(catalogGroup, db, rnd)

	e.GET("/", redirectToCatalog)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func redirectToCatalog(c echo.Context) error {
	return render.Redirect(c, "/catalog")
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
