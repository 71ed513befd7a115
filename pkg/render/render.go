// Package render is the boundary to the presentation layer. Handlers hand it
// a view name and a data payload; how that becomes HTML is not the catalog's
// concern. The default implementation serializes the pair as JSON, which the
// tests also rely on to observe what a view would have received.
package render

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// Renderer receives a view name and its data payload.
type Renderer interface {
	Render(c echo.Context, code int, view string, data map[string]interface{}) error
}

// JSON is the default Renderer. It writes {"view": ..., "data": ...}.
type JSON struct{}

func NewJSON() JSON {
	return JSON{}
}

func (JSON) Render(c echo.Context, code int, view string, data map[string]interface{}) error {
	payload := map[string]interface{}{
		"view": view,
		"data": data,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.JSONBlob(code, b))
}

// Redirect sends the browser to the given catalog path.
func Redirect(c echo.Context, path string) error {
	return errors.WithStack(c.Redirect(http.StatusFound, path))
}
