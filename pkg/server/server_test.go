package server

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clxsh19/locallibrary/pkg/config"
	"github.com/clxsh19/locallibrary/pkg/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	cfg := &config.Config{Environment: "test", ServerHost: "127.0.0.1", ServerPort: 0}
	srv, err := New(cfg, db)
	require.NoError(t, err)
	return srv.Handler
}

func TestServerRoutes(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name         string
		method       string
		path         string
		expectedCode int
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedCode: http.StatusOK},
		{name: "root redirects to catalog", method: http.MethodGet, path: "/", expectedCode: http.StatusFound},
		{name: "home", method: http.MethodGet, path: "/catalog", expectedCode: http.StatusOK},
		{name: "book list", method: http.MethodGet, path: "/catalog/books", expectedCode: http.StatusOK},
		{name: "author list", method: http.MethodGet, path: "/catalog/authors", expectedCode: http.StatusOK},
		{name: "genre list", method: http.MethodGet, path: "/catalog/genres", expectedCode: http.StatusOK},
		{name: "instance list", method: http.MethodGet, path: "/catalog/bookinstances", expectedCode: http.StatusOK},
		{name: "author create form", method: http.MethodGet, path: "/catalog/author/create", expectedCode: http.StatusOK},
		{name: "book create form", method: http.MethodGet, path: "/catalog/book/create", expectedCode: http.StatusOK},
		{name: "missing book", method: http.MethodGet, path: "/catalog/book/42", expectedCode: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, path: "/nope", expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
