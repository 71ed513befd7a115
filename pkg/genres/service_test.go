package genres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/clxsh19/locallibrary/pkg/errcodes"
	"github.com/clxsh19/locallibrary/pkg/migrations"
	"github.com/clxsh19/locallibrary/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestServiceCreateGenre(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	genre := &models.Genre{Name: "Fantasy"}
	require.NoError(t, svc.CreateGenre(ctx, genre))
	assert.NotZero(t, genre.ID)

	got, err := svc.RetrieveGenre(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", got.Name)
}

func TestServiceFindOrCreateGenreIsIdempotent(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first, err := svc.FindOrCreateGenre(ctx, "Fiction")
	require.NoError(t, err)

	// Submitting the same name again must reuse the row, not duplicate it.
	second, err := svc.FindOrCreateGenre(ctx, "Fiction")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := db.NewSelect().Model((*models.Genre)(nil)).Where("name = ?", "Fiction").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestServiceFindByNameIsExact(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.CreateGenre(ctx, &models.Genre{Name: "Science Fiction"}))

	_, err := svc.FindByName(ctx, "Science")
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))

	got, err := svc.FindByName(ctx, "Science Fiction")
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", got.Name)
}

func TestServiceRetrieveGenreNotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.RetrieveGenre(context.Background(), 9999)
	assert.ErrorIs(t, err, errcodes.NotFound("Genre"))
}

func TestServiceDeleteGenreRemovesJoinRows(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	genre := &models.Genre{Name: "Fantasy"}
	require.NoError(t, svc.CreateGenre(ctx, genre))

	_, err := db.ExecContext(ctx, `INSERT INTO books (title, author_id, summary, isbn) VALUES ('The Hobbit', 1, 's', '9780547928227')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO book_genres (book_id, genre_id) VALUES (1, ?)`, genre.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGenre(ctx, genre.ID))

	joins, err := db.NewSelect().Model((*models.BookGenre)(nil)).Where("genre_id = ?", genre.ID).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, joins)

	// The book itself stays.
	books, err := db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, books)
}

func TestServiceListBooksFor(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	genre := &models.Genre{Name: "Fantasy"}
	require.NoError(t, svc.CreateGenre(ctx, genre))
	other := &models.Genre{Name: "History"}
	require.NoError(t, svc.CreateGenre(ctx, other))

	_, err := db.ExecContext(ctx, `INSERT INTO books (title, author_id, summary, isbn) VALUES ('The Hobbit', 1, 's', '9780547928227'), ('SPQR', 2, 's', '9781631494222')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO book_genres (book_id, genre_id) VALUES (1, ?), (2, ?)`, genre.ID, other.ID)
	require.NoError(t, err)

	books, err := svc.ListBooksFor(ctx, genre.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Hobbit", books[0].Title)
}
