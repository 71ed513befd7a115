package bookinstances

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

func seedBook(ctx context.Context, t *testing.T, db *bun.DB) int {
	t.Helper()
	res, err := db.ExecContext(ctx, `INSERT INTO books (title, author_id, summary, isbn) VALUES ('Emma', 1, 's', '9780141439587')`)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func TestServiceCreateBookInstance(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	bookID := seedBook(ctx, t, db)

	instance := &models.BookInstance{
		BookID:  bookID,
		Imprint: "Penguin Classics",
		Status:  models.StatusLoaned,
		DueBack: models.ParseDate("2026-09-15"),
	}
	require.NoError(t, svc.CreateBookInstance(ctx, instance))
	assert.NotZero(t, instance.ID)

	got, err := svc.RetrieveBookInstance(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, "Penguin Classics", got.Imprint)
	assert.Equal(t, models.StatusLoaned, got.Status)
	require.NotNil(t, got.DueBack)
	assert.Equal(t, "Sep 15, 2026", models.DisplayDate(got.DueBack))
	require.NotNil(t, got.Book)
	assert.Equal(t, "Emma", got.Book.Title)
}

func TestServiceCreateBookInstanceNilDueBack(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	bookID := seedBook(ctx, t, db)

	instance := &models.BookInstance{BookID: bookID, Imprint: "Oxford", Status: models.StatusAvailable}
	require.NoError(t, svc.CreateBookInstance(ctx, instance))

	got, err := svc.RetrieveBookInstance(ctx, instance.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueBack)
}

func TestServiceCreateBookInstanceUnknownStatusRoundTrips(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	bookID := seedBook(ctx, t, db)

	// Status values outside the known set are stored as-is.
	instance := &models.BookInstance{BookID: bookID, Imprint: "Oxford", Status: "Misplaced"}
	require.NoError(t, svc.CreateBookInstance(ctx, instance))

	got, err := svc.RetrieveBookInstance(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, "Misplaced", got.Status)
}

func TestServiceRetrieveBookInstanceNotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.RetrieveBookInstance(context.Background(), 9999)
	assert.ErrorIs(t, err, errcodes.NotFound("BookInstance"))
}

func TestServiceListAvailable(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	bookID := seedBook(ctx, t, db)

	for _, status := range []string{models.StatusAvailable, models.StatusLoaned, models.StatusAvailable, models.StatusMaintenance} {
		require.NoError(t, svc.CreateBookInstance(ctx, &models.BookInstance{BookID: bookID, Imprint: "i", Status: status}))
	}

	available, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 2)

	all, err := svc.ListBookInstances(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestServiceUpdateBookInstance(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	bookID := seedBook(ctx, t, db)

	instance := &models.BookInstance{BookID: bookID, Imprint: "Oxford", Status: models.StatusAvailable}
	require.NoError(t, svc.CreateBookInstance(ctx, instance))

	instance.Status = models.StatusLoaned
	instance.DueBack = models.ParseDate("2026-10-01")
	opts := UpdateBookInstanceOptions{Columns: []string{"book_id", "imprint", "status", "due_back"}}
	require.NoError(t, svc.UpdateBookInstance(ctx, instance, opts))

	got, err := svc.RetrieveBookInstance(ctx, instance.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusLoaned, got.Status)
	require.NotNil(t, got.DueBack)
}

func TestServiceDeleteBookInstance(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	bookID := seedBook(ctx, t, db)

	instance := &models.BookInstance{BookID: bookID, Imprint: "Oxford", Status: models.StatusAvailable}
	require.NoError(t, svc.CreateBookInstance(ctx, instance))

	require.NoError(t, svc.DeleteBookInstance(ctx, instance.ID))

	_, err := svc.RetrieveBookInstance(ctx, instance.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("BookInstance"))

	// The book itself is untouched.
	count, err := db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
