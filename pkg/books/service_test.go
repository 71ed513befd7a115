package books

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

func seedAuthor(ctx context.Context, t *testing.T, db *bun.DB) int {
	t.Helper()
	res, err := db.ExecContext(ctx, `INSERT INTO authors (first_name, family_name) VALUES ('Jane', 'Austen')`)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func seedGenre(ctx context.Context, t *testing.T, db *bun.DB, name string) int {
	t.Helper()
	res, err := db.ExecContext(ctx, `INSERT INTO genres (name) VALUES (?)`, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func joinCount(ctx context.Context, t *testing.T, db *bun.DB, bookID int) int {
	t.Helper()
	count, err := db.NewSelect().Model((*models.BookGenre)(nil)).Where("book_id = ?", bookID).Count(ctx)
	require.NoError(t, err)
	return count
}

func TestServiceCreateBookWithGenres(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	authorID := seedAuthor(ctx, t, db)
	fantasy := seedGenre(ctx, t, db, "Fantasy")
	fiction := seedGenre(ctx, t, db, "Fiction")

	book := &models.Book{
		Title:    "Emma",
		AuthorID: authorID,
		Summary:  "A novel about youthful hubris",
		ISBN:     "9780141439587",
	}
	require.NoError(t, svc.CreateBook(ctx, book, []int{fantasy, fiction}))
	assert.NotZero(t, book.ID)

	assert.Equal(t, 2, joinCount(ctx, t, db, book.ID))

	genres, err := svc.ListGenresFor(ctx, book.ID)
	require.NoError(t, err)
	assert.Len(t, genres, 2)
}

func TestServiceCreateBookDeduplicatesGenreIDs(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	authorID := seedAuthor(ctx, t, db)
	fantasy := seedGenre(ctx, t, db, "Fantasy")

	book := &models.Book{Title: "Emma", AuthorID: authorID, Summary: "s", ISBN: "9780141439587"}
	require.NoError(t, svc.CreateBook(ctx, book, []int{fantasy, fantasy, fantasy}))

	assert.Equal(t, 1, joinCount(ctx, t, db, book.ID))
}

func TestServiceRetrieveBookJoinsAuthor(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	authorID := seedAuthor(ctx, t, db)
	book := &models.Book{Title: "Emma", AuthorID: authorID, Summary: "s", ISBN: "9780141439587"}
	require.NoError(t, svc.CreateBook(ctx, book, nil))

	got, err := svc.RetrieveBook(ctx, book.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Austen, Jane", got.Author.Name())
}

func TestServiceRetrieveBookNotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.RetrieveBook(context.Background(), 9999)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func TestServiceUpdateBookReplacesGenres(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	authorID := seedAuthor(ctx, t, db)
	g1 := seedGenre(ctx, t, db, "Fantasy")
	g2 := seedGenre(ctx, t, db, "Fiction")
	g3 := seedGenre(ctx, t, db, "History")
	g4 := seedGenre(ctx, t, db, "Poetry")

	book := &models.Book{Title: "Emma", AuthorID: authorID, Summary: "s", ISBN: "9780141439587"}
	require.NoError(t, svc.CreateBook(ctx, book, []int{g1, g2, g3}))
	require.Equal(t, 3, joinCount(ctx, t, db, book.ID))

	// A full replace: the genre set afterwards is exactly the submitted set.
	opts := UpdateBookOptions{
		Columns:       []string{"title", "author_id", "summary", "isbn"},
		ReplaceGenres: true,
		GenreIDs:      []int{g2, g4},
	}
	require.NoError(t, svc.UpdateBook(ctx, book, opts))

	genres, err := svc.ListGenresFor(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, genres, 2)

	ids := []int{genres[0].ID, genres[1].ID}
	assert.ElementsMatch(t, []int{g2, g4}, ids)
	assert.Equal(t, 2, joinCount(ctx, t, db, book.ID))
}

func TestServiceUpdateBookReplaceWithEmptySet(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	authorID := seedAuthor(ctx, t, db)
	g1 := seedGenre(ctx, t, db, "Fantasy")

	book := &models.Book{Title: "Emma", AuthorID: authorID, Summary: "s", ISBN: "9780141439587"}
	require.NoError(t, svc.CreateBook(ctx, book, []int{g1}))

	opts := UpdateBookOptions{
		Columns:       []string{"title", "author_id", "summary", "isbn"},
		ReplaceGenres: true,
		GenreIDs:      nil,
	}
	require.NoError(t, svc.UpdateBook(ctx, book, opts))

	assert.Zero(t, joinCount(ctx, t, db, book.ID))
}

func TestServiceDeleteBookCascadesJoinRows(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	authorID := seedAuthor(ctx, t, db)
	g1 := seedGenre(ctx, t, db, "Fantasy")
	g2 := seedGenre(ctx, t, db, "Fiction")

	book := &models.Book{Title: "Emma", AuthorID: authorID, Summary: "s", ISBN: "9780141439587"}
	require.NoError(t, svc.CreateBook(ctx, book, []int{g1, g2}))

	require.NoError(t, svc.DeleteBook(ctx, book.ID))

	_, err := svc.RetrieveBook(ctx, book.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
	assert.Zero(t, joinCount(ctx, t, db, book.ID))

	// The genres themselves survive.
	count, err := db.NewSelect().Model((*models.Genre)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestServiceListInstancesFor(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	authorID := seedAuthor(ctx, t, db)
	book := &models.Book{Title: "Emma", AuthorID: authorID, Summary: "s", ISBN: "9780141439587"}
	require.NoError(t, svc.CreateBook(ctx, book, nil))

	_, err := db.ExecContext(ctx, `INSERT INTO book_instances (book_id, imprint, status) VALUES (?, 'Penguin Classics', 'Available'), (?, 'Oxford', 'Loaned')`, book.ID, book.ID)
	require.NoError(t, err)

	instances, err := svc.ListInstancesFor(ctx, book.ID)
	require.NoError(t, err)
	assert.Len(t, instances, 2)
}

func TestGenreOptionsProjection(t *testing.T) {
	t.Parallel()

	all := []*models.Genre{
		{ID: 1, Name: "Fantasy"},
		{ID: 2, Name: "Fiction"},
		{ID: 3, Name: "History"},
	}

	opts := genreOptions(all, []int{2})
	require.Len(t, opts, 3)
	assert.False(t, opts[0].Checked)
	assert.True(t, opts[1].Checked)
	assert.False(t, opts[2].Checked)

	// No selection marks nothing.
	for _, opt := range genreOptions(all, nil) {
		assert.False(t, opt.Checked)
	}
}
