package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/clxsh19/locallibrary/pkg/migrations"
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

func TestServiceRetrieveCountsEmpty(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)

	counts, err := svc.RetrieveCounts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts.Books)
	assert.Zero(t, counts.BookInstances)
	assert.Zero(t, counts.AvailableInstances)
	assert.Zero(t, counts.Authors)
	assert.Zero(t, counts.Genres)
}

func TestServiceRetrieveCounts(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO authors (first_name, family_name) VALUES ('Jane', 'Austen'), ('Herman', 'Melville')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO genres (name) VALUES ('Fiction')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO books (title, author_id, summary, isbn) VALUES ('Emma', 1, 's', '9780141439587'), ('Moby Dick', 2, 's', '9781503280786'), ('Persuasion', 1, 's', '9780141439686')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO book_instances (book_id, imprint, status) VALUES (1, 'i', 'Available'), (1, 'i', 'Loaned'), (2, 'i', 'Available'), (3, 'i', 'Maintenance')`)
	require.NoError(t, err)

	counts, err := svc.RetrieveCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Books)
	assert.Equal(t, 4, counts.BookInstances)
	assert.Equal(t, 2, counts.AvailableInstances)
	assert.Equal(t, 2, counts.Authors)
	assert.Equal(t, 1, counts.Genres)
}
