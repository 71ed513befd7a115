package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/clxsh19/locallibrary/pkg/errcodes"
	"github.com/clxsh19/locallibrary/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type UpdateBookOptions struct {
	Columns []string
	// ReplaceGenres swaps the book's genre set for GenreIDs: every existing
	// join row is deleted and the submitted set reinserted. Not a diff.
	ReplaceGenres bool
	GenreIDs      []int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook inserts the book row and one join row per genre id inside a
// single transaction, so a failure between steps never leaves a
// partially-written book behind.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book, genreIDs []int) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return svc.insertGenres(ctx, tx, book.ID, genreIDs)
	})
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBook(ctx context.Context, id int) (*models.Book, error) {
	book := &models.Book{}

	err := svc.db.
		NewSelect().
		Model(book).
		Relation("Author").
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book

	err := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Order("b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 && !opts.ReplaceGenres {
		return nil
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if len(opts.Columns) > 0 {
			book.UpdatedAt = time.Now()
			columns := make([]string, 0, len(opts.Columns)+1)
			columns = append(columns, opts.Columns...)
			columns = append(columns, "updated_at")

			_, err := tx.
				NewUpdate().
				Model(book).
				Column(columns...).
				WherePK().
				Exec(ctx)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return errcodes.NotFound("Book")
				}
				return errors.WithStack(err)
			}
		}

		if opts.ReplaceGenres {
			_, err := tx.
				NewDelete().
				Model((*models.BookGenre)(nil)).
				Where("book_id = ?", book.ID).
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			return svc.insertGenres(ctx, tx, book.ID, opts.GenreIDs)
		}

		return nil
	})
	return errors.WithStack(err)
}

// insertGenres writes one join row per distinct genre id, keeping the
// (book_id, genre_id) pairs duplicate-free.
func (svc *Service) insertGenres(ctx context.Context, tx bun.Tx, bookID int, genreIDs []int) error {
	genreIDs = uniqueIDs(genreIDs)
	if len(genreIDs) == 0 {
		return nil
	}

	joins := make([]*models.BookGenre, len(genreIDs))
	for i, genreID := range genreIDs {
		joins[i] = &models.BookGenre{BookID: bookID, GenreID: genreID}
	}

	_, err := tx.
		NewInsert().
		Model(&joins).
		Exec(ctx)
	return errors.WithStack(err)
}

// DeleteBook removes the book's join rows and then the book row itself in
// one transaction. There is no ON DELETE CASCADE in the schema; the cascade
// is manual. Deleting an id that does not exist is a no-op.
func (svc *Service) DeleteBook(ctx context.Context, bookID int) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.BookGenre)(nil)).
			Where("book_id = ?", bookID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", bookID).
			Exec(ctx)
		return errors.WithStack(err)
	})
}

// ListGenresFor returns the book's associated genres.
func (svc *Service) ListGenresFor(ctx context.Context, bookID int) ([]*models.Genre, error) {
	var genres []*models.Genre

	err := svc.db.
		NewSelect().
		Model(&genres).
		Join("INNER JOIN book_genres bg ON bg.genre_id = g.id").
		Where("bg.book_id = ?", bookID).
		Order("g.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return genres, nil
}

// ListInstancesFor returns all copies of the book.
func (svc *Service) ListInstancesFor(ctx context.Context, bookID int) ([]*models.BookInstance, error) {
	var instances []*models.BookInstance

	err := svc.db.
		NewSelect().
		Model(&instances).
		Where("bi.book_id = ?", bookID).
		Order("bi.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return instances, nil
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
