package catalog

import (
	"context"

	"github.com/clxsh19/locallibrary/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

// Counts holds the totals shown on the catalog home page.
type Counts struct {
	Books              int `json:"book_count"`
	BookInstances      int `json:"book_instance_count"`
	AvailableInstances int `json:"book_instance_available_count"`
	Authors            int `json:"author_count"`
	Genres             int `json:"genre_count"`
}

// Service answers aggregate questions about the catalog as a whole.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// RetrieveCounts gathers the five home-page totals. The counts are
// independent so they run concurrently.
func (s *Service) RetrieveCounts(ctx context.Context) (*Counts, error) {
	counts := &Counts{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts.Books, err = s.db.NewSelect().Model((*models.Book)(nil)).Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts.BookInstances, err = s.db.NewSelect().Model((*models.BookInstance)(nil)).Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts.AvailableInstances, err = s.db.NewSelect().
			Model((*models.BookInstance)(nil)).
			Where("status = ?", models.StatusAvailable).
			Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts.Authors, err = s.db.NewSelect().Model((*models.Author)(nil)).Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts.Genres, err = s.db.NewSelect().Model((*models.Genre)(nil)).Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}

	return counts, nil
}
