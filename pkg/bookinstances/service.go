package bookinstances

import (
	"context"
	"database/sql"
	"time"

	"github.com/clxsh19/locallibrary/pkg/errcodes"
	"github.com/clxsh19/locallibrary/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service manages the physical copies of books.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

func (s *Service) CreateBookInstance(ctx context.Context, instance *models.BookInstance) error {
	now := time.Now()
	instance.CreatedAt = now
	instance.UpdatedAt = now

	_, err := s.db.NewInsert().
		Model(instance).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (s *Service) RetrieveBookInstance(ctx context.Context, id int) (*models.BookInstance, error) {
	instance := &models.BookInstance{}
	err := s.db.NewSelect().
		Model(instance).
		Relation("Book").
		Where("bi.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.NotFound("BookInstance")
	} else if err != nil {
		return nil, errors.WithStack(err)
	}
	return instance, nil
}

func (s *Service) ListBookInstances(ctx context.Context) ([]*models.BookInstance, error) {
	instances := []*models.BookInstance{}
	err := s.db.NewSelect().
		Model(&instances).
		Relation("Book").
		Order("bi.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return instances, nil
}

// ListAvailable returns only the copies currently on the shelf.
func (s *Service) ListAvailable(ctx context.Context) ([]*models.BookInstance, error) {
	instances := []*models.BookInstance{}
	err := s.db.NewSelect().
		Model(&instances).
		Relation("Book").
		Where("bi.status = ?", models.StatusAvailable).
		Order("bi.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return instances, nil
}

type UpdateBookInstanceOptions struct {
	Columns []string
}

func (s *Service) UpdateBookInstance(ctx context.Context, instance *models.BookInstance, opts UpdateBookInstanceOptions) error {
	instance.UpdatedAt = time.Now()
	columns := make([]string, 0, len(opts.Columns)+1)
	columns = append(columns, opts.Columns...)
	columns = append(columns, "updated_at")

	_, err := s.db.NewUpdate().
		Model(instance).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

func (s *Service) DeleteBookInstance(ctx context.Context, id int) error {
	_, err := s.db.NewDelete().
		Model((*models.BookInstance)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}
