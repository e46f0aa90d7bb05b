package requests

import (
	"context"
	"database/sql"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type CreateRequestOptions struct {
	UserID     int
	Titol      string
	Descripcio string
}

type ListRequestsOptions struct {
	UserID *int
}

// Service manages acquisition requests: free-text asks from users for
// material the library doesn't hold yet.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) Create(ctx context.Context, opts CreateRequestOptions) (*models.Request, error) {
	now := time.Now()
	request := &models.Request{
		UserID:     opts.UserID,
		Titol:      opts.Titol,
		Descripcio: opts.Descripcio,
		Data:       now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := svc.db.NewInsert().Model(request).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return svc.Retrieve(ctx, request.ID)
}

func (svc *Service) Retrieve(ctx context.Context, id int) (*models.Request, error) {
	request := &models.Request{}

	err := svc.db.NewSelect().
		Model(request).
		Relation("User").
		Where("pet.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Peticio")
		}
		return nil, errors.WithStack(err)
	}

	return request, nil
}

func (svc *Service) List(ctx context.Context, opts ListRequestsOptions) ([]*models.Request, error) {
	requests := []*models.Request{}

	q := svc.db.NewSelect().
		Model(&requests).
		Order("pet.data DESC")

	if opts.UserID != nil {
		q = q.Where("pet.usuari_id = ?", *opts.UserID)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return requests, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	res, err := svc.db.NewDelete().
		Model((*models.Request)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errcodes.NotFound("Peticio")
	}

	return nil
}
