package reservations

import (
	"context"
	"database/sql"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type CreateReservationOptions struct {
	UserID int
	CopyID int
	Data   *time.Time
}

type ListReservationsOptions struct {
	UserID *int
	CopyID *int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Create places a hold on a copy. Holds carry no loan semantics and don't
// touch the copy's flags, but a decommissioned or excluded-from-loan copy
// cannot be held.
func (svc *Service) Create(ctx context.Context, opts CreateReservationOptions) (*models.Reservation, error) {
	userExists, err := svc.db.NewSelect().
		Model((*models.User)(nil)).
		Where("u.id = ?", opts.UserID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !userExists {
		return nil, errcodes.NotFound("Usuari")
	}

	copyRow := &models.Copy{}
	err = svc.db.NewSelect().
		Model(copyRow).
		Where("ex.id = ?", opts.CopyID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Exemplar")
		}
		return nil, errors.WithStack(err)
	}
	if !copyRow.Loanable() {
		return nil, errcodes.Conflict("l'exemplar no està disponible per a reserves")
	}

	data := time.Now()
	if opts.Data != nil {
		data = *opts.Data
	}

	now := time.Now()
	reservation := &models.Reservation{
		UserID:    opts.UserID,
		CopyID:    opts.CopyID,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = svc.db.NewInsert().Model(reservation).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return svc.Retrieve(ctx, reservation.ID)
}

func (svc *Service) Retrieve(ctx context.Context, id int) (*models.Reservation, error) {
	reservation := &models.Reservation{}

	err := svc.db.NewSelect().
		Model(reservation).
		Relation("User").
		Relation("Copy").
		Relation("Copy.Item").
		Where("res.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Reserva")
		}
		return nil, errors.WithStack(err)
	}

	return reservation, nil
}

func (svc *Service) List(ctx context.Context, opts ListReservationsOptions) ([]*models.Reservation, error) {
	reservations := []*models.Reservation{}

	q := svc.db.NewSelect().
		Model(&reservations).
		Relation("Copy").
		Relation("Copy.Item").
		Order("res.data DESC")

	if opts.UserID != nil {
		q = q.Where("res.usuari_id = ?", *opts.UserID)
	}
	if opts.CopyID != nil {
		q = q.Where("res.exemplar_id = ?", *opts.CopyID)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return reservations, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	res, err := svc.db.NewDelete().
		Model((*models.Reservation)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errcodes.NotFound("Reserva")
	}

	return nil
}
