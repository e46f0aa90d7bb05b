package loans

import (
	"context"
	"database/sql"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type CreateLoanOptions struct {
	UserID      int
	CopyID      int
	DataPrestec *time.Time
	Anotacions  *string
}

type ListLoansOptions struct {
	Username *string
	UserID   *int
	// Outstanding limits the listing to loans without a return date.
	Outstanding bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Create records a loan and marks the copy excluded from loan. The flag is
// set unconditionally: there is no availability check and no per-user limit,
// an already excluded copy is loaned again without complaint.
func (svc *Service) Create(ctx context.Context, opts CreateLoanOptions) (*models.Loan, error) {
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

	copyExists, err := svc.db.NewSelect().
		Model((*models.Copy)(nil)).
		Where("ex.id = ?", opts.CopyID).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !copyExists {
		return nil, errcodes.NotFound("Exemplar")
	}

	dataPrestec := time.Now()
	if opts.DataPrestec != nil {
		dataPrestec = *opts.DataPrestec
	}

	now := time.Now()
	loan := &models.Loan{
		UserID:      opts.UserID,
		CopyID:      opts.CopyID,
		DataPrestec: dataPrestec,
		Anotacions:  opts.Anotacions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(loan).Exec(ctx); err != nil {
			return errors.WithStack(err)
		}

		_, err := tx.NewUpdate().
			Model((*models.Copy)(nil)).
			Set("exclos_prestec = ?", true).
			Set("updated_at = ?", now).
			Where("id = ?", opts.CopyID).
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return svc.Retrieve(ctx, loan.ID)
}

func (svc *Service) Retrieve(ctx context.Context, id int) (*models.Loan, error) {
	loan := &models.Loan{}

	err := svc.db.NewSelect().
		Model(loan).
		Relation("User").
		Relation("Copy").
		Relation("Copy.Item").
		Relation("Copy.Site").
		Where("p.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Prestec")
		}
		return nil, errors.WithStack(err)
	}

	return loan, nil
}

// List returns loans newest-first.
func (svc *Service) List(ctx context.Context, opts ListLoansOptions) ([]*models.Loan, error) {
	loans := []*models.Loan{}

	q := svc.db.NewSelect().
		Model(&loans).
		Relation("Copy").
		Relation("Copy.Item").
		Order("p.data_prestec DESC")

	if opts.Username != nil {
		q = q.
			Join("JOIN usuaris AS lu ON lu.id = p.usuari_id").
			Where("lu.username = ? COLLATE NOCASE", *opts.Username)
	}
	if opts.UserID != nil {
		q = q.Where("p.usuari_id = ?", *opts.UserID)
	}
	if opts.Outstanding {
		q = q.Where("p.data_retorn IS NULL")
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return loans, nil
}

// Return closes a loan by stamping the return date and clears the copy's
// exclusion flag. Already returned loans are rejected.
func (svc *Service) Return(ctx context.Context, id int, dataRetorn *time.Time) (*models.Loan, error) {
	loan, err := svc.Retrieve(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !loan.Outstanding() {
		return nil, errcodes.Conflict("el préstec ja ha estat retornat")
	}

	when := time.Now()
	if dataRetorn != nil {
		when = *dataRetorn
	}
	loan.DataRetorn = &when
	loan.UpdatedAt = time.Now()

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model(loan).
			Column("data_retorn", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewUpdate().
			Model((*models.Copy)(nil)).
			Set("exclos_prestec = ?", false).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", loan.CopyID).
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return loan, nil
}
