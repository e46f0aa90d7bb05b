package activity

import (
	"context"
	"time"

	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type ListOptions struct {
	Limit  *int
	Offset *int
	Tipus  *string
}

// Service records and lists domain-level activity log entries.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Record writes one activity entry. Usuari may be nil for system actions.
func (svc *Service) Record(ctx context.Context, usuari *string, accio, tipus string) error {
	entry := &models.ActivityLog{
		Usuari:    usuari,
		Accio:     accio,
		Tipus:     tipus,
		DataAccio: time.Now(),
	}

	_, err := svc.db.NewInsert().Model(entry).Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) List(ctx context.Context, opts ListOptions) ([]*models.ActivityLog, error) {
	entries := []*models.ActivityLog{}

	q := svc.db.
		NewSelect().
		Model(&entries).
		Order("lg.data_accio DESC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}
	if opts.Tipus != nil {
		q = q.Where("lg.tipus = ?", *opts.Tipus)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return entries, nil
}
