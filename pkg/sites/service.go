package sites

import (
	"context"
	"database/sql"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveSiteOptions struct {
	ID  *int
	Nom *string
}

type RetrieveGroupOptions struct {
	ID  *int
	Nom *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateSite(ctx context.Context, nom string) (*models.Site, error) {
	now := time.Now()
	site := &models.Site{
		Nom:       nom,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := svc.db.NewInsert().Model(site).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return site, nil
}

func (svc *Service) RetrieveSite(ctx context.Context, opts RetrieveSiteOptions) (*models.Site, error) {
	site := &models.Site{}

	q := svc.db.NewSelect().Model(site)
	if opts.ID != nil {
		q = q.Where("ce.id = ?", *opts.ID)
	}
	if opts.Nom != nil {
		q = q.Where("ce.nom = ? COLLATE NOCASE", *opts.Nom)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Centre")
		}
		return nil, errors.WithStack(err)
	}

	return site, nil
}

// GetOrCreateSite looks a site up by name and creates it when absent.
func (svc *Service) GetOrCreateSite(ctx context.Context, nom string) (*models.Site, error) {
	site, err := svc.RetrieveSite(ctx, RetrieveSiteOptions{Nom: &nom})
	if err == nil {
		return site, nil
	}
	if errors.Is(err, errcodes.NotFound("Centre")) {
		return svc.CreateSite(ctx, nom)
	}
	return nil, errors.WithStack(err)
}

func (svc *Service) ListSites(ctx context.Context) ([]*models.Site, error) {
	siteList := []*models.Site{}

	err := svc.db.NewSelect().
		Model(&siteList).
		Order("ce.nom ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return siteList, nil
}

func (svc *Service) UpdateSite(ctx context.Context, id int, nom string) (*models.Site, error) {
	site, err := svc.RetrieveSite(ctx, RetrieveSiteOptions{ID: &id})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	site.Nom = nom
	site.UpdatedAt = time.Now()

	_, err = svc.db.NewUpdate().
		Model(site).
		Column("nom", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return site, nil
}

// DeleteSite removes a site. Sites still owning copies cannot be deleted.
func (svc *Service) DeleteSite(ctx context.Context, id int) error {
	hasCopies, err := svc.db.NewSelect().
		Model((*models.Copy)(nil)).
		Where("ex.centre_id = ?", id).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if hasCopies {
		return errcodes.Conflict("el centre té exemplars assignats")
	}

	res, err := svc.db.NewDelete().
		Model((*models.Site)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errcodes.NotFound("Centre")
	}

	return nil
}

func (svc *Service) CreateGroup(ctx context.Context, nom string) (*models.Group, error) {
	now := time.Now()
	group := &models.Group{
		Nom:       nom,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := svc.db.NewInsert().Model(group).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return group, nil
}

func (svc *Service) RetrieveGroup(ctx context.Context, opts RetrieveGroupOptions) (*models.Group, error) {
	group := &models.Group{}

	q := svc.db.NewSelect().Model(group)
	if opts.ID != nil {
		q = q.Where("gr.id = ?", *opts.ID)
	}
	if opts.Nom != nil {
		q = q.Where("gr.nom = ? COLLATE NOCASE", *opts.Nom)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Grup")
		}
		return nil, errors.WithStack(err)
	}

	return group, nil
}

// GetOrCreateGroup looks a group up by name and creates it when absent.
func (svc *Service) GetOrCreateGroup(ctx context.Context, nom string) (*models.Group, error) {
	group, err := svc.RetrieveGroup(ctx, RetrieveGroupOptions{Nom: &nom})
	if err == nil {
		return group, nil
	}
	if errors.Is(err, errcodes.NotFound("Grup")) {
		return svc.CreateGroup(ctx, nom)
	}
	return nil, errors.WithStack(err)
}

func (svc *Service) ListGroups(ctx context.Context) ([]*models.Group, error) {
	groupList := []*models.Group{}

	err := svc.db.NewSelect().
		Model(&groupList).
		Order("gr.nom ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return groupList, nil
}

func (svc *Service) DeleteGroup(ctx context.Context, id int) error {
	res, err := svc.db.NewDelete().
		Model((*models.Group)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errcodes.NotFound("Grup")
	}

	return nil
}
