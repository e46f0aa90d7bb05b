package refdata

import (
	"context"
	"database/sql"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type CreateCategoryOptions struct {
	Nom      string
	ParentID *int
}

type UpdateCategoryOptions struct {
	Nom      *string
	ParentID *int
	// ClearParent detaches the category from its parent. ParentID wins when
	// both are set.
	ClearParent bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateCategory(ctx context.Context, opts CreateCategoryOptions) (*models.Category, error) {
	if opts.ParentID != nil {
		if _, err := svc.RetrieveCategory(ctx, *opts.ParentID); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	now := time.Now()
	category := &models.Category{
		Nom:       opts.Nom,
		ParentID:  opts.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := svc.db.NewInsert().Model(category).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return category, nil
}

func (svc *Service) RetrieveCategory(ctx context.Context, id int) (*models.Category, error) {
	category := &models.Category{}

	err := svc.db.NewSelect().
		Model(category).
		Relation("Parent").
		Where("cat.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Categoria")
		}
		return nil, errors.WithStack(err)
	}

	return category, nil
}

func (svc *Service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories := []*models.Category{}

	err := svc.db.NewSelect().
		Model(&categories).
		Relation("Parent").
		Order("cat.nom ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return categories, nil
}

// UpdateCategory applies the given changes. Parent assignments that would
// close a cycle through the tree are rejected.
func (svc *Service) UpdateCategory(ctx context.Context, id int, opts UpdateCategoryOptions) (*models.Category, error) {
	category, err := svc.RetrieveCategory(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	columns := []string{}
	if opts.Nom != nil {
		category.Nom = *opts.Nom
		columns = append(columns, "nom")
	}
	if opts.ParentID != nil {
		if err := svc.checkCategoryCycle(ctx, id, *opts.ParentID); err != nil {
			return nil, errors.WithStack(err)
		}
		category.ParentID = opts.ParentID
		columns = append(columns, "parent_id")
	} else if opts.ClearParent {
		category.ParentID = nil
		columns = append(columns, "parent_id")
	}

	if len(columns) == 0 {
		return category, nil
	}

	category.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	_, err = svc.db.NewUpdate().
		Model(category).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return svc.RetrieveCategory(ctx, id)
}

// checkCategoryCycle walks up from the proposed parent. Hitting the category
// itself means the assignment would create a cycle.
func (svc *Service) checkCategoryCycle(ctx context.Context, id, parentID int) error {
	if parentID == id {
		return errcodes.Conflict("una categoria no pot ser el seu propi pare")
	}

	current := parentID
	for {
		parent, err := svc.RetrieveCategory(ctx, current)
		if err != nil {
			return errors.WithStack(err)
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == id {
			return errcodes.Conflict("l'assignació crearia un cicle de categories")
		}
		current = *parent.ParentID
	}
}

func (svc *Service) DeleteCategory(ctx context.Context, id int) error {
	res, err := svc.db.NewDelete().
		Model((*models.Category)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errcodes.NotFound("Categoria")
	}

	return nil
}

func (svc *Service) CreateAuthor(ctx context.Context, nom string) (*models.Author, error) {
	now := time.Now()
	author := &models.Author{
		Nom:       &nom,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := svc.db.NewInsert().Model(author).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return author, nil
}

func (svc *Service) RetrieveAuthor(ctx context.Context, id int) (*models.Author, error) {
	author := &models.Author{}

	err := svc.db.NewSelect().
		Model(author).
		Where("aut.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Autor")
		}
		return nil, errors.WithStack(err)
	}

	return author, nil
}

// GetOrCreateAuthor looks an author up by name and creates it when absent.
func (svc *Service) GetOrCreateAuthor(ctx context.Context, nom string) (*models.Author, error) {
	author := &models.Author{}

	err := svc.db.NewSelect().
		Model(author).
		Where("aut.nom = ? COLLATE NOCASE", nom).
		Scan(ctx)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithStack(err)
	}

	return svc.CreateAuthor(ctx, nom)
}

func (svc *Service) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	authors := []*models.Author{}

	err := svc.db.NewSelect().
		Model(&authors).
		Order("aut.nom ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authors, nil
}

func (svc *Service) DeleteAuthor(ctx context.Context, id int) error {
	res, err := svc.db.NewDelete().
		Model((*models.Author)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errcodes.NotFound("Autor")
	}

	return nil
}

func (svc *Service) CreatePublisher(ctx context.Context, nom string) (*models.Publisher, error) {
	now := time.Now()
	publisher := &models.Publisher{
		Nom:       &nom,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := svc.db.NewInsert().Model(publisher).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return publisher, nil
}

// GetOrCreatePublisher looks a publisher up by name and creates it when
// absent.
func (svc *Service) GetOrCreatePublisher(ctx context.Context, nom string) (*models.Publisher, error) {
	publisher := &models.Publisher{}

	err := svc.db.NewSelect().
		Model(publisher).
		Where("ed.nom = ? COLLATE NOCASE", nom).
		Scan(ctx)
	if err == nil {
		return publisher, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.WithStack(err)
	}

	return svc.CreatePublisher(ctx, nom)
}

func (svc *Service) ListPublishers(ctx context.Context) ([]*models.Publisher, error) {
	publishers := []*models.Publisher{}

	err := svc.db.NewSelect().
		Model(&publishers).
		Order("ed.nom ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return publishers, nil
}

func (svc *Service) DeletePublisher(ctx context.Context, id int) error {
	res, err := svc.db.NewDelete().
		Model((*models.Publisher)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errcodes.NotFound("Editorial")
	}

	return nil
}

func (svc *Service) CreateCountry(ctx context.Context, nom string) (*models.Country, error) {
	now := time.Now()
	country := &models.Country{
		Nom:       nom,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := svc.db.NewInsert().Model(country).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return country, nil
}

func (svc *Service) ListCountries(ctx context.Context) ([]*models.Country, error) {
	countries := []*models.Country{}

	err := svc.db.NewSelect().
		Model(&countries).
		Order("pa.nom ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return countries, nil
}

func (svc *Service) CreateLanguage(ctx context.Context, nom string) (*models.Language, error) {
	now := time.Now()
	language := &models.Language{
		Nom:       nom,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := svc.db.NewInsert().Model(language).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return language, nil
}

func (svc *Service) ListLanguages(ctx context.Context) ([]*models.Language, error) {
	languages := []*models.Language{}

	err := svc.db.NewSelect().
		Model(&languages).
		Order("lle.nom ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return languages, nil
}
