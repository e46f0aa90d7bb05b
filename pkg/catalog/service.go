package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/bibliocat/bibliocat/pkg/refdata"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type CreateItemOptions struct {
	Kind          models.ItemKind
	Titol         string
	TitolOriginal *string
	// Autor and Editorial are display names resolved (or created) against the
	// reference tables.
	Autor      *string
	Editorial  *string
	CDU        *string
	Signatura  *string
	DataEdicio *time.Time
	Resum      *string
	Anotacions *string
	Mides      *string
	Lloc       *string
	CountryID  *int
	LanguageID *int
	TagIDs     []int

	Book       *BookFields
	Magazine   *MagazineFields
	AudioDisc  *AudioDiscFields
	VideoDisc  *VideoDiscFields
	BluRayDisc *BluRayDiscFields
	Device     *DeviceFields
}

type BookFields struct {
	ISBN         *string
	Colleccio    *string
	Numero       *int
	Volums       *int
	Pagines      *int
	InfoURL      *string
	PreviewURL   *string
	ThumbnailURL *string
}

type MagazineFields struct {
	ISSN    *string
	Numero  *int
	Volums  *int
	Pagines *int
}

type AudioDiscFields struct {
	Discografica string
	Estil        string
	Duracio      string
}

type VideoDiscFields struct {
	Productora string
	Duracio    string
}

type BluRayDiscFields struct {
	Productora string
	Duracio    string
}

type DeviceFields struct {
	Marca string
	Model *string
}

type RetrieveItemOptions struct {
	ID *int
	// Kind restricts the lookup to items of that specialization.
	Kind *models.ItemKind
}

type ListItemsOptions struct {
	Limit  *int
	Offset *int
	Search *string
	Kind   *models.ItemKind
}

type UpdateItemOptions struct {
	Titol         *string
	TitolOriginal *string
	Autor         *string
	Editorial     *string
	CDU           *string
	Signatura     *string
	DataEdicio    *time.Time
	Resum         *string
	Anotacions    *string
	Mides         *string
	Lloc          *string
	TagIDs        []int
}

type CreateCopyOptions struct {
	CatalogItemID int
	Registre      *string
	SiteID        int
	ExclosPrestec bool
}

type ListCopiesOptions struct {
	CatalogItemID *int
	// BookID restricts to copies whose catalog item is that book.
	BookID *int
	SiteID *int
}

type Service struct {
	db       *bun.DB
	mediaDir string
}

func NewService(db *bun.DB, mediaDir string) *Service {
	return &Service{db, mediaDir}
}

// copyRelations selects a copy together with its site and the fully resolved
// catalog item.
func copyRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("Site").
		Relation("Item").
		Relation("Item.Author").
		Relation("Item.Publisher").
		Relation("Item.Book").
		Relation("Item.Magazine").
		Relation("Item.AudioDisc").
		Relation("Item.VideoDisc").
		Relation("Item.BluRayDisc").
		Relation("Item.Device")
}

// itemRelations selects everything needed to resolve an item's kind and
// display names in one query.
func itemRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("Author").
		Relation("Publisher").
		Relation("Country").
		Relation("Language").
		Relation("Tags").
		Relation("Book").
		Relation("Magazine").
		Relation("AudioDisc").
		Relation("VideoDisc").
		Relation("BluRayDisc").
		Relation("Device")
}

// CreateItem inserts the base record and its specialization row in one
// transaction. The disc kinds require a duration.
func (svc *Service) CreateItem(ctx context.Context, opts CreateItemOptions) (*models.CatalogItem, error) {
	if err := validateKindFields(opts); err != nil {
		return nil, errors.WithStack(err)
	}

	refdataService := refdata.NewService(svc.db)

	now := time.Now()
	item := &models.CatalogItem{
		Titol:         opts.Titol,
		TitolOriginal: opts.TitolOriginal,
		CDU:           opts.CDU,
		Signatura:     opts.Signatura,
		DataEdicio:    opts.DataEdicio,
		Resum:         opts.Resum,
		Anotacions:    opts.Anotacions,
		Mides:         opts.Mides,
		Lloc:          opts.Lloc,
		CountryID:     opts.CountryID,
		LanguageID:    opts.LanguageID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if opts.Autor != nil && strings.TrimSpace(*opts.Autor) != "" {
		author, err := refdataService.GetOrCreateAuthor(ctx, strings.TrimSpace(*opts.Autor))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		item.AuthorID = &author.ID
	}
	if opts.Editorial != nil && strings.TrimSpace(*opts.Editorial) != "" {
		publisher, err := refdataService.GetOrCreatePublisher(ctx, strings.TrimSpace(*opts.Editorial))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		item.PublisherID = &publisher.ID
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
			return errors.WithStack(err)
		}

		var specialization any
		switch opts.Kind {
		case models.KindLlibre:
			fields := opts.Book
			if fields == nil {
				fields = &BookFields{}
			}
			specialization = &models.Book{
				CatalogItemID: item.ID,
				ISBN:          fields.ISBN,
				Colleccio:     fields.Colleccio,
				Numero:        fields.Numero,
				Volums:        fields.Volums,
				Pagines:       fields.Pagines,
				InfoURL:       fields.InfoURL,
				PreviewURL:    fields.PreviewURL,
				ThumbnailURL:  fields.ThumbnailURL,
			}
		case models.KindRevista:
			fields := opts.Magazine
			if fields == nil {
				fields = &MagazineFields{}
			}
			specialization = &models.Magazine{
				CatalogItemID: item.ID,
				ISSN:          fields.ISSN,
				Numero:        fields.Numero,
				Volums:        fields.Volums,
				Pagines:       fields.Pagines,
			}
		case models.KindCD:
			specialization = &models.AudioDisc{
				CatalogItemID: item.ID,
				Discografica:  opts.AudioDisc.Discografica,
				Estil:         opts.AudioDisc.Estil,
				Duracio:       opts.AudioDisc.Duracio,
			}
		case models.KindDVD:
			specialization = &models.VideoDisc{
				CatalogItemID: item.ID,
				Productora:    opts.VideoDisc.Productora,
				Duracio:       opts.VideoDisc.Duracio,
			}
		case models.KindBR:
			specialization = &models.BluRayDisc{
				CatalogItemID: item.ID,
				Productora:    opts.BluRayDisc.Productora,
				Duracio:       opts.BluRayDisc.Duracio,
			}
		case models.KindDispositiu:
			fields := opts.Device
			if fields == nil {
				fields = &DeviceFields{}
			}
			specialization = &models.Device{
				CatalogItemID: item.ID,
				Marca:         fields.Marca,
				Model:         fields.Model,
			}
		case models.KindIndefinit:
			// base record only
		}

		if specialization != nil {
			if _, err := tx.NewInsert().Model(specialization).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}

		return svc.replaceTags(ctx, tx, item.ID, opts.TagIDs)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return svc.RetrieveItem(ctx, RetrieveItemOptions{ID: &item.ID})
}

func validateKindFields(opts CreateItemOptions) error {
	switch opts.Kind {
	case models.KindCD:
		if opts.AudioDisc == nil || opts.AudioDisc.Duracio == "" {
			return errcodes.ValidationError("duracio is a required field.")
		}
	case models.KindDVD:
		if opts.VideoDisc == nil || opts.VideoDisc.Duracio == "" {
			return errcodes.ValidationError("duracio is a required field.")
		}
	case models.KindBR:
		if opts.BluRayDisc == nil || opts.BluRayDisc.Duracio == "" {
			return errcodes.ValidationError("duracio is a required field.")
		}
	case models.KindLlibre, models.KindRevista, models.KindDispositiu, models.KindIndefinit:
	default:
		return errcodes.ValidationError(fmt.Sprintf("tipus %q is not valid.", opts.Kind))
	}
	return nil
}

func (svc *Service) RetrieveItem(ctx context.Context, opts RetrieveItemOptions) (*models.CatalogItem, error) {
	item := &models.CatalogItem{}

	q := itemRelations(svc.db.NewSelect().Model(item))
	if opts.ID != nil {
		q = q.Where("c.id = ?", *opts.ID)
	}
	if opts.Kind != nil {
		q = filterKind(q, *opts.Kind)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Cataleg")
		}
		return nil, errors.WithStack(err)
	}

	return item, nil
}

func (svc *Service) ListItems(ctx context.Context, opts ListItemsOptions) ([]*models.CatalogItem, int, error) {
	items := []*models.CatalogItem{}

	q := itemRelations(svc.db.NewSelect().Model(&items)).
		Order("c.titol ASC")

	if opts.Kind != nil {
		q = filterKind(q, *opts.Kind)
	}
	if opts.Search != nil && *opts.Search != "" {
		pattern := "%" + *opts.Search + "%"
		q = q.
			Join("LEFT JOIN autors AS sa ON sa.id = c.autor_id").
			WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					WhereOr("c.titol LIKE ? COLLATE NOCASE", pattern).
					WhereOr("sa.nom LIKE ? COLLATE NOCASE", pattern)
			})
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return items, total, nil
}

func filterKind(q *bun.SelectQuery, kind models.ItemKind) *bun.SelectQuery {
	tables := map[models.ItemKind]string{
		models.KindLlibre:     "llibres",
		models.KindRevista:    "revistes",
		models.KindCD:         "cds",
		models.KindDVD:        "dvds",
		models.KindBR:         "brs",
		models.KindDispositiu: "dispositius",
	}
	table, ok := tables[kind]
	if !ok {
		return q
	}
	return q.Where("EXISTS (SELECT 1 FROM " + table + " AS sp WHERE sp.cataleg_id = c.id)")
}

func (svc *Service) UpdateItem(ctx context.Context, id int, opts UpdateItemOptions) (*models.CatalogItem, error) {
	item, err := svc.RetrieveItem(ctx, RetrieveItemOptions{ID: &id})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	refdataService := refdata.NewService(svc.db)
	columns := []string{}

	if opts.Titol != nil {
		item.Titol = *opts.Titol
		columns = append(columns, "titol")
	}
	if opts.TitolOriginal != nil {
		item.TitolOriginal = opts.TitolOriginal
		columns = append(columns, "titol_original")
	}
	if opts.Autor != nil {
		author, err := refdataService.GetOrCreateAuthor(ctx, strings.TrimSpace(*opts.Autor))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		item.AuthorID = &author.ID
		columns = append(columns, "autor_id")
	}
	if opts.Editorial != nil {
		publisher, err := refdataService.GetOrCreatePublisher(ctx, strings.TrimSpace(*opts.Editorial))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		item.PublisherID = &publisher.ID
		columns = append(columns, "editorial_id")
	}
	if opts.CDU != nil {
		item.CDU = opts.CDU
		columns = append(columns, "cdu")
	}
	if opts.Signatura != nil {
		item.Signatura = opts.Signatura
		columns = append(columns, "signatura")
	}
	if opts.DataEdicio != nil {
		item.DataEdicio = opts.DataEdicio
		columns = append(columns, "data_edicio")
	}
	if opts.Resum != nil {
		item.Resum = opts.Resum
		columns = append(columns, "resum")
	}
	if opts.Anotacions != nil {
		item.Anotacions = opts.Anotacions
		columns = append(columns, "anotacions")
	}
	if opts.Mides != nil {
		item.Mides = opts.Mides
		columns = append(columns, "mides")
	}
	if opts.Lloc != nil {
		item.Lloc = opts.Lloc
		columns = append(columns, "lloc")
	}

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if len(columns) > 0 {
			item.UpdatedAt = time.Now()
			cols := append(columns, "updated_at")
			if _, err := tx.NewUpdate().Model(item).Column(cols...).WherePK().Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}
		if opts.TagIDs != nil {
			return svc.replaceTags(ctx, tx, id, opts.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return svc.RetrieveItem(ctx, RetrieveItemOptions{ID: &id})
}

func (svc *Service) replaceTags(ctx context.Context, tx bun.Tx, itemID int, tagIDs []int) error {
	if tagIDs == nil {
		return nil
	}

	_, err := tx.NewDelete().
		Model((*models.CatalogItemCategory)(nil)).
		Where("cataleg_id = ?", itemID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	for _, tagID := range tagIDs {
		join := &models.CatalogItemCategory{CatalogItemID: itemID, CategoryID: tagID}
		if _, err := tx.NewInsert().Model(join).Exec(ctx); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

// DeleteItem removes the item. Specializations, copies, images, and tag
// joins cascade at the schema level.
func (svc *Service) DeleteItem(ctx context.Context, id int) error {
	res, err := svc.db.NewDelete().
		Model((*models.CatalogItem)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errcodes.NotFound("Cataleg")
	}

	return nil
}

// CreateCopy registers a physical copy. A registration number is generated
// when none is supplied.
func (svc *Service) CreateCopy(ctx context.Context, opts CreateCopyOptions) (*models.Copy, error) {
	if _, err := svc.RetrieveItem(ctx, RetrieveItemOptions{ID: &opts.CatalogItemID}); err != nil {
		return nil, errors.WithStack(err)
	}

	registre := opts.Registre
	if registre == nil || *registre == "" {
		generated := strings.ToUpper(uuid.New().String()[:8])
		registre = &generated
	}

	now := time.Now()
	copyRow := &models.Copy{
		CatalogItemID: opts.CatalogItemID,
		Registre:      registre,
		ExclosPrestec: opts.ExclosPrestec,
		SiteID:        opts.SiteID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := svc.db.NewInsert().Model(copyRow).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return svc.RetrieveCopy(ctx, copyRow.ID)
}

func (svc *Service) RetrieveCopy(ctx context.Context, id int) (*models.Copy, error) {
	copyRow := &models.Copy{}

	err := copyRelations(svc.db.NewSelect().Model(copyRow)).
		Where("ex.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Exemplar")
		}
		return nil, errors.WithStack(err)
	}

	return copyRow, nil
}

func (svc *Service) ListCopies(ctx context.Context, opts ListCopiesOptions) ([]*models.Copy, error) {
	copies := []*models.Copy{}

	q := copyRelations(svc.db.NewSelect().Model(&copies)).
		Order("ex.id ASC")

	if opts.CatalogItemID != nil {
		q = q.Where("ex.cataleg_id = ?", *opts.CatalogItemID)
	}
	if opts.BookID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM llibres AS bl WHERE bl.cataleg_id = ex.cataleg_id AND bl.cataleg_id = ?)", *opts.BookID)
	}
	if opts.SiteID != nil {
		q = q.Where("ex.centre_id = ?", *opts.SiteID)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return copies, nil
}

// SetCopyFlags updates the loan-exclusion and decommission flags.
func (svc *Service) SetCopyFlags(ctx context.Context, id int, exclosPrestec, baixa *bool) (*models.Copy, error) {
	copyRow, err := svc.RetrieveCopy(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	columns := []string{}
	if exclosPrestec != nil {
		copyRow.ExclosPrestec = *exclosPrestec
		columns = append(columns, "exclos_prestec")
	}
	if baixa != nil {
		copyRow.Baixa = *baixa
		columns = append(columns, "baixa")
	}
	if len(columns) == 0 {
		return copyRow, nil
	}

	copyRow.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	_, err = svc.db.NewUpdate().
		Model(copyRow).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return copyRow, nil
}

func (svc *Service) DeleteCopy(ctx context.Context, id int) error {
	res, err := svc.db.NewDelete().
		Model((*models.Copy)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errcodes.NotFound("Exemplar")
	}

	return nil
}
