package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bibliocat/bibliocat/pkg/migrations"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/bibliocat/bibliocat/pkg/sites"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	_, err = sqldb.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	models.RegisterJoinTables(db)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(newTestDB(t), t.TempDir())
}

func strPtr(s string) *string {
	return &s
}

func createTestBook(ctx context.Context, t *testing.T, svc *Service, titol, autor string) *models.CatalogItem {
	t.Helper()

	item, err := svc.CreateItem(ctx, CreateItemOptions{
		Kind:  models.KindLlibre,
		Titol: titol,
		Autor: &autor,
		Book:  &BookFields{ISBN: strPtr("9788475881-00")},
	})
	require.NoError(t, err)

	return item
}

func createTestSite(ctx context.Context, t *testing.T, svc *Service, nom string) *models.Site {
	t.Helper()

	site, err := sites.NewService(svc.db).CreateSite(ctx, nom)
	require.NoError(t, err)

	return site
}

func TestCreateItem_BookKind(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	item := createTestBook(ctx, t, svc, "La plaça del Diamant", "Mercè Rodoreda")

	assert.Equal(t, models.KindLlibre, item.Kind())
	require.NotNil(t, item.AuthorName())
	assert.Equal(t, "Mercè Rodoreda", *item.AuthorName())
	require.NotNil(t, item.Book)
}

func TestCreateItem_IndefinitKind(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, CreateItemOptions{
		Kind:  models.KindIndefinit,
		Titol: "Material divers",
	})
	require.NoError(t, err)

	assert.Equal(t, models.KindIndefinit, item.Kind())
	assert.Nil(t, item.Book)
}

func TestCreateItem_DiscRequiresDuracio(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, CreateItemOptions{
		Kind:      models.KindCD,
		Titol:     "Verdaguer cantat",
		AudioDisc: &AudioDiscFields{Discografica: "Picap"},
	})
	require.Error(t, err)

	_, err = svc.CreateItem(ctx, CreateItemOptions{
		Kind:  models.KindDVD,
		Titol: "Pa negre",
	})
	require.Error(t, err)

	item, err := svc.CreateItem(ctx, CreateItemOptions{
		Kind:      models.KindCD,
		Titol:     "Verdaguer cantat",
		AudioDisc: &AudioDiscFields{Discografica: "Picap", Estil: "Coral", Duracio: "01:02:03"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.KindCD, item.Kind())
}

func TestListItems_SearchByTitleAndAuthor(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	createTestBook(ctx, t, svc, "La plaça del Diamant", "Mercè Rodoreda")
	createTestBook(ctx, t, svc, "Tirant lo Blanc", "Joanot Martorell")

	kind := models.KindLlibre

	items, _, err := svc.ListItems(ctx, ListItemsOptions{Kind: &kind, Search: strPtr("Diamant")})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "La plaça del Diamant", items[0].Titol)

	items, _, err = svc.ListItems(ctx, ListItemsOptions{Kind: &kind, Search: strPtr("Martorell")})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tirant lo Blanc", items[0].Titol)

	items, _, err = svc.ListItems(ctx, ListItemsOptions{Kind: &kind, Search: strPtr("inexistent")})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListItems_KindFilterExcludesOthers(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	createTestBook(ctx, t, svc, "La plaça del Diamant", "Mercè Rodoreda")

	_, err := svc.CreateItem(ctx, CreateItemOptions{
		Kind:  models.KindIndefinit,
		Titol: "Material divers",
	})
	require.NoError(t, err)

	kind := models.KindLlibre
	items, total, err := svc.ListItems(ctx, ListItemsOptions{Kind: &kind})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, models.KindLlibre, items[0].Kind())
}

func TestCreateCopy_GeneratesRegistre(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	item := createTestBook(ctx, t, svc, "Tirant lo Blanc", "Joanot Martorell")
	site := createTestSite(ctx, t, svc, "IES Test")

	copyRow, err := svc.CreateCopy(ctx, CreateCopyOptions{
		CatalogItemID: item.ID,
		SiteID:        site.ID,
	})
	require.NoError(t, err)

	require.NotNil(t, copyRow.Registre)
	assert.Len(t, *copyRow.Registre, 8)
	assert.False(t, copyRow.ExclosPrestec)
	assert.True(t, copyRow.Loanable())
}

func TestCreateCopy_UnknownItem(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	site := createTestSite(ctx, t, svc, "IES Test")

	_, err := svc.CreateCopy(ctx, CreateCopyOptions{
		CatalogItemID: 9999,
		SiteID:        site.ID,
	})
	require.Error(t, err)
}

func TestCopySummary_BookVsIndefinit(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	site := createTestSite(ctx, t, svc, "IES Test")

	book := createTestBook(ctx, t, svc, "La plaça del Diamant", "Mercè Rodoreda")
	bookCopy, err := svc.CreateCopy(ctx, CreateCopyOptions{
		CatalogItemID: book.ID,
		Registre:      strPtr("R-0001"),
		SiteID:        site.ID,
	})
	require.NoError(t, err)

	other, err := svc.CreateItem(ctx, CreateItemOptions{
		Kind:  models.KindIndefinit,
		Titol: "Material divers",
	})
	require.NoError(t, err)
	otherCopy, err := svc.CreateCopy(ctx, CreateCopyOptions{
		CatalogItemID: other.ID,
		Registre:      strPtr("R-0002"),
		SiteID:        site.ID,
	})
	require.NoError(t, err)

	summary := NewCopySummary(bookCopy)
	assert.Equal(t, "llibre", summary.Tipus)
	require.NotNil(t, summary.Cataleg.Autor)
	assert.Equal(t, "Mercè Rodoreda", *summary.Cataleg.Autor)
	require.NotNil(t, summary.Cataleg.ISBN)
	assert.Equal(t, "IES Test", summary.Centre.Nom)

	summary = NewCopySummary(otherCopy)
	assert.Equal(t, "indefinit", summary.Tipus)
	assert.Nil(t, summary.Cataleg.ISBN)
}

func TestListCopies_ByBook(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	site := createTestSite(ctx, t, svc, "IES Test")
	book := createTestBook(ctx, t, svc, "Tirant lo Blanc", "Joanot Martorell")
	other := createTestBook(ctx, t, svc, "Mecanoscrit del segon origen", "Manuel de Pedrolo")

	_, err := svc.CreateCopy(ctx, CreateCopyOptions{CatalogItemID: book.ID, SiteID: site.ID})
	require.NoError(t, err)
	_, err = svc.CreateCopy(ctx, CreateCopyOptions{CatalogItemID: book.ID, SiteID: site.ID})
	require.NoError(t, err)
	_, err = svc.CreateCopy(ctx, CreateCopyOptions{CatalogItemID: other.ID, SiteID: site.ID})
	require.NoError(t, err)

	copies, err := svc.ListCopies(ctx, ListCopiesOptions{BookID: &book.ID})
	require.NoError(t, err)
	assert.Len(t, copies, 2)

	copies, err = svc.ListCopies(ctx, ListCopiesOptions{})
	require.NoError(t, err)
	assert.Len(t, copies, 3)
}

func TestDeleteItem_CascadesCopies(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	site := createTestSite(ctx, t, svc, "IES Test")
	book := createTestBook(ctx, t, svc, "Tirant lo Blanc", "Joanot Martorell")

	copyRow, err := svc.CreateCopy(ctx, CreateCopyOptions{CatalogItemID: book.ID, SiteID: site.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, book.ID))

	_, err = svc.RetrieveCopy(ctx, copyRow.ID)
	require.Error(t, err)
}

func TestUpdateItem_ChangesAuthor(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	item := createTestBook(ctx, t, svc, "Obra anònima", "Desconegut")

	updated, err := svc.UpdateItem(ctx, item.ID, UpdateItemOptions{
		Autor: strPtr("Anònim valencià"),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.AuthorName())
	assert.Equal(t, "Anònim valencià", *updated.AuthorName())
}
