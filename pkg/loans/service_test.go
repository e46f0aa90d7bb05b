package loans

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bibliocat/bibliocat/pkg/catalog"
	"github.com/bibliocat/bibliocat/pkg/migrations"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/bibliocat/bibliocat/pkg/sites"
	"github.com/bibliocat/bibliocat/pkg/users"
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

	db := bun.NewDB(sqldb, sqlitedialect.New())
	models.RegisterJoinTables(db)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

type fixture struct {
	db   *bun.DB
	user *models.User
	copy *models.Copy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db := newTestDB(t)

	user, err := users.NewService(db).Create(ctx, users.CreateUserOptions{
		Username: "anna@x.com",
		Password: "secret123",
		Email:    "anna@x.com",
	})
	require.NoError(t, err)

	site, err := sites.NewService(db).CreateSite(ctx, "IES Test")
	require.NoError(t, err)

	catalogService := catalog.NewService(db, t.TempDir())
	autor := "Mercè Rodoreda"
	item, err := catalogService.CreateItem(ctx, catalog.CreateItemOptions{
		Kind:  models.KindLlibre,
		Titol: "La plaça del Diamant",
		Autor: &autor,
	})
	require.NoError(t, err)

	copyRow, err := catalogService.CreateCopy(ctx, catalog.CreateCopyOptions{
		CatalogItemID: item.ID,
		SiteID:        site.ID,
	})
	require.NoError(t, err)

	return &fixture{db: db, user: user, copy: copyRow}
}

func (f *fixture) reloadCopy(ctx context.Context, t *testing.T) *models.Copy {
	t.Helper()

	copyRow := &models.Copy{}
	err := f.db.NewSelect().Model(copyRow).Where("ex.id = ?", f.copy.ID).Scan(ctx)
	require.NoError(t, err)

	return copyRow
}

func TestCreate_SetsExclosPrestec(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewService(f.db)
	ctx := context.Background()

	require.False(t, f.copy.ExclosPrestec)

	loan, err := svc.Create(ctx, CreateLoanOptions{UserID: f.user.ID, CopyID: f.copy.ID})
	require.NoError(t, err)
	assert.True(t, loan.Outstanding())

	assert.True(t, f.reloadCopy(ctx, t).ExclosPrestec)
}

func TestCreate_NoAvailabilityCheck(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewService(f.db)
	ctx := context.Background()

	// An already excluded copy is loaned again without complaint.
	_, err := svc.Create(ctx, CreateLoanOptions{UserID: f.user.ID, CopyID: f.copy.ID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateLoanOptions{UserID: f.user.ID, CopyID: f.copy.ID})
	require.NoError(t, err)

	loans, err := svc.List(ctx, ListLoansOptions{UserID: &f.user.ID})
	require.NoError(t, err)
	assert.Len(t, loans, 2)
	assert.True(t, f.reloadCopy(ctx, t).ExclosPrestec)
}

func TestCreate_UnknownUserOrCopy(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewService(f.db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateLoanOptions{UserID: 9999, CopyID: f.copy.ID})
	require.Error(t, err)

	_, err = svc.Create(ctx, CreateLoanOptions{UserID: f.user.ID, CopyID: 9999})
	require.Error(t, err)

	// Neither failure left a loan row behind.
	count, err := f.db.NewSelect().Model((*models.Loan)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.False(t, f.reloadCopy(ctx, t).ExclosPrestec)
}

func TestCreate_ExplicitDate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewService(f.db)
	ctx := context.Background()

	when := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	loan, err := svc.Create(ctx, CreateLoanOptions{
		UserID:      f.user.ID,
		CopyID:      f.copy.ID,
		DataPrestec: &when,
	})
	require.NoError(t, err)
	assert.True(t, when.Equal(loan.DataPrestec))
}

func TestList_NewestFirst(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewService(f.db)
	ctx := context.Background()

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, CreateLoanOptions{UserID: f.user.ID, CopyID: f.copy.ID, DataPrestec: &older})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateLoanOptions{UserID: f.user.ID, CopyID: f.copy.ID, DataPrestec: &newer})
	require.NoError(t, err)

	username := "anna@x.com"
	loans, err := svc.List(ctx, ListLoansOptions{Username: &username})
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.True(t, newer.Equal(loans[0].DataPrestec))
	assert.True(t, older.Equal(loans[1].DataPrestec))
}

func TestReturn_ClosesLoanAndFreesCopy(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc := NewService(f.db)
	ctx := context.Background()

	loan, err := svc.Create(ctx, CreateLoanOptions{UserID: f.user.ID, CopyID: f.copy.ID})
	require.NoError(t, err)

	returned, err := svc.Return(ctx, loan.ID, nil)
	require.NoError(t, err)
	assert.False(t, returned.Outstanding())
	assert.False(t, f.reloadCopy(ctx, t).ExclosPrestec)

	// The loan date never moves on return.
	assert.True(t, loan.DataPrestec.Equal(returned.DataPrestec))

	_, err = svc.Return(ctx, loan.ID, nil)
	require.Error(t, err)
}
