package reservations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bibliocat/bibliocat/pkg/catalog"
	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/migrations"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/bibliocat/bibliocat/pkg/sites"
	"github.com/bibliocat/bibliocat/pkg/users"
	"github.com/pkg/errors"
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
	db      *bun.DB
	catalog *catalog.Service
	user    *models.User
	copy    *models.Copy
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
	item, err := catalogService.CreateItem(ctx, catalog.CreateItemOptions{
		Kind:  models.KindLlibre,
		Titol: "La plaça del Diamant",
	})
	require.NoError(t, err)

	copyRow, err := catalogService.CreateCopy(ctx, catalog.CreateCopyOptions{
		CatalogItemID: item.ID,
		SiteID:        site.ID,
	})
	require.NoError(t, err)

	return &fixture{db: db, catalog: catalogService, user: user, copy: copyRow}
}

func (f *fixture) countReservations(ctx context.Context, t *testing.T) int {
	t.Helper()

	count, err := f.db.NewSelect().Model((*models.Reservation)(nil)).Count(ctx)
	require.NoError(t, err)
	return count
}

func TestCreateReservation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	svc := NewService(f.db)

	reservation, err := svc.Create(ctx, CreateReservationOptions{
		UserID: f.user.ID,
		CopyID: f.copy.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, reservation.ID)
	assert.False(t, reservation.Data.IsZero())

	// Holds never touch the copy's flags.
	reloaded, err := f.catalog.RetrieveCopy(ctx, f.copy.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Loanable())
}

func TestCreateReservation_ExcludedCopyRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	svc := NewService(f.db)

	flag := true
	_, err := f.catalog.SetCopyFlags(ctx, f.copy.ID, &flag, nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateReservationOptions{
		UserID: f.user.ID,
		CopyID: f.copy.ID,
	})
	assert.True(t, errors.Is(err, errcodes.Conflict("l'exemplar no està disponible per a reserves")))
	assert.Zero(t, f.countReservations(ctx, t))
}

func TestCreateReservation_DecommissionedCopyRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	svc := NewService(f.db)

	flag := true
	_, err := f.catalog.SetCopyFlags(ctx, f.copy.ID, &flag, &flag)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateReservationOptions{
		UserID: f.user.ID,
		CopyID: f.copy.ID,
	})
	assert.True(t, errors.Is(err, errcodes.Conflict("l'exemplar no està disponible per a reserves")))
	assert.Zero(t, f.countReservations(ctx, t))
}

func TestCreateReservation_UnknownRefs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	svc := NewService(f.db)

	_, err := svc.Create(ctx, CreateReservationOptions{UserID: 999, CopyID: f.copy.ID})
	assert.True(t, errors.Is(err, errcodes.NotFound("Usuari")))

	_, err = svc.Create(ctx, CreateReservationOptions{UserID: f.user.ID, CopyID: 999})
	assert.True(t, errors.Is(err, errcodes.NotFound("Exemplar")))

	assert.Zero(t, f.countReservations(ctx, t))
}

func TestDeleteReservation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	svc := NewService(f.db)

	reservation, err := svc.Create(ctx, CreateReservationOptions{
		UserID: f.user.ID,
		CopyID: f.copy.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, reservation.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, reservation.ID), errcodes.NotFound("Reserva")))
}
