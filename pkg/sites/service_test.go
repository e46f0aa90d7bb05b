package sites

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/migrations"
	"github.com/bibliocat/bibliocat/pkg/models"
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

func TestGetOrCreateSite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(newTestDB(t))

	site, err := svc.GetOrCreateSite(ctx, "IES Esteve Terradas")
	require.NoError(t, err)
	assert.NotZero(t, site.ID)

	// Lookups are case-insensitive, so no second row appears.
	again, err := svc.GetOrCreateSite(ctx, "ies esteve terradas")
	require.NoError(t, err)
	assert.Equal(t, site.ID, again.ID)

	siteList, err := svc.ListSites(ctx)
	require.NoError(t, err)
	assert.Len(t, siteList, 1)
}

func TestGetOrCreateGroup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(newTestDB(t))

	group, err := svc.GetOrCreateGroup(ctx, "GS DAW")
	require.NoError(t, err)

	again, err := svc.GetOrCreateGroup(ctx, "gs daw")
	require.NoError(t, err)
	assert.Equal(t, group.ID, again.ID)
}

func TestListSitesOrdering(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(newTestDB(t))

	for _, nom := range []string{"Zel Institut", "Aula Nord", "Mitja Lluna"} {
		_, err := svc.CreateSite(ctx, nom)
		require.NoError(t, err)
	}

	siteList, err := svc.ListSites(ctx)
	require.NoError(t, err)
	require.Len(t, siteList, 3)
	assert.Equal(t, "Aula Nord", siteList[0].Nom)
	assert.Equal(t, "Mitja Lluna", siteList[1].Nom)
	assert.Equal(t, "Zel Institut", siteList[2].Nom)
}

func TestUpdateSite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(newTestDB(t))

	site, err := svc.CreateSite(ctx, "Institut Vell")
	require.NoError(t, err)

	updated, err := svc.UpdateSite(ctx, site.ID, "Institut Nou")
	require.NoError(t, err)
	assert.Equal(t, "Institut Nou", updated.Nom)

	reloaded, err := svc.RetrieveSite(ctx, RetrieveSiteOptions{ID: &site.ID})
	require.NoError(t, err)
	assert.Equal(t, "Institut Nou", reloaded.Nom)
}

func TestDeleteSiteWithCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	svc := NewService(db)

	site, err := svc.CreateSite(ctx, "Institut del Mar")
	require.NoError(t, err)

	now := time.Now()
	item := &models.CatalogItem{Titol: "Mecanoscrit", CreatedAt: now, UpdatedAt: now}
	_, err = db.NewInsert().Model(item).Exec(ctx)
	require.NoError(t, err)

	copyRow := &models.Copy{CatalogItemID: item.ID, SiteID: site.ID, CreatedAt: now, UpdatedAt: now}
	_, err = db.NewInsert().Model(copyRow).Exec(ctx)
	require.NoError(t, err)

	err = svc.DeleteSite(ctx, site.ID)
	assert.True(t, errors.Is(err, errcodes.Conflict("el centre té exemplars assignats")))

	// The site survives while the copy references it.
	_, err = svc.RetrieveSite(ctx, RetrieveSiteOptions{ID: &site.ID})
	assert.NoError(t, err)

	_, err = db.NewDelete().Model((*models.Copy)(nil)).Where("id = ?", copyRow.ID).Exec(ctx)
	require.NoError(t, err)

	err = svc.DeleteSite(ctx, site.ID)
	assert.NoError(t, err)

	_, err = svc.RetrieveSite(ctx, RetrieveSiteOptions{ID: &site.ID})
	assert.True(t, errors.Is(err, errcodes.NotFound("Centre")))
}

func TestDeleteMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(newTestDB(t))

	err := svc.DeleteSite(ctx, 999)
	assert.True(t, errors.Is(err, errcodes.NotFound("Centre")))

	err = svc.DeleteGroup(ctx, 999)
	assert.True(t, errors.Is(err, errcodes.NotFound("Grup")))
}
