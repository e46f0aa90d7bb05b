package refdata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bibliocat/bibliocat/pkg/migrations"
	"github.com/bibliocat/bibliocat/pkg/models"
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

func TestUpdateCategory_RejectsSelfParent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, CreateCategoryOptions{Nom: "Novel·la"})
	require.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, cat.ID, UpdateCategoryOptions{ParentID: &cat.ID})
	require.Error(t, err)
}

func TestUpdateCategory_RejectsCycle(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	root, err := svc.CreateCategory(ctx, CreateCategoryOptions{Nom: "Ficció"})
	require.NoError(t, err)
	mid, err := svc.CreateCategory(ctx, CreateCategoryOptions{Nom: "Novel·la", ParentID: &root.ID})
	require.NoError(t, err)
	leaf, err := svc.CreateCategory(ctx, CreateCategoryOptions{Nom: "Policíaca", ParentID: &mid.ID})
	require.NoError(t, err)

	// root -> mid -> leaf already holds; parenting root under leaf would
	// close the loop.
	_, err = svc.UpdateCategory(ctx, root.ID, UpdateCategoryOptions{ParentID: &leaf.ID})
	require.Error(t, err)

	// The tree is untouched.
	got, err := svc.RetrieveCategory(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestUpdateCategory_AllowsReparenting(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	a, err := svc.CreateCategory(ctx, CreateCategoryOptions{Nom: "Ciència"})
	require.NoError(t, err)
	b, err := svc.CreateCategory(ctx, CreateCategoryOptions{Nom: "Història"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(ctx, CreateCategoryOptions{Nom: "Biografies", ParentID: &a.ID})
	require.NoError(t, err)

	got, err := svc.UpdateCategory(ctx, child.ID, UpdateCategoryOptions{ParentID: &b.ID})
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, b.ID, *got.ParentID)

	got, err = svc.UpdateCategory(ctx, child.ID, UpdateCategoryOptions{ClearParent: true})
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestCreateCategory_UnknownParent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	missing := 12345
	_, err := svc.CreateCategory(ctx, CreateCategoryOptions{Nom: "Orfe", ParentID: &missing})
	require.Error(t, err)
}

func TestGetOrCreateAuthor(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first, err := svc.GetOrCreateAuthor(ctx, "Mercè Rodoreda")
	require.NoError(t, err)

	second, err := svc.GetOrCreateAuthor(ctx, "mercè rodoreda")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	authors, err := svc.ListAuthors(ctx)
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestGetOrCreatePublisher(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	first, err := svc.GetOrCreatePublisher(ctx, "Edicions 62")
	require.NoError(t, err)

	second, err := svc.GetOrCreatePublisher(ctx, "Edicions 62")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
