package users

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

func strPtr(s string) *string {
	return &s
}

func TestServiceCreate_AssignsDefaultRole(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserOptions{
		Username:  "maria@example.com",
		Password:  "secret123",
		FirstName: "Maria",
		LastName:  "Garcia Lopez",
		Email:     "maria@example.com",
	})
	require.NoError(t, err)

	assert.True(t, user.HasRole(models.RoleUser))
	assert.Equal(t, []string{models.RoleUser}, user.RoleNames())
}

func TestServiceCreate_SkipsDefaultRoleForStaff(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserOptions{
		Username: "admin@example.com",
		Password: "secret123",
		Email:    "admin@example.com",
		IsStaff:  true,
	})
	require.NoError(t, err)

	assert.Empty(t, user.RoleNames())
}

func TestServiceEnsureDefaultRole_Idempotent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserOptions{
		Username: "pere@example.com",
		Password: "secret123",
		Email:    "pere@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.EnsureDefaultRole(ctx, user))

	user, err = svc.Retrieve(ctx, RetrieveUserOptions{ID: &user.ID})
	require.NoError(t, err)
	assert.Len(t, user.Roles, 1)
}

func TestServiceRetrieve_UsernameCaseInsensitive(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserOptions{
		Username: "Joan@Example.com",
		Password: "secret123",
		Email:    "joan@example.com",
	})
	require.NoError(t, err)

	user, err := svc.Retrieve(ctx, RetrieveUserOptions{Username: strPtr("joan@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Joan@Example.com", user.Username)
}

func TestServiceSearch_OnlyMatchesUserRole(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserOptions{
		Username:  "anna@example.com",
		Password:  "secret123",
		FirstName: "Anna",
		LastName:  "Soler Puig",
		Email:     "anna@example.com",
		Telefon:   strPtr("600123456"),
	})
	require.NoError(t, err)

	// Staff accounts never get the "usuari" role, so search skips them.
	_, err = svc.Create(ctx, CreateUserOptions{
		Username:  "annactl@example.com",
		Password:  "secret123",
		FirstName: "Anna",
		LastName:  "Controladora",
		Email:     "annactl@example.com",
		IsStaff:   true,
	})
	require.NoError(t, err)

	results, err := svc.Search(ctx, "Anna")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "anna@example.com", results[0].Email)
}

func TestServiceSearch_MatchesPhone(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserOptions{
		Username:  "marc@example.com",
		Password:  "secret123",
		FirstName: "Marc",
		LastName:  "Vila Serra",
		Email:     "marc@example.com",
		Telefon:   strPtr("699887766"),
	})
	require.NoError(t, err)

	results, err := svc.Search(ctx, "99887")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "marc@example.com", results[0].Email)
}

func TestServiceDeactivate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserOptions{
		Username: "laia@example.com",
		Password: "secret123",
		Email:    "laia@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, user.ID))

	user, err = svc.Retrieve(ctx, RetrieveUserOptions{ID: &user.ID})
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	err = svc.Deactivate(ctx, 99999)
	assert.Error(t, err)
}
