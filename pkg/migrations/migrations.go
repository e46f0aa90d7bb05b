// Package migrations holds the schema migrations. Each timestamped file in
// this directory registers itself with Migrations at init time.
package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrations is the registry the migration files attach to.
var Migrations = migrate.NewMigrations()

// BringUpToDate creates the migration bookkeeping tables when missing and
// applies every migration that hasn't run yet. The returned group has ID 0
// when the database was already current.
func BringUpToDate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return group, nil
}
