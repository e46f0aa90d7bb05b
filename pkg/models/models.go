package models

import "github.com/uptrace/bun"

// RegisterJoinTables registers the m2m join models with bun. It must run
// before any query that traverses a m2m relation.
func RegisterJoinTables(db *bun.DB) {
	db.RegisterModel((*CatalogItemCategory)(nil), (*UserRole)(nil))
}
