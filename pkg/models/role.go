package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Predefined role names.
const (
	RoleUser      = "usuari"
	RoleLibrarian = "bibliotecari"
	RoleAdmin     = "admin"
)

type Role struct {
	bun.BaseModel `bun:"table:rols,alias:r"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Nom       string    `bun:",nullzero" json:"nom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRole is the m2m join between users and roles.
type UserRole struct {
	bun.BaseModel `bun:"table:usuari_rols,alias:ur"`

	UserID int   `bun:"usuari_id,pk" json:"usuari_id"`
	User   *User `bun:"rel:belongs-to,join:usuari_id=id" json:"-"`
	RoleID int   `bun:"rol_id,pk" json:"rol_id"`
	Role   *Role `bun:"rel:belongs-to,join:rol_id=id" json:"-"`
}
