package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Category is a self-referencing tag tree for catalog items. The schema
// doesn't prevent parent cycles; the refdata service rejects assignments that
// would create one.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Nom       string    `bun:",nullzero" json:"nom"`
	ParentID  *int      `json:"parent_id,omitempty"`
	Parent    *Category `bun:"rel:belongs-to,join:parent_id=id" json:"parent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Author struct {
	bun.BaseModel `bun:"table:autors,alias:aut"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Nom       *string   `json:"nom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Publisher struct {
	bun.BaseModel `bun:"table:editorials,alias:ed"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Nom       *string   `json:"nom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Country struct {
	bun.BaseModel `bun:"table:paisos,alias:pa"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Nom       string    `bun:",nullzero" json:"nom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Language struct {
	bun.BaseModel `bun:"table:llengues,alias:lle"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Nom       string    `bun:",nullzero" json:"nom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
