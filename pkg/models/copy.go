package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Copy is one physical, loanable instance of a catalog item at a site.
type Copy struct {
	bun.BaseModel `bun:"table:exemplars,alias:ex"`

	ID            int          `bun:",pk,autoincrement" json:"id"`
	CatalogItemID int          `bun:"cataleg_id" json:"cataleg_id"`
	Item          *CatalogItem `bun:"rel:belongs-to,join:cataleg_id=id" json:"cataleg,omitempty"`
	Registre      *string      `json:"registre"`
	ExclosPrestec bool         `json:"exclos_prestec"`
	Baixa         bool         `json:"baixa"`
	SiteID        int          `bun:"centre_id" json:"centre_id"`
	Site          *Site        `bun:"rel:belongs-to,join:centre_id=id" json:"centre,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Loanable reports whether the copy may be handed out. A decommissioned or
// excluded-from-loan copy must never be loanable.
func (c *Copy) Loanable() bool {
	return !c.ExclosPrestec && !c.Baixa
}

// Image is an uploaded picture attached to a catalog item.
type Image struct {
	bun.BaseModel `bun:"table:imatges,alias:im"`

	ID            int          `bun:",pk,autoincrement" json:"id"`
	CatalogItemID int          `bun:"cataleg_id" json:"cataleg_id"`
	Item          *CatalogItem `bun:"rel:belongs-to,join:cataleg_id=id" json:"-"`
	Filepath      string       `bun:",nullzero" json:"imatge"`
	MimeType      string       `bun:",nullzero" json:"mime_type"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
