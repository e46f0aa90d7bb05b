package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Loan binds a user to a copy. DataPrestec is set once at creation and never
// updated; DataRetorn stays null while the loan is outstanding.
type Loan struct {
	bun.BaseModel `bun:"table:prestecs,alias:p"`

	ID          int        `bun:",pk,autoincrement" json:"id"`
	UserID      int        `bun:"usuari_id" json:"usuari_id"`
	User        *User      `bun:"rel:belongs-to,join:usuari_id=id" json:"usuari,omitempty"`
	CopyID      int        `bun:"exemplar_id" json:"exemplar_id"`
	Copy        *Copy      `bun:"rel:belongs-to,join:exemplar_id=id" json:"exemplar,omitempty"`
	DataPrestec time.Time  `json:"data_prestec"`
	DataRetorn  *time.Time `json:"data_retorn"`
	Anotacions  *string    `json:"anotacions"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Outstanding reports whether the loan hasn't been returned yet.
func (l *Loan) Outstanding() bool {
	return l.DataRetorn == nil
}

// Reservation is a hold on a copy, without loan semantics.
type Reservation struct {
	bun.BaseModel `bun:"table:reserves,alias:res"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	UserID    int       `bun:"usuari_id" json:"usuari_id"`
	User      *User     `bun:"rel:belongs-to,join:usuari_id=id" json:"usuari,omitempty"`
	CopyID    int       `bun:"exemplar_id" json:"exemplar_id"`
	Copy      *Copy     `bun:"rel:belongs-to,join:exemplar_id=id" json:"exemplar,omitempty"`
	Data      time.Time `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Request is a free-text acquisition request from a user.
type Request struct {
	bun.BaseModel `bun:"table:peticions,alias:pet"`

	ID         int       `bun:",pk,autoincrement" json:"id"`
	UserID     int       `bun:"usuari_id" json:"usuari_id"`
	User       *User     `bun:"rel:belongs-to,join:usuari_id=id" json:"usuari,omitempty"`
	Titol      string    `bun:",nullzero" json:"titol"`
	Descripcio string    `json:"descripcio"`
	Data       time.Time `json:"data"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
