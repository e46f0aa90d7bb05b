package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// User is an account tied to an institutional site and group. Usernames for
// imported accounts are the normalized email address.
type User struct {
	bun.BaseModel `bun:"table:usuaris,alias:u"`

	ID           int       `bun:",pk,autoincrement" json:"id"`
	Username     string    `bun:",nullzero" json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Telefon      *string   `json:"telefon"`
	Imatge       *string   `json:"imatge"`
	PasswordHash string    `json:"-"`
	AuthToken    *string   `json:"-"`
	SiteID       *int      `bun:"centre_id" json:"centre_id,omitempty"`
	Site         *Site     `bun:"rel:belongs-to,join:centre_id=id" json:"centre,omitempty"`
	GroupID      *int      `bun:"grup_id" json:"grup_id,omitempty"`
	Group        *Group    `bun:"rel:belongs-to,join:grup_id=id" json:"grup,omitempty"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	IsActive     bool      `json:"is_active"`
	Roles        []*Role   `bun:"m2m:usuari_rols,join:User=Role" json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName joins the first and last name, or returns "" when neither is set.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// RoleNames returns the role names in definition order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Nom)
	}
	return names
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Nom == name {
			return true
		}
	}
	return false
}
