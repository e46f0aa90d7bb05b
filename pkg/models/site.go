package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Site is an institutional location (a "centre") that owns copies and users.
type Site struct {
	bun.BaseModel `bun:"table:centres,alias:ce"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Nom       string    `bun:",nullzero" json:"nom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Group is a user cohort (a class group like "GS").
type Group struct {
	bun.BaseModel `bun:"table:grups,alias:gr"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Nom       string    `bun:",nullzero" json:"nom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
