package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Activity log levels.
const (
	LogInfo    = "INFO"
	LogWarning = "WARNING"
	LogError   = "ERROR"
	LogFatal   = "FATAL"
)

// ActivityLog records a domain-level action (imports, loan creation) for the
// admin console. Usuari is a plain string so entries survive account deletion.
type ActivityLog struct {
	bun.BaseModel `bun:"table:logs,alias:lg"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Usuari    *string   `json:"usuari"`
	Accio     string    `bun:",nullzero" json:"accio"`
	Tipus     string    `bun:",nullzero" json:"tipus"`
	DataAccio time.Time `json:"data_accio"`
}
