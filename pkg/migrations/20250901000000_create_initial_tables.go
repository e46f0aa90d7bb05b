package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		stmts := []string{
			`CREATE TABLE categories (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				nom TEXT NOT NULL,
				parent_id INTEGER REFERENCES categories (id) ON DELETE CASCADE
			)`,
			`CREATE INDEX ix_categories_parent_id ON categories (parent_id)`,
			`CREATE TABLE paisos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				nom TEXT NOT NULL
			)`,
			`CREATE TABLE llengues (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				nom TEXT NOT NULL
			)`,
			`CREATE TABLE autors (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				nom TEXT
			)`,
			`CREATE TABLE editorials (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				nom TEXT
			)`,
			`CREATE TABLE cataleg (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				titol TEXT NOT NULL,
				titol_original TEXT,
				autor_id INTEGER REFERENCES autors (id) ON DELETE SET NULL,
				cdu TEXT,
				signatura TEXT,
				data_edicio DATE,
				resum TEXT,
				anotacions TEXT,
				mides TEXT,
				editorial_id INTEGER REFERENCES editorials (id) ON DELETE SET NULL,
				lloc TEXT,
				pais_id INTEGER REFERENCES paisos (id) ON DELETE SET NULL,
				llengua_id INTEGER REFERENCES llengues (id) ON DELETE SET NULL
			)`,
			`CREATE INDEX ix_cataleg_autor_id ON cataleg (autor_id)`,
			`CREATE INDEX ix_cataleg_editorial_id ON cataleg (editorial_id)`,
			`CREATE TABLE cataleg_categories (
				cataleg_id INTEGER NOT NULL REFERENCES cataleg (id) ON DELETE CASCADE,
				categoria_id INTEGER NOT NULL REFERENCES categories (id) ON DELETE CASCADE,
				PRIMARY KEY (cataleg_id, categoria_id)
			)`,
			`CREATE TABLE llibres (
				cataleg_id INTEGER PRIMARY KEY REFERENCES cataleg (id) ON DELETE CASCADE,
				isbn TEXT,
				colleccio TEXT,
				numero INTEGER,
				volums INTEGER,
				pagines INTEGER,
				info_url TEXT,
				preview_url TEXT,
				thumbnail_url TEXT
			)`,
			`CREATE TABLE revistes (
				cataleg_id INTEGER PRIMARY KEY REFERENCES cataleg (id) ON DELETE CASCADE,
				issn TEXT,
				numero INTEGER,
				volums INTEGER,
				pagines INTEGER
			)`,
			`CREATE TABLE cds (
				cataleg_id INTEGER PRIMARY KEY REFERENCES cataleg (id) ON DELETE CASCADE,
				discografica TEXT NOT NULL,
				estil TEXT NOT NULL,
				duracio TEXT NOT NULL
			)`,
			`CREATE TABLE dvds (
				cataleg_id INTEGER PRIMARY KEY REFERENCES cataleg (id) ON DELETE CASCADE,
				productora TEXT NOT NULL,
				duracio TEXT NOT NULL
			)`,
			`CREATE TABLE brs (
				cataleg_id INTEGER PRIMARY KEY REFERENCES cataleg (id) ON DELETE CASCADE,
				productora TEXT NOT NULL,
				duracio TEXT NOT NULL
			)`,
			`CREATE TABLE dispositius (
				cataleg_id INTEGER PRIMARY KEY REFERENCES cataleg (id) ON DELETE CASCADE,
				marca TEXT NOT NULL,
				model TEXT
			)`,
			`CREATE TABLE centres (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				nom TEXT NOT NULL
			)`,
			`CREATE TABLE grups (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				nom TEXT NOT NULL
			)`,
			`CREATE TABLE exemplars (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				cataleg_id INTEGER NOT NULL REFERENCES cataleg (id) ON DELETE CASCADE,
				registre TEXT,
				exclos_prestec BOOLEAN NOT NULL DEFAULT FALSE,
				baixa BOOLEAN NOT NULL DEFAULT FALSE,
				centre_id INTEGER NOT NULL REFERENCES centres (id) ON DELETE RESTRICT
			)`,
			`CREATE INDEX ix_exemplars_cataleg_id ON exemplars (cataleg_id)`,
			`CREATE INDEX ix_exemplars_centre_id ON exemplars (centre_id)`,
			`CREATE TABLE imatges (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				cataleg_id INTEGER NOT NULL REFERENCES cataleg (id) ON DELETE CASCADE,
				filepath TEXT NOT NULL,
				mime_type TEXT NOT NULL
			)`,
			`CREATE TABLE rols (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				nom TEXT NOT NULL
			)`,
			`CREATE UNIQUE INDEX ux_rols_nom ON rols (nom)`,
			`CREATE TABLE usuaris (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				username TEXT NOT NULL,
				first_name TEXT NOT NULL DEFAULT '',
				last_name TEXT NOT NULL DEFAULT '',
				email TEXT NOT NULL DEFAULT '',
				telefon TEXT,
				imatge TEXT,
				password_hash TEXT NOT NULL DEFAULT '',
				auth_token TEXT,
				centre_id INTEGER REFERENCES centres (id) ON DELETE SET NULL,
				grup_id INTEGER REFERENCES grups (id) ON DELETE SET NULL,
				is_staff BOOLEAN NOT NULL DEFAULT FALSE,
				is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
				is_active BOOLEAN NOT NULL DEFAULT TRUE
			)`,
			`CREATE UNIQUE INDEX ux_usuaris_username ON usuaris (username COLLATE NOCASE)`,
			`CREATE UNIQUE INDEX ux_usuaris_auth_token ON usuaris (auth_token) WHERE auth_token IS NOT NULL`,
			`CREATE TABLE usuari_rols (
				usuari_id INTEGER NOT NULL REFERENCES usuaris (id) ON DELETE CASCADE,
				rol_id INTEGER NOT NULL REFERENCES rols (id) ON DELETE CASCADE,
				PRIMARY KEY (usuari_id, rol_id)
			)`,
			`CREATE TABLE prestecs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				usuari_id INTEGER NOT NULL REFERENCES usuaris (id) ON DELETE CASCADE,
				exemplar_id INTEGER NOT NULL REFERENCES exemplars (id) ON DELETE CASCADE,
				data_prestec DATE NOT NULL,
				data_retorn DATE,
				anotacions TEXT
			)`,
			`CREATE INDEX ix_prestecs_usuari_id ON prestecs (usuari_id)`,
			`CREATE INDEX ix_prestecs_exemplar_id ON prestecs (exemplar_id)`,
			`CREATE TABLE reserves (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				usuari_id INTEGER NOT NULL REFERENCES usuaris (id) ON DELETE CASCADE,
				exemplar_id INTEGER NOT NULL REFERENCES exemplars (id) ON DELETE CASCADE,
				data DATE NOT NULL
			)`,
			`CREATE INDEX ix_reserves_usuari_id ON reserves (usuari_id)`,
			`CREATE TABLE peticions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				usuari_id INTEGER NOT NULL REFERENCES usuaris (id) ON DELETE CASCADE,
				titol TEXT NOT NULL,
				descripcio TEXT NOT NULL,
				data DATE NOT NULL
			)`,
			`CREATE INDEX ix_peticions_usuari_id ON peticions (usuari_id)`,
			`CREATE TABLE logs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				usuari TEXT,
				accio TEXT NOT NULL,
				tipus TEXT NOT NULL,
				data_accio TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`INSERT INTO rols (nom) VALUES ('usuari'), ('bibliotecari'), ('admin')`,
		}

		for _, stmt := range stmts {
			if _, err := db.Exec(stmt); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		tables := []string{
			"logs", "peticions", "reserves", "prestecs", "usuari_rols", "usuaris",
			"rols", "imatges", "exemplars", "grups", "centres", "dispositius",
			"brs", "dvds", "cds", "revistes", "llibres", "cataleg_categories",
			"cataleg", "editorials", "autors", "llengues", "paisos", "categories",
		}
		for _, table := range tables {
			if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
