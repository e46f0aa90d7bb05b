package main

import (
	"context"
	"os"

	"github.com/bibliocat/bibliocat/pkg/catalog"
	"github.com/bibliocat/bibliocat/pkg/config"
	"github.com/bibliocat/bibliocat/pkg/database"
	"github.com/bibliocat/bibliocat/pkg/loans"
	"github.com/bibliocat/bibliocat/pkg/migrations"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/bibliocat/bibliocat/pkg/refdata"
	"github.com/bibliocat/bibliocat/pkg/sites"
	"github.com/bibliocat/bibliocat/pkg/users"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "populate the database with demo data",
		Commands: []*cli.Command{
			{
				Name:  "admin",
				Usage: "create the default admin account",
				Action: func(c *cli.Context) error {
					return seedAdmin(c.Context, db)
				},
			},
			{
				Name:  "demo",
				Usage: "create reference data, a sample catalog, and demo users",
				Action: func(c *cli.Context) error {
					if err := seedAdmin(c.Context, db); err != nil {
						return err
					}
					return seedDemo(c.Context, db, cfg)
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

func seedAdmin(ctx context.Context, db *bun.DB) error {
	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		return err
	}

	userService := users.NewService(db)

	exists, err := userService.Exists(ctx, "admin")
	if err != nil || exists {
		return err
	}

	_, err = userService.Create(ctx, users.CreateUserOptions{
		Username:    "admin",
		Password:    "admin",
		Email:       "admin@bibliocat.local",
		IsStaff:     true,
		IsSuperuser: true,
	})
	return err
}

func seedDemo(ctx context.Context, db *bun.DB, cfg *config.Config) error {
	siteService := sites.NewService(db)
	refdataService := refdata.NewService(db)
	catalogService := catalog.NewService(db, cfg.MediaDir)
	userService := users.NewService(db)
	loanService := loans.NewService(db)

	site, err := siteService.GetOrCreateSite(ctx, "IES Esteve Terradas")
	if err != nil {
		return err
	}
	group, err := siteService.GetOrCreateGroup(ctx, "GS DAW")
	if err != nil {
		return err
	}

	ficcio, err := refdataService.CreateCategory(ctx, refdata.CreateCategoryOptions{Nom: "Ficció"})
	if err != nil {
		return err
	}
	if _, err := refdataService.CreateCategory(ctx, refdata.CreateCategoryOptions{Nom: "Novel·la", ParentID: &ficcio.ID}); err != nil {
		return err
	}

	autor := "Mercè Rodoreda"
	isbn := "9788475881997"
	book, err := catalogService.CreateItem(ctx, catalog.CreateItemOptions{
		Kind:      models.KindLlibre,
		Titol:     "La plaça del Diamant",
		Autor:     &autor,
		Editorial: strPtr("Club Editor"),
		Book:      &catalog.BookFields{ISBN: &isbn},
		TagIDs:    []int{ficcio.ID},
	})
	if err != nil {
		return err
	}

	if _, err := catalogService.CreateItem(ctx, catalog.CreateItemOptions{
		Kind:     models.KindRevista,
		Titol:    "Cavall Fort",
		Magazine: &catalog.MagazineFields{ISSN: strPtr("0210-7929")},
	}); err != nil {
		return err
	}

	if _, err := catalogService.CreateItem(ctx, catalog.CreateItemOptions{
		Kind:      models.KindCD,
		Titol:     "Verdaguer cantat",
		AudioDisc: &catalog.AudioDiscFields{Discografica: "Picap", Estil: "Coral", Duracio: "01:02:03"},
	}); err != nil {
		return err
	}

	if _, err := catalogService.CreateItem(ctx, catalog.CreateItemOptions{
		Kind:      models.KindDVD,
		Titol:     "Pa negre",
		VideoDisc: &catalog.VideoDiscFields{Productora: "Massa d'Or", Duracio: "01:48:00"},
	}); err != nil {
		return err
	}

	if _, err := catalogService.CreateItem(ctx, catalog.CreateItemOptions{
		Kind:       models.KindBR,
		Titol:      "Estiu 1993",
		BluRayDisc: &catalog.BluRayDiscFields{Productora: "Inicia Films", Duracio: "01:37:00"},
	}); err != nil {
		return err
	}

	if _, err := catalogService.CreateItem(ctx, catalog.CreateItemOptions{
		Kind:   models.KindDispositiu,
		Titol:  "Lector de llibres electrònics",
		Device: &catalog.DeviceFields{Marca: "Kobo", Model: strPtr("Clara 2E")},
	}); err != nil {
		return err
	}

	if _, err := catalogService.CreateItem(ctx, catalog.CreateItemOptions{
		Kind:  models.KindIndefinit,
		Titol: "Material divers",
	}); err != nil {
		return err
	}

	copyRow, err := catalogService.CreateCopy(ctx, catalog.CreateCopyOptions{
		CatalogItemID: book.ID,
		SiteID:        site.ID,
	})
	if err != nil {
		return err
	}

	telefon := "600123456"
	demoUser, err := userService.Create(ctx, users.CreateUserOptions{
		Username:  "anna@bibliocat.local",
		Password:  users.DefaultImportPassword,
		FirstName: "Anna",
		LastName:  "Soler Puig",
		Email:     "anna@bibliocat.local",
		Telefon:   &telefon,
		SiteID:    &site.ID,
		GroupID:   &group.ID,
	})
	if err != nil {
		return err
	}

	_, err = loanService.Create(ctx, loans.CreateLoanOptions{
		UserID: demoUser.ID,
		CopyID: copyRow.ID,
	})
	return err
}

func strPtr(s string) *string {
	return &s
}
