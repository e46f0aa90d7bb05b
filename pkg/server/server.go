package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bibliocat/bibliocat/pkg/activity"
	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/bibliocat/bibliocat/pkg/binder"
	"github.com/bibliocat/bibliocat/pkg/catalog"
	"github.com/bibliocat/bibliocat/pkg/config"
	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/loans"
	"github.com/bibliocat/bibliocat/pkg/refdata"
	"github.com/bibliocat/bibliocat/pkg/requests"
	"github.com/bibliocat/bibliocat/pkg/reservations"
	"github.com/bibliocat/bibliocat/pkg/sites"
	"github.com/bibliocat/bibliocat/pkg/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

// New assembles the HTTP server: binder, middleware, and every route group.
func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	authService := auth.RegisterRoutes(e, db, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	users.RegisterRoutes(e, db, authMiddleware)
	catalog.RegisterRoutes(e, db, cfg.MediaDir, authMiddleware)
	loans.RegisterRoutes(e, db, authMiddleware)
	reservations.RegisterRoutes(e, db, authMiddleware)
	requests.RegisterRoutes(e, db, authMiddleware)
	refdata.RegisterRoutes(e, db, authMiddleware)
	sites.RegisterRoutes(e, db, authMiddleware)
	activity.RegisterRoutes(e, db, authMiddleware)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
