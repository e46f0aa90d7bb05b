package loans

import (
	"github.com/bibliocat/bibliocat/pkg/activity"
	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the loan history, creation, and return routes.
// History and creation keep their historical paths.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	loanService := NewService(db)
	activityService := activity.NewService(db)

	h := &handler{
		loanService:     loanService,
		activityService: activityService,
	}

	e.POST("/prestecs", h.history)
	e.POST("/crear_prestec", h.create)

	prestecs := e.Group("/prestecs")
	prestecs.Use(authMiddleware.Authenticate)
	prestecs.Use(authMiddleware.RequireRole(models.RoleLibrarian, models.RoleAdmin))
	prestecs.POST("/:id/retorn", h.returnLoan)

	return loanService
}
