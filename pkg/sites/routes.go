package sites

import (
	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the site and group admin routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	siteService := NewService(db)

	h := &handler{
		siteService: siteService,
	}

	centres := e.Group("/centres")
	centres.Use(authMiddleware.Authenticate)
	centres.GET("", h.listSites)
	centres.GET("/:id", h.retrieveSite)
	centres.POST("", h.createSite, authMiddleware.RequireStaff)
	centres.PATCH("/:id", h.updateSite, authMiddleware.RequireStaff)
	centres.DELETE("/:id", h.deleteSite, authMiddleware.RequireStaff)

	grups := e.Group("/grups")
	grups.Use(authMiddleware.Authenticate)
	grups.GET("", h.listGroups)
	grups.POST("", h.createGroup, authMiddleware.RequireStaff)
	grups.DELETE("/:id", h.deleteGroup, authMiddleware.RequireStaff)

	return siteService
}
