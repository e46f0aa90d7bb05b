package activity

import (
	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the admin activity log routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	activityService := NewService(db)

	h := &handler{
		activityService: activityService,
	}

	logs := e.Group("/logs")
	logs.Use(authMiddleware.Authenticate)
	logs.Use(authMiddleware.RequireStaff)
	logs.GET("", h.list)

	return activityService
}
