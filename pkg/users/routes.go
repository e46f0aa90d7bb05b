package users

import (
	"github.com/bibliocat/bibliocat/pkg/activity"
	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the profile, search, import, and admin user
// routes. The profile and import endpoints keep their historical paths,
// trailing slash included, so existing clients keep working.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	userService := NewService(db)
	activityService := activity.NewService(db)

	h := &handler{
		userService:     userService,
		activityService: activityService,
	}

	e.POST("/perfil/", h.profile)
	e.PATCH("/perfil/", h.updateProfile)
	e.POST("/verificar-cambios/", h.checkProfileChanges)
	e.POST("/buscar_usuarios/", h.search, authMiddleware.Authenticate)
	e.POST("/subir-documento/", h.uploadDocument)

	usuaris := e.Group("/usuaris")
	usuaris.Use(authMiddleware.Authenticate)
	usuaris.Use(authMiddleware.RequireStaff)
	usuaris.GET("", h.list)
	usuaris.GET("/:id", h.retrieve)
	usuaris.POST("", h.create)
	usuaris.PATCH("/:id", h.update)
	usuaris.DELETE("/:id", h.deactivate)

	return userService
}
