package requests

import (
	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the acquisition request routes. All of them
// require an authenticated user.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	requestService := NewService(db)

	h := &handler{
		requestService: requestService,
	}

	peticions := e.Group("/peticions")
	peticions.Use(authMiddleware.Authenticate)
	peticions.GET("", h.list)
	peticions.POST("", h.create)
	peticions.DELETE("/:id", h.remove)

	return requestService
}
