package reservations

import (
	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the reservation routes. All of them require an
// authenticated user.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	reservationService := NewService(db)

	h := &handler{
		reservationService: reservationService,
	}

	reserves := e.Group("/reserves")
	reserves.Use(authMiddleware.Authenticate)
	reserves.GET("", h.list)
	reserves.POST("", h.create)
	reserves.DELETE("/:id", h.remove)

	return reservationService
}
