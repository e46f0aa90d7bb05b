package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all auth routes and returns the auth service so
// the rest of the server can build middleware from it.
func RegisterRoutes(e *echo.Echo, db *bun.DB, jwtSecret string) *Service {
	authService := NewService(db, jwtSecret)

	h := &handler{
		authService: authService,
	}

	// Legacy API surface.
	e.GET("/token", h.token)
	e.POST("/login", h.login)

	// Console session.
	authMiddleware := NewMiddleware(authService)
	console := e.Group("/auth")
	console.POST("/login", h.consoleLogin)
	console.POST("/logout", h.consoleLogout)
	console.GET("/me", h.me, authMiddleware.Authenticate)

	return authService
}
