package refdata

import (
	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the reference data admin routes: categories,
// authors, publishers, countries, and languages.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	refdataService := NewService(db)

	h := &handler{
		refdataService: refdataService,
	}

	categories := e.Group("/categories")
	categories.Use(authMiddleware.Authenticate)
	categories.GET("", h.listCategories)
	categories.POST("", h.createCategory, authMiddleware.RequireStaff)
	categories.PATCH("/:id", h.updateCategory, authMiddleware.RequireStaff)
	categories.DELETE("/:id", h.deleteCategory, authMiddleware.RequireStaff)

	autors := e.Group("/autors")
	autors.Use(authMiddleware.Authenticate)
	autors.GET("", h.listAuthors)
	autors.POST("", h.createAuthor, authMiddleware.RequireStaff)
	autors.DELETE("/:id", h.deleteAuthor, authMiddleware.RequireStaff)

	editorials := e.Group("/editorials")
	editorials.Use(authMiddleware.Authenticate)
	editorials.GET("", h.listPublishers)
	editorials.POST("", h.createPublisher, authMiddleware.RequireStaff)
	editorials.DELETE("/:id", h.deletePublisher, authMiddleware.RequireStaff)

	paisos := e.Group("/paisos")
	paisos.Use(authMiddleware.Authenticate)
	paisos.GET("", h.listCountries)
	paisos.POST("", h.createCountry, authMiddleware.RequireStaff)

	llengues := e.Group("/llengues")
	llengues.Use(authMiddleware.Authenticate)
	llengues.GET("", h.listLanguages)
	llengues.POST("", h.createLanguage, authMiddleware.RequireStaff)

	return refdataService
}
