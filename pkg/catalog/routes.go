package catalog

import (
	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the public book and copy listings plus the
// authenticated catalog admin routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, mediaDir string, authMiddleware *auth.Middleware) *Service {
	catalogService := NewService(db, mediaDir)

	h := &handler{
		catalogService: catalogService,
	}

	e.GET("/llibres", h.listBooks)
	e.GET("/llibres/", h.listBooks)
	e.POST("/llibres", h.createBook)
	e.POST("/llibres/", h.createBook)
	e.GET("/llibres/:id", h.retrieveBook)
	e.GET("/llibres/:id/exemplars", h.listBookCopies)
	e.GET("/exemplars", h.listCopies)
	e.GET("/exemplars/", h.listCopies)

	cataleg := e.Group("/cataleg")
	cataleg.Use(authMiddleware.Authenticate)
	cataleg.Use(authMiddleware.RequireStaff)
	cataleg.POST("", h.createItem)
	cataleg.GET("/:id", h.retrieveItem)
	cataleg.PATCH("/:id", h.updateItem)
	cataleg.DELETE("/:id", h.deleteItem)
	cataleg.POST("/:id/imatges", h.uploadImage)
	cataleg.GET("/:id/imatges", h.listImages)
	cataleg.DELETE("/:id/imatges/:imageID", h.deleteImage)

	copies := e.Group("/exemplars")
	copies.Use(authMiddleware.Authenticate)
	copies.Use(authMiddleware.RequireStaff)
	copies.POST("", h.createCopy)
	copies.PATCH("/:id", h.updateCopy)
	copies.DELETE("/:id", h.deleteCopy)

	return catalogService
}
