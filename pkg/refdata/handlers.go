package refdata

import (
	"net/http"
	"strconv"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	refdataService *Service
}

func (h *handler) listCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.refdataService.ListCategories(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, categories))
}

func (h *handler) createCategory(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateCategoryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.refdataService.CreateCategory(ctx, CreateCategoryOptions{
		Nom:      params.Nom,
		ParentID: params.ParentID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, category))
}

func (h *handler) updateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Categoria")
	}

	params := UpdateCategoryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.refdataService.UpdateCategory(ctx, id, UpdateCategoryOptions{
		Nom:         params.Nom,
		ParentID:    params.ParentID,
		ClearParent: params.ClearParent,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, category))
}

func (h *handler) deleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Categoria")
	}

	if err := h.refdataService.DeleteCategory(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) listAuthors(c echo.Context) error {
	ctx := c.Request().Context()

	authors, err := h.refdataService.ListAuthors(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, authors))
}

func (h *handler) createAuthor(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateNamePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author, err := h.refdataService.CreateAuthor(ctx, params.Nom)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, author))
}

func (h *handler) deleteAuthor(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Autor")
	}

	if err := h.refdataService.DeleteAuthor(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) listPublishers(c echo.Context) error {
	ctx := c.Request().Context()

	publishers, err := h.refdataService.ListPublishers(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, publishers))
}

func (h *handler) createPublisher(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateNamePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	publisher, err := h.refdataService.CreatePublisher(ctx, params.Nom)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, publisher))
}

func (h *handler) deletePublisher(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Editorial")
	}

	if err := h.refdataService.DeletePublisher(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) listCountries(c echo.Context) error {
	ctx := c.Request().Context()

	countries, err := h.refdataService.ListCountries(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, countries))
}

func (h *handler) createCountry(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateNamePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	country, err := h.refdataService.CreateCountry(ctx, params.Nom)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, country))
}

func (h *handler) listLanguages(c echo.Context) error {
	ctx := c.Request().Context()

	languages, err := h.refdataService.ListLanguages(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, languages))
}

func (h *handler) createLanguage(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateNamePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	language, err := h.refdataService.CreateLanguage(ctx, params.Nom)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, language))
}
