package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	catalogService *Service
}

// listBooks serves the public book listing, optionally filtered by a search
// term over title and author name.
func (h *handler) listBooks(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	kind := models.KindLlibre
	items, _, err := h.catalogService.ListItems(ctx, ListItemsOptions{
		Kind:   &kind,
		Search: params.Search,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := make([]ItemSummary, 0, len(items))
	for _, item := range items {
		response = append(response, NewItemSummary(item))
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) retrieveBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Llibre")
	}

	kind := models.KindLlibre
	item, err := h.catalogService.RetrieveItem(ctx, RetrieveItemOptions{ID: &id, Kind: &kind})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, NewItemSummary(item)))
}

// createBook keeps the minimal historical payload: a title and a publisher
// name.
func (h *handler) createBook(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	item, err := h.catalogService.CreateItem(ctx, CreateItemOptions{
		Kind:      models.KindLlibre,
		Titol:     params.Titol,
		Editorial: &params.Editorial,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, CreateBookResponse{
		ID:    item.ID,
		Titol: item.Titol,
	}))
}

// listCopies serves the public copy listings, globally or per book.
func (h *handler) listCopies(c echo.Context) error {
	ctx := c.Request().Context()

	copies, err := h.catalogService.ListCopies(ctx, ListCopiesOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, copySummaries(copies)))
}

func (h *handler) listBookCopies(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Llibre")
	}

	copies, err := h.catalogService.ListCopies(ctx, ListCopiesOptions{BookID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, copySummaries(copies)))
}

func copySummaries(copies []*models.Copy) []CopySummary {
	result := make([]CopySummary, 0, len(copies))
	for _, copyRow := range copies {
		result = append(result, NewCopySummary(copyRow))
	}
	return result
}

func (h *handler) createItem(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateItemPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := CreateItemOptions{
		Kind:          models.ItemKind(params.Tipus),
		Titol:         params.Titol,
		TitolOriginal: params.TitolOriginal,
		Autor:         params.Autor,
		Editorial:     params.Editorial,
		CDU:           params.CDU,
		Signatura:     params.Signatura,
		Resum:         params.Resum,
		Anotacions:    params.Anotacions,
		Mides:         params.Mides,
		Lloc:          params.Lloc,
		CountryID:     params.PaisID,
		LanguageID:    params.LlenguaID,
		TagIDs:        params.TagIDs,
	}

	if params.DataEdicio != nil && *params.DataEdicio != "" {
		parsed, err := time.Parse("2006-01-02", *params.DataEdicio)
		if err != nil {
			return errcodes.ValidationError("data_edicio must be formatted as YYYY-MM-DD.")
		}
		opts.DataEdicio = &parsed
	}

	if params.Llibre != nil {
		opts.Book = &BookFields{
			ISBN:         params.Llibre.ISBN,
			Colleccio:    params.Llibre.Colleccio,
			Numero:       params.Llibre.Numero,
			Volums:       params.Llibre.Volums,
			Pagines:      params.Llibre.Pagines,
			InfoURL:      params.Llibre.InfoURL,
			PreviewURL:   params.Llibre.PreviewURL,
			ThumbnailURL: params.Llibre.ThumbnailURL,
		}
	}
	if params.Revista != nil {
		opts.Magazine = &MagazineFields{
			ISSN:    params.Revista.ISSN,
			Numero:  params.Revista.Numero,
			Volums:  params.Revista.Volums,
			Pagines: params.Revista.Pagines,
		}
	}
	if params.CD != nil {
		opts.AudioDisc = &AudioDiscFields{
			Discografica: params.CD.Discografica,
			Estil:        params.CD.Estil,
			Duracio:      params.CD.Duracio,
		}
	}
	if params.DVD != nil {
		opts.VideoDisc = &VideoDiscFields{
			Productora: params.DVD.Productora,
			Duracio:    params.DVD.Duracio,
		}
	}
	if params.BR != nil {
		opts.BluRayDisc = &BluRayDiscFields{
			Productora: params.BR.Productora,
			Duracio:    params.BR.Duracio,
		}
	}
	if params.Dispositiu != nil {
		opts.Device = &DeviceFields{
			Marca: params.Dispositiu.Marca,
			Model: params.Dispositiu.Model,
		}
	}

	item, err := h.catalogService.CreateItem(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, item))
}

func (h *handler) retrieveItem(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Cataleg")
	}

	item, err := h.catalogService.RetrieveItem(ctx, RetrieveItemOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	response := struct {
		*models.CatalogItem
		Tipus string `json:"tipus"`
	}{item, string(item.Kind())}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) updateItem(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Cataleg")
	}

	params := UpdateItemPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateItemOptions{
		Titol:         params.Titol,
		TitolOriginal: params.TitolOriginal,
		Autor:         params.Autor,
		Editorial:     params.Editorial,
		CDU:           params.CDU,
		Signatura:     params.Signatura,
		Resum:         params.Resum,
		Anotacions:    params.Anotacions,
		Mides:         params.Mides,
		Lloc:          params.Lloc,
		TagIDs:        params.TagIDs,
	}

	if params.DataEdicio != nil && *params.DataEdicio != "" {
		parsed, err := time.Parse("2006-01-02", *params.DataEdicio)
		if err != nil {
			return errcodes.ValidationError("data_edicio must be formatted as YYYY-MM-DD.")
		}
		opts.DataEdicio = &parsed
	}

	item, err := h.catalogService.UpdateItem(ctx, id, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, item))
}

func (h *handler) deleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Cataleg")
	}

	if err := h.catalogService.DeleteItem(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) createCopy(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateCopyPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	copyRow, err := h.catalogService.CreateCopy(ctx, CreateCopyOptions{
		CatalogItemID: params.CatalegID,
		Registre:      params.Registre,
		SiteID:        params.CentreID,
		ExclosPrestec: params.ExclosPrestec,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, NewCopySummary(copyRow)))
}

func (h *handler) updateCopy(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Exemplar")
	}

	params := UpdateCopyPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	copyRow, err := h.catalogService.SetCopyFlags(ctx, id, params.ExclosPrestec, params.Baixa)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, NewCopySummary(copyRow)))
}

func (h *handler) deleteCopy(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Exemplar")
	}

	if err := h.catalogService.DeleteCopy(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) uploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Cataleg")
	}

	params := UploadImagePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	header, ok := params.FormFiles["imatge"]
	if !ok {
		return errcodes.ValidationError("imatge is a required field.")
	}

	image, err := h.catalogService.SaveImage(ctx, id, header)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, image))
}

func (h *handler) listImages(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Cataleg")
	}

	images, err := h.catalogService.ListImages(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, images))
}

func (h *handler) deleteImage(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("imageID"))
	if err != nil {
		return errcodes.NotFound("Imatge")
	}

	if err := h.catalogService.DeleteImage(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
