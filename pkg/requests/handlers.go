package requests

import (
	"net/http"
	"strconv"

	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	requestService *Service
}

type CreateRequestPayload struct {
	Titol      string `json:"titol" mod:"trim" validate:"required,min=1,max=300"`
	Descripcio string `json:"descripcio" mod:"trim" validate:"max=2000"`
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := c.Get(auth.ContextKeyUser).(*models.User)
	if !ok {
		return errcodes.Unauthorized("authentication required")
	}

	opts := ListRequestsOptions{}
	if !user.IsStaff && !user.IsSuperuser {
		opts.UserID = &user.ID
	}

	requests, err := h.requestService.List(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, requests))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := c.Get(auth.ContextKeyUser).(*models.User)
	if !ok {
		return errcodes.Unauthorized("authentication required")
	}

	params := CreateRequestPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	request, err := h.requestService.Create(ctx, CreateRequestOptions{
		UserID:     user.ID,
		Titol:      params.Titol,
		Descripcio: params.Descripcio,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, request))
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Peticio")
	}

	user, ok := c.Get(auth.ContextKeyUser).(*models.User)
	if !ok {
		return errcodes.Unauthorized("authentication required")
	}

	request, err := h.requestService.Retrieve(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if request.UserID != user.ID && !user.IsStaff && !user.IsSuperuser {
		return errcodes.Forbidden("delete this request")
	}

	if err := h.requestService.Delete(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
