package reservations

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
	reservationService *Service
}

type CreateReservationPayload struct {
	Exemplar int `json:"exemplar" validate:"required,min=1"`
}

// list returns the authenticated user's holds. Staff see everyone's.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	opts := ListReservationsOptions{}
	user, ok := c.Get(auth.ContextKeyUser).(*models.User)
	if !ok {
		return errcodes.Unauthorized("authentication required")
	}
	if !user.IsStaff && !user.IsSuperuser {
		opts.UserID = &user.ID
	}

	reservations, err := h.reservationService.List(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, reservations))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := c.Get(auth.ContextKeyUser).(*models.User)
	if !ok {
		return errcodes.Unauthorized("authentication required")
	}

	params := CreateReservationPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	reservation, err := h.reservationService.Create(ctx, CreateReservationOptions{
		UserID: user.ID,
		CopyID: params.Exemplar,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, reservation))
}

// remove cancels a hold. Users may only cancel their own; staff may cancel
// any.
func (h *handler) remove(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Reserva")
	}

	user, ok := c.Get(auth.ContextKeyUser).(*models.User)
	if !ok {
		return errcodes.Unauthorized("authentication required")
	}

	reservation, err := h.reservationService.Retrieve(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if reservation.UserID != user.ID && !user.IsStaff && !user.IsSuperuser {
		return errcodes.Forbidden("cancel this reservation")
	}

	if err := h.reservationService.Delete(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
