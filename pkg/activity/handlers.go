package activity

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	activityService *Service
}

// list returns activity entries newest-first.
// GET /logs.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListLogsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := ListOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		Tipus:  params.Tipus,
	}

	entries, err := h.activityService.List(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, entries))
}

// ListLogsQuery represents the query parameters for listing logs.
type ListLogsQuery struct {
	Limit  int     `query:"limit" default:"100"`
	Offset int     `query:"offset" default:"0"`
	Tipus  *string `query:"tipus" validate:"omitempty,oneof=INFO WARNING ERROR FATAL"`
}
