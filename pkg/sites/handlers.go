package sites

import (
	"net/http"
	"strconv"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	siteService *Service
}

func (h *handler) listSites(c echo.Context) error {
	ctx := c.Request().Context()

	siteList, err := h.siteService.ListSites(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, siteList))
}

func (h *handler) retrieveSite(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Centre")
	}

	site, err := h.siteService.RetrieveSite(ctx, RetrieveSiteOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, site))
}

func (h *handler) createSite(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateSitePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	site, err := h.siteService.CreateSite(ctx, params.Nom)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, site))
}

func (h *handler) updateSite(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Centre")
	}

	params := UpdateSitePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	site, err := h.siteService.UpdateSite(ctx, id, params.Nom)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, site))
}

func (h *handler) deleteSite(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Centre")
	}

	if err := h.siteService.DeleteSite(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) listGroups(c echo.Context) error {
	ctx := c.Request().Context()

	groupList, err := h.siteService.ListGroups(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, groupList))
}

func (h *handler) createGroup(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateGroupPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	group, err := h.siteService.CreateGroup(ctx, params.Nom)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, group))
}

func (h *handler) deleteGroup(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Grup")
	}

	if err := h.siteService.DeleteGroup(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
