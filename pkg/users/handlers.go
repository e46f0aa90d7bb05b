package users

import (
	"net/http"
	"strconv"

	"github.com/bibliocat/bibliocat/pkg/activity"
	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	userService     *Service
	activityService *activity.Service
}

// profile returns the public profile for a username. The username travels in
// the request body rather than the path for compatibility with existing
// clients.
func (h *handler) profile(c echo.Context) error {
	ctx := c.Request().Context()

	params := ProfileRequestPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Retrieve(ctx, RetrieveUserOptions{Username: &params.Username})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, buildProfileResponse(user)))
}

// checkProfileChanges reports whether the submitted editable fields differ
// from what is stored, without applying anything.
func (h *handler) checkProfileChanges(c echo.Context) error {
	ctx := c.Request().Context()

	params := ProfileUpdatePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Retrieve(ctx, RetrieveUserOptions{Username: &params.Username})
	if err != nil {
		return errors.WithStack(err)
	}

	// An omitted email counts as a change while a stored email exists,
	// matching how existing clients detect cleared fields.
	emailChanged := user.Email != ""
	if params.Email != nil {
		emailChanged = user.Email != *params.Email
	}

	modified := !equalPtr(user.Imatge, params.Imatge) ||
		emailChanged ||
		!equalPtr(user.Telefon, params.Telefon)

	return errors.WithStack(c.JSON(http.StatusOK, ProfileCheckResponse{Modified: modified}))
}

func (h *handler) updateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	params := ProfileUpdatePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Retrieve(ctx, RetrieveUserOptions{Username: &params.Username})
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Imatge != nil {
		user.Imatge = params.Imatge
		columns = append(columns, "imatge")
	}
	if params.Email != nil {
		user.Email = *params.Email
		columns = append(columns, "email")
	}
	if params.Telefon != nil {
		user.Telefon = params.Telefon
		columns = append(columns, "telefon")
	}

	err = h.userService.Update(ctx, user, UpdateUserOptions{Columns: columns})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]bool{"success": true}))
}

// search finds accounts carrying the "usuari" role by name, email, or phone.
func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchUsersPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userList, err := h.userService.Search(ctx, params.Query)
	if err != nil {
		return errors.WithStack(err)
	}

	response := make([]SearchUserResponse, 0, len(userList))
	for _, user := range userList {
		var centre *string
		if user.Site != nil {
			centre = &user.Site.Nom
		}
		response = append(response, SearchUserResponse{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Telefon:   user.Telefon,
			Centre:    centre,
		})
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Usuari")
	}

	user, err := h.userService.Retrieve(ctx, RetrieveUserOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, user))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListUsersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	userList, total, err := h.userService.List(ctx, ListUsersOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"usuaris": userList,
		"total":   total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateUserPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	exists, err := h.userService.Exists(ctx, params.Username)
	if err != nil {
		return errors.WithStack(err)
	}
	if exists {
		return errcodes.Duplicate("Usuari")
	}

	user, err := h.userService.Create(ctx, CreateUserOptions{
		Username:    params.Username,
		Password:    params.Password,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		Telefon:     params.Telefon,
		SiteID:      params.CentreID,
		GroupID:     params.GrupID,
		IsStaff:     params.IsStaff,
		IsSuperuser: params.IsSuperuser,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, user))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Usuari")
	}

	params := UpdateUserPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Retrieve(ctx, RetrieveUserOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
		columns = append(columns, "first_name")
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
		columns = append(columns, "last_name")
	}
	if params.Email != nil {
		user.Email = *params.Email
		columns = append(columns, "email")
	}
	if params.Telefon != nil {
		user.Telefon = params.Telefon
		columns = append(columns, "telefon")
	}
	if params.CentreID != nil {
		user.SiteID = params.CentreID
		columns = append(columns, "centre_id")
	}
	if params.GrupID != nil {
		user.GroupID = params.GrupID
		columns = append(columns, "grup_id")
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
		columns = append(columns, "is_active")
	}

	err = h.userService.Update(ctx, user, UpdateUserOptions{Columns: columns})
	if err != nil {
		return errors.WithStack(err)
	}

	user, err = h.userService.Retrieve(ctx, RetrieveUserOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, user))
}

func (h *handler) deactivate(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Usuari")
	}

	if err := h.userService.Deactivate(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func buildProfileResponse(user *models.User) ProfileResponse {
	nombre := ""
	if user.FirstName != "" || user.LastName != "" {
		nombre = user.FullName()
	}

	var centre, grup *string
	if user.Site != nil {
		centre = &user.Site.Nom
	}
	if user.Group != nil {
		grup = &user.Group.Nom
	}

	return ProfileResponse{
		Username: user.Username,
		Nombre:   nombre,
		Email:    user.Email,
		Centre:   centre,
		Grup:     grup,
		Imatge:   user.Imatge,
		Grupos:   user.RoleNames(),
		Telefon:  user.Telefon,
	}
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
