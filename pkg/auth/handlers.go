package auth

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// CookieName is the name of the console session cookie.
	CookieName = "bibliocat_session"
)

type handler struct {
	authService *Service
}

// token exchanges HTTP Basic credentials for a fresh opaque capability token.
// GET /token.
func (h *handler) token(c echo.Context) error {
	ctx := c.Request().Context()

	username, password, ok := basicCredentials(c)
	if !ok {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="bibliocat"`)
		return errcodes.Unauthorized("Basic credentials required")
	}

	user, err := h.authService.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}

	token, err := h.authService.IssueAuthToken(ctx, user)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, TokenResponse{Token: token}))
}

// login is the legacy lightweight login. It always responds 200; failed
// credentials yield exists=false rather than a 401.
// POST /login.
func (h *handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	params := LoginPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.Authenticate(ctx, params.Username, params.Password)
	if err != nil {
		return errors.WithStack(c.JSON(http.StatusOK, LoginResponse{
			Exists: false,
			Grupos: []string{},
		}))
	}

	return errors.WithStack(c.JSON(http.StatusOK, LoginResponse{
		Exists: true,
		Grupos: user.RoleNames(),
		Token:  SessionToken(user),
	}))
}

// consoleLogin authenticates for the admin console and sets a session cookie.
// POST /auth/login.
func (h *handler) consoleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	params := LoginPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.Authenticate(ctx, params.Username, params.Password)
	if err != nil {
		return err
	}

	token, err := h.authService.GenerateSessionJWT(user)
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionExpiry / time.Second),
		HttpOnly: true,
		Secure:   c.Request().TLS != nil || c.Request().Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	})

	return errors.WithStack(c.JSON(http.StatusOK, buildMeResponse(user)))
}

// consoleLogout clears the session cookie.
// POST /auth/logout.
func (h *handler) consoleLogout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

// me returns the authenticated user.
// GET /auth/me.
func (h *handler) me(c echo.Context) error {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}
	return errors.WithStack(c.JSON(http.StatusOK, buildMeResponse(user)))
}

func buildMeResponse(user *models.User) MeResponse {
	resp := MeResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.RoleNames(),
		IsStaff:  user.IsStaff || user.IsSuperuser,
	}
	if user.Site != nil {
		resp.Centre = &user.Site.Nom
	}
	if user.Group != nil {
		resp.Grup = &user.Group.Nom
	}
	return resp
}

func basicCredentials(c echo.Context) (string, string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Basic ") {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return "", "", false
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", false
	}
	return username, password, true
}
