package auth

import (
	"strings"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/labstack/echo/v4"
)

// Context keys for storing user data on the echo context.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyUser     = "user"
)

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate accepts either a bearer capability token or a console session
// cookie. If neither authenticates, it returns 401.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		// Bearer capability token takes precedence.
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if strings.HasPrefix(header, "Bearer ") {
			user, err := m.authService.RetrieveByToken(ctx, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return errcodes.Unauthorized("Invalid token")
			}
			setUser(c, user)
			return next(c)
		}

		cookie, err := c.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			return errcodes.Unauthorized("Authentication required")
		}

		claims, err := m.authService.ValidateSessionJWT(cookie.Value)
		if err != nil {
			return errcodes.Unauthorized("Invalid or expired session")
		}

		user, err := m.authService.RetrieveByID(ctx, claims.UserID)
		if err != nil {
			return errcodes.Unauthorized("User not found or inactive")
		}

		setUser(c, user)
		return next(c)
	}
}

// RequireRole returns middleware that checks the authenticated user carries
// one of the named roles. Superusers always pass. Must be used after
// Authenticate.
func (m *Middleware) RequireRole(names ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextKeyUser).(*models.User)
			if !ok {
				return errcodes.Unauthorized("Authentication required")
			}

			if user.IsSuperuser {
				return next(c)
			}
			for _, name := range names {
				if user.HasRole(name) {
					return next(c)
				}
			}

			return errcodes.Forbidden("Accessing this resource")
		}
	}
}

// RequireStaff returns middleware that restricts a route to staff accounts.
// Must be used after Authenticate.
func (m *Middleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get(ContextKeyUser).(*models.User)
		if !ok {
			return errcodes.Unauthorized("Authentication required")
		}
		if !user.IsStaff && !user.IsSuperuser {
			return errcodes.Forbidden("Accessing the admin console")
		}
		return next(c)
	}
}

func setUser(c echo.Context, user *models.User) {
	c.Set(ContextKeyUserID, user.ID)
	c.Set(ContextKeyUsername, user.Username)
	c.Set(ContextKeyUser, user)
}
