package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/bibliocat/bibliocat/pkg/binder"
	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsersTestContext(t *testing.T, payload, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func TestHandlerSearch_RequiresToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	authService := auth.NewService(db, "test-secret")
	RegisterRoutes(e, db, auth.NewMiddleware(authService))

	user, err := NewService(db).Create(ctx, CreateUserOptions{
		Username: "anna@x.com",
		Password: "secret123",
		Email:    "anna@x.com",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/buscar_usuarios/", strings.NewReader(`{"query":"anna"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token, err := authService.IssueAuthToken(ctx, user)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/buscar_usuarios/", strings.NewReader(`{"query":"anna"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rr = httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "anna@x.com")
}

func TestHandlerCheckProfileChanges_OmittedEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	h := &handler{userService: NewService(db)}

	_, err := h.userService.Create(ctx, CreateUserOptions{
		Username: "marc@x.com",
		Password: "secret123",
		Email:    "marc@x.com",
	})
	require.NoError(t, err)

	// A payload without an email while one is stored reads as a change.
	c, rr := newUsersTestContext(t, `{"username":"marc@x.com"}`, "/verificar-cambios/")
	require.NoError(t, h.checkProfileChanges(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"modified":true}`, rr.Body.String())

	c, rr = newUsersTestContext(t, `{"username":"marc@x.com","email":"marc@x.com"}`, "/verificar-cambios/")
	require.NoError(t, h.checkProfileChanges(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"modified":false}`, rr.Body.String())

	c, rr = newUsersTestContext(t, `{"username":"marc@x.com","email":"nou@x.com"}`, "/verificar-cambios/")
	require.NoError(t, h.checkProfileChanges(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"modified":true}`, rr.Body.String())
}
