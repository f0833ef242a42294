package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/campus-social/backend/internal/session"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenTable map[string]uuid.UUID

func (t tokenTable) Authenticate(token string) (session.Session, bool) {
	id, ok := t[token]
	return session.Session{UserID: id}, ok
}

func serve(t *testing.T, auth Authenticator, req *http.Request, guard bool) (*httptest.ResponseRecorder, *uuid.UUID) {
	t.Helper()
	e := echo.New()
	var seen *uuid.UUID
	handler := func(c echo.Context) error {
		if s, ok := session.FromContext(c.Request().Context()); ok {
			seen = &s.UserID
		}
		return c.NoContent(http.StatusNoContent)
	}
	mws := []echo.MiddlewareFunc{SessionMiddleware(auth)}
	if guard {
		mws = append(mws, RequireAuth())
	}
	e.GET("/", handler, mws...)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestSessionFromCookie(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"})

	rec, seen := serve(t, tokenTable{"good": id}, req, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, id, *seen)
}

func TestSessionFromBearerHeader(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")

	_, seen := serve(t, tokenTable{"good": id}, req, false)
	require.NotNil(t, seen)
	assert.Equal(t, id, *seen)
}

func TestCookieWinsOverHeader(t *testing.T) {
	cookieUser, headerUser := uuid.New(), uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "c"})
	req.Header.Set(echo.HeaderAuthorization, "Bearer h")

	_, seen := serve(t, tokenTable{"c": cookieUser, "h": headerUser}, req, false)
	require.NotNil(t, seen)
	assert.Equal(t, cookieUser, *seen)
}

func TestInvalidTokenIsAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer forged")

	rec, seen := serve(t, tokenTable{}, req, false)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, seen)

	rec, _ = serve(t, tokenTable{}, httptest.NewRequest(http.MethodGet, "/", nil), true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredCookieFallsBackToHeader(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "expired"})
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")

	rec, seen := serve(t, tokenTable{"good": id}, req, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, id, *seen)
}
