package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/campus-social/backend/internal/middleware"
	"github.com/anonto42/campus-social/backend/internal/repositories"
	"github.com/anonto42/campus-social/backend/internal/repositories/repotest"
	"github.com/anonto42/campus-social/backend/internal/router"
	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db := repotest.NewDB(t)
	tokens, err := services.NewTokenIssuer("router-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	svc := services.New(services.Deps{
		Repos:    repositories.New(db),
		Tokens:   tokens,
		Logger:   zap.NewNop(),
		HashCost: bcrypt.MinCost,
	})
	return router.New(db, svc, zap.NewNop(), router.Options{})
}

func do(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AccessTokenCookie {
			return c
		}
	}
	return nil
}

const signupBody = `{"username":"ana","email":"ana@campus.edu","password":"password1",
	"confirmPassword":"password1","firstname":"Ana","lastname":"Cruz","department":"CCS"}`

func TestLoginFlow(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/api/v1/auth/signup", signupBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/v1/auth/signup", signupBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])

	rec = do(e, http.MethodPost, "/api/v1/auth/login", `{"email":"ana@campus.edu","password":"nope-nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec), "a failed login sets no cookie")
	assert.Equal(t, "invalid password", decode(t, rec)["message"])

	rec = do(e, http.MethodPost, "/api/v1/auth/login", `{"email":"ana@campus.edu","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	rec = do(e, http.MethodGet, "/api/v1/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ana", body["user"].(map[string]interface{})["username"])

	rec = do(e, http.MethodGet, "/api/v1/auth/me", "")
	assert.Equal(t, false, decode(t, rec)["success"])

	rec = do(e, http.MethodPost, "/api/v1/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestLoginNormalizesEmail(t *testing.T) {
	e := newServer(t)
	padded := strings.Replace(signupBody, `"ana@campus.edu"`, `" Ana@Campus.edu "`, 1)
	rec := do(e, http.MethodPost, "/api/v1/auth/signup", padded)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/v1/auth/login", `{"email":"  ANA@Campus.edu ","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, sessionCookie(rec))
	assert.Equal(t, "ana@campus.edu", decode(t, rec)["user"].(map[string]interface{})["email"])
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodGet, "/api/v1/notifications", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])

	rec = do(e, http.MethodPost, "/api/v1/posts", `{"content":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/posts", "")
	assert.Equal(t, http.StatusOK, rec.Code, "the feed is public")
}

func TestValidationErrors(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/api/v1/auth/login", `{"email":"not-an-email","password":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields, ok := decode(t, rec)["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	rec = do(e, http.MethodGet, "/api/v1/posts/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/posts/department/ZZZ", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])
}
