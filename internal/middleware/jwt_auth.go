package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/campus-social/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// AccessTokenCookie is the cookie carrying the access token
const AccessTokenCookie = "accessToken"

// Authenticator turns an access token into a session
type Authenticator interface {
	Authenticate(accessToken string) (session.Session, bool)
}

// SessionMiddleware resolves the caller from the access token cookie, or from
// an Authorization bearer header when the cookie is missing or does not
// verify, and attaches the session to the request context. Requests with no
// usable token stay anonymous.
func SessionMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, token := range accessTokens(c) {
				s, ok := auth.Authenticate(token)
				if !ok {
					continue
				}
				req := c.Request()
				c.SetRequest(req.WithContext(session.WithSession(req.Context(), s)))
				break
			}
			return next(c)
		}
	}
}

// RequireAuth rejects anonymous requests
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := session.FromContext(c.Request().Context()); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "you must be logged in")
			}
			return next(c)
		}
	}
}

// accessTokens lists the candidate tokens, cookie first
func accessTokens(c echo.Context) []string {
	var tokens []string
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		tokens = append(tokens, cookie.Value)
	}
	// Expecting "Bearer <token>"
	parts := strings.Fields(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		tokens = append(tokens, parts[1])
	}
	return tokens
}
