package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/campus-social/backend/internal/middleware"
	"github.com/anonto42/campus-social/backend/internal/models"
	"github.com/anonto42/campus-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	auth          *services.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler. secureCookies marks the session
// cookie Secure, which production requires.
func NewAuthHandler(auth *services.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookies: secureCookies}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.POST("/refresh", h.Refresh)
	g.POST("/firebase-login", h.FirebaseLogin)
	g.GET("/me", h.Me)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id, err := h.auth.SignUp(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, echo.Map{"message": "account created", "userId": id})
}

// Login checks credentials, sets the access token cookie and returns both tokens
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.auth.LogIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.signedIn(c, res)
}

// Logout clears the session cookie. It always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookie("", time.Unix(0, 0), -1))
	return ok(c, http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return h.signedIn(c, res)
}

// FirebaseLogin exchanges a Firebase ID token for the service's own tokens
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.auth.FirebaseLogIn(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}
	return h.signedIn(c, res)
}

// Me returns the caller's profile, or success=false without a session
func (h *AuthHandler) Me(c echo.Context) error {
	profile, err := h.auth.GetProfile(c.Request().Context())
	if err != nil {
		return err
	}
	if profile == nil {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "not authenticated"})
	}
	return ok(c, http.StatusOK, echo.Map{"user": profile})
}

func (h *AuthHandler) signedIn(c echo.Context, res *services.LoginResult) error {
	maxAge := int(time.Until(res.Tokens.AccessExpiresAt).Seconds())
	c.SetCookie(h.cookie(res.Tokens.AccessToken, res.Tokens.AccessExpiresAt, maxAge))
	return ok(c, http.StatusOK, echo.Map{
		"accessToken":  res.Tokens.AccessToken,
		"refreshToken": res.Tokens.RefreshToken,
		"user":         res.User,
	})
}

func (h *AuthHandler) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
