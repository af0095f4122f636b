package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"gmrportal/pkg/errors"
	"gmrportal/pkg/response"
)

const (
	uidKey     = "uid"
	profileKey = "profile"
)

// TokenVerifier resolves a Firebase ID token to a uid.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return parts[1], nil
}

// socketToken accepts ?token= as well, since browsers cannot set headers on
// a websocket upgrade.
func socketToken(c echo.Context) (string, error) {
	if c.Request().Header.Get("Authorization") == "" {
		if token := c.QueryParam("token"); token != "" {
			return token, nil
		}
	}
	return bearerToken(c)
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return m.authenticate(bearerToken, next)
}

// AuthenticateSocket is Authenticate for the /ws upgrade only.
func (m *AuthMiddleware) AuthenticateSocket(next echo.HandlerFunc) echo.HandlerFunc {
	return m.authenticate(socketToken, next)
}

func (m *AuthMiddleware) authenticate(extract func(echo.Context) (string, error), next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := extract(c)
		if err != nil {
			return response.Error(c, err)
		}

		uid, err := m.verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set(uidKey, uid)
		return next(c)
	}
}

// OptionalAuth sets the uid when a valid token is present and otherwise
// lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err == nil {
			if uid, err := m.verifier.VerifyToken(c.Request().Context(), token); err == nil {
				c.Set(uidKey, uid)
			}
		}
		return next(c)
	}
}

// UID returns the authenticated user, or "" for anonymous requests.
func UID(c echo.Context) string {
	uid, _ := c.Get(uidKey).(string)
	return uid
}
