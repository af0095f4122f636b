package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/infrastructure/ratelimit"
	"gmrportal/pkg/errors"
)

type stubVerifier map[string]string

func (s stubVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	if uid, ok := s[token]; ok {
		return uid, nil
	}
	return "", fmt.Errorf("bad token")
}

type stubProfiles map[string]*entity.Profile

func (s stubProfiles) Create(context.Context, *entity.Profile) error { return nil }

func (s stubProfiles) GetByUserID(_ context.Context, id string) (*entity.Profile, error) {
	if p, ok := s[id]; ok {
		return p, nil
	}
	return nil, errors.NotFound("Profile", nil)
}

func (s stubProfiles) GetByUserIDs(context.Context, []string) (map[string]*entity.Profile, error) {
	return nil, nil
}

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func run(t *testing.T, req *http.Request, h echo.HandlerFunc) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	var env envelope
	if rec.Code != http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func echoUID(c echo.Context) error {
	return c.String(http.StatusOK, UID(c))
}

func TestAuthenticate(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{"good": "user-1"})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec, _ := run(t, req, m.Authenticate(echoUID))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("query token refused outside the socket", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/requests?token=good", nil)
		rec, env := run(t, req, m.Authenticate(echoUID))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authorization header is required", env.Error.Message)
	})

	t.Run("socket query token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ws?token=good", nil)
		rec, _ := run(t, req, m.AuthenticateSocket(echoUID))
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("socket header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec, _ := run(t, req, m.AuthenticateSocket(echoUID))
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("socket without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		rec, _ := run(t, req, m.AuthenticateSocket(echoUID))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec, env := run(t, req, m.Authenticate(echoUID))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authorization header is required", env.Error.Message)
		assert.Equal(t, "/auth", env.Error.Details["redirect_to"])
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic good")
		rec, env := run(t, req, m.Authenticate(echoUID))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid authorization format", env.Error.Message)
	})

	t.Run("rejected token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec, env := run(t, req, m.Authenticate(echoUID))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid or expired token", env.Error.Message)
	})
}

func TestOptionalAuth(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{"good": "user-1"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec, _ := run(t, req, m.OptionalAuth(echoUID))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec, _ = run(t, req, m.OptionalAuth(echoUID))
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestStaffOnly(t *testing.T) {
	roles := NewRoleMiddleware(stubProfiles{
		"client-1": {UserID: "client-1", Role: entity.RoleClient},
		"ca-1":     {UserID: "ca-1", Role: entity.RoleCA},
	})
	withUID := func(uid string, next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid != "" {
				c.Set(uidKey, uid)
			}
			return next(c)
		}
	}
	showRole := func(c echo.Context) error {
		return c.String(http.StatusOK, string(Profile(c).Role))
	}

	rec, _ := run(t, httptest.NewRequest(http.MethodGet, "/", nil), withUID("ca-1", roles.StaffOnly(showRole)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(entity.RoleCA), rec.Body.String())

	rec, env := run(t, httptest.NewRequest(http.MethodGet, "/", nil), withUID("client-1", roles.StaffOnly(showRole)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied. Admin or CA role required.", env.Error.Message)

	rec, _ = run(t, httptest.NewRequest(http.MethodGet, "/", nil), withUID("ghost", roles.StaffOnly(showRole)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = run(t, httptest.NewRequest(http.MethodGet, "/", nil), withUID("", roles.StaffOnly(showRole)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = run(t, httptest.NewRequest(http.MethodGet, "/", nil), withUID("ca-1", roles.AdminOnly(showRole)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(map[string]ratelimit.Policy{
		ratelimit.ActionContact: {Burst: 2, Per: time.Hour},
	})
	h := RateLimit(limiter, ratelimit.ActionContact)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	newReq := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/v1/contact", nil)
		req.RemoteAddr = ip + ":1234"
		return req
	}

	for i := 0; i < 2; i++ {
		rec, _ := run(t, newReq("10.0.0.1"), h)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := run(t, newReq("10.0.0.1"), h)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, errors.CodeTooManyRequests, env.Error.Code)
	assert.Contains(t, env.Error.Details, "retry_after")

	rec, _ = run(t, newReq("10.0.0.2"), h)
	assert.Equal(t, http.StatusOK, rec.Code, "buckets are per client")
}
