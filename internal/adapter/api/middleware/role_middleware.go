package middleware

import (
	"github.com/labstack/echo/v4"

	"gmrportal/internal/domain/entity"
	"gmrportal/internal/domain/repository"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/response"
)

type RoleMiddleware struct {
	profileRepo repository.ProfileRepository
}

func NewRoleMiddleware(profileRepo repository.ProfileRepository) *RoleMiddleware {
	return &RoleMiddleware{
		profileRepo: profileRepo,
	}
}

func (m *RoleMiddleware) require(allowed func(entity.Role) bool, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := UID(c)
			if uid == "" {
				return response.Error(c, errors.Unauthorized("Authentication required", nil))
			}

			profile, err := m.profileRepo.GetByUserID(c.Request().Context(), uid)
			if err != nil {
				if errors.Is(err, errors.CodeNotFound) {
					return response.Error(c, errors.Forbidden(message, err))
				}
				return response.Error(c, err)
			}

			if !allowed(profile.Role) {
				return response.Error(c, errors.Forbidden(message, nil))
			}

			c.Set(profileKey, profile)
			return next(c)
		}
	}
}

func (m *RoleMiddleware) StaffOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(entity.Role.IsStaff, "Access denied. Admin or CA role required.")(next)
}

func (m *RoleMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(func(r entity.Role) bool { return r == entity.RoleAdmin }, "Admin privileges required")(next)
}

// Profile returns the profile loaded by StaffOnly or AdminOnly.
func Profile(c echo.Context) *entity.Profile {
	p, _ := c.Get(profileKey).(*entity.Profile)
	return p
}
