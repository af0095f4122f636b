package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"gmrportal/internal/infrastructure/ratelimit"
	"gmrportal/pkg/errors"
	"gmrportal/pkg/logger"
	"gmrportal/pkg/response"
)

// RateLimit throttles per user when authenticated and per client IP otherwise.
// It must run after the auth middleware to see the uid.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ip:" + c.RealIP()
			if uid := UID(c); uid != "" {
				key = "uid:" + uid
			}

			allowed, retryAfter := limiter.Allow(key, action)
			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				logger.Warn("RATE LIMIT: %s blocked on %s (retry in %ds)", key, action, seconds)
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded. Please try again shortly.").
					WithDetail("retry_after", seconds))
			}

			return next(c)
		}
	}
}
