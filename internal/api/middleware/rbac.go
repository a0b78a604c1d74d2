package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/authslice/authd/internal/api/metrics"
	"github.com/authslice/authd/internal/core/domain"
	"github.com/authslice/authd/internal/core/service"
)

// RequireRole admits only callers whose claim carries role. It must run after
// Auth. domain.RoleNone admits every authenticated caller.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	label := role.String()
	if role == domain.RoleNone {
		label = "any"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := service.Authorize(ClaimFrom(c), role); err != nil {
				metrics.AuthorizationDecisionsTotal.WithLabelValues(label, "deny").Inc()
				return err
			}
			metrics.AuthorizationDecisionsTotal.WithLabelValues(label, "allow").Inc()
			return next(c)
		}
	}
}
