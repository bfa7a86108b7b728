package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// UnauthorizedRoute is the client-side route shown when an authenticated user
// lacks a required role or permission.
const UnauthorizedRoute = "/unauthorized"

// GuardConfig declares the access constraints of a route. Roles and
// Permissions are independently optional; when both are set, both checks must
// pass. Roles always use any-of semantics; Permissions use any-of unless
// RequireAll is set.
type GuardConfig struct {
	Roles       []string
	Permissions []string
	RequireAll  bool
}

type forbiddenResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Errors   any    `json:"errors"`
	Status   int    `json:"status"`
	Redirect string `json:"redirect"`
}

// Guard enforces role and permission constraints on top of the Session
// middleware. Checks run in fixed order: roles first, then permissions.
func Guard(cfg GuardConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := c.Get("session").(domain.Session)
			if !ok || !sess.Authenticated {
				return unauthorized(c, "missing session")
			}

			if len(cfg.Roles) > 0 && !sess.HasRole(cfg.Roles...) {
				return forbidden(c)
			}

			if len(cfg.Permissions) > 0 {
				allowed := sess.HasPermission(cfg.Permissions...)
				if cfg.RequireAll {
					allowed = sess.HasAllPermissions(cfg.Permissions...)
				}
				if !allowed {
					return forbidden(c)
				}
			}

			return next(c)
		}
	}
}

// RequireRoles is shorthand for a roles-only guard.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return Guard(GuardConfig{Roles: roles})
}

// RequirePermissions is shorthand for an any-of permissions guard.
func RequirePermissions(perms ...string) echo.MiddlewareFunc {
	return Guard(GuardConfig{Permissions: perms})
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, forbiddenResponse{
		Success:  false,
		Message:  "access forbidden",
		Status:   http.StatusForbidden,
		Redirect: UnauthorizedRoute,
	})
}
