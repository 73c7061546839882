package middleware

import (
	"net/http"

	"tradeyard/internal/common"
	"tradeyard/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects callers whose role is not in the allowed set. Admins
// pass every role check.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := common.GetRoleFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}
			if role != models.RoleAdmin && !allowed[role] {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
