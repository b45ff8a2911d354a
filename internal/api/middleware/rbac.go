package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foodshare/foodshare-api/internal/core/domain"
)

// RBAC enforces role-based access control. Exactly one role check gates each
// mutating operation; it runs before the handler touches anything.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	names := make([]string, len(allowedRoles))
	for i, r := range allowedRoles {
		allowed[r] = struct{}{}
		names[i] = string(r)
	}
	requires := "requires role " + strings.Join(names, " or ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(UserContextKey).(*domain.User)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, requires)
			}
			return next(c)
		}
	}
}
