package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// StaffOrAdmin gates the user-administration surface: only staff or
// accounts holding the ADMIN role may pass. Must run after Auth.
func StaffOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isStaff, _ := c.Get(CtxIsStaff).(bool)
			role, _ := c.Get(CtxRole).(string)
			if !isStaff && role != domain.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "No tienes permiso para realizar esta acción.")
			}
			return next(c)
		}
	}
}
