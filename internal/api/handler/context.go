package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercadito/marketplace-api/internal/api/middleware"
	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware.
// An empty user id means the middleware did not run — reject with 401
// before any service call.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Token de autenticación requerido.")
	}

	role, _ := c.Get(middleware.CtxRole).(string)
	isStaff, _ := c.Get(middleware.CtxIsStaff).(bool)
	return domain.Actor{ID: id, Role: role, IsStaff: isStaff}, nil
}

// ctxAuthenticated reports whether the request carries a verified
// identity. Used by read endpoints where anonymous access is allowed
// but changes visibility.
func ctxAuthenticated(c echo.Context) bool {
	id, _ := c.Get(middleware.CtxUserID).(string)
	return id != ""
}
