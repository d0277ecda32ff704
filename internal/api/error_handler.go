package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

// detailResponse is the canonical error envelope: {"detail": "<message>"}.
// Field-level validation failures render the fields object directly
// instead, e.g. {"code": ["El código es obligatorio."]}.
type detailResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders validation failures as a per-field error object with 400.
//   - Maps known domain errors to their HTTP status and Spanish detail.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, ve.Fields)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, detailResponse{Detail: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the router, middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic statuses and details.
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, "Usuario y contraseña son obligatorios."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Credenciales inválidas."
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "Usuario inactivo. Contacta al administrador."
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, "Token inválido o expirado."
	case errors.Is(err, domain.ErrCreateForbidden):
		return http.StatusForbidden, "Solo vendedores o administradores pueden crear productos."
	case errors.Is(err, domain.ErrUpdateForbidden):
		return http.StatusForbidden, "No puedes actualizar productos de otros usuarios."
	case errors.Is(err, domain.ErrDeleteForbidden):
		return http.StatusForbidden, "No puedes eliminar productos de otros usuarios."
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "Producto no encontrado."
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Usuario no encontrado."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Error interno del servidor."
}
