package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware and read by the handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
	CtxIsStaff  = "is_staff"
)

// Auth validates the access token and injects the identity claims into
// the request context. Requests without a valid token are rejected.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}
			if err := setClaims(c, jwtSecret, token); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalAuth injects identity claims when a token is presented but
// lets anonymous requests through. A present-but-invalid token is still
// rejected rather than silently downgraded to anonymous.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			token, err := bearerToken(c)
			if err != nil {
				return err
			}
			if err := setClaims(c, jwtSecret, token); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Token de autenticación requerido.")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Cabecera de autorización inválida.")
	}
	return parts[1], nil
}

func setClaims(c echo.Context, jwtSecret, token string) error {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token inválido o expirado.")
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token inválido o expirado.")
	}

	isStaff, _ := claims["is_staff"].(bool)
	c.Set(CtxUserID, userID)
	c.Set(CtxUsername, claims["username"])
	c.Set(CtxRole, claims["role"])
	c.Set(CtxIsStaff, isStaff)

	return nil
}
