package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err    error
		code   int
		detail string
	}{
		{domain.ErrMissingCredentials, http.StatusBadRequest, "Usuario y contraseña son obligatorios."},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Credenciales inválidas."},
		{domain.ErrUserInactive, http.StatusForbidden, "Usuario inactivo. Contacta al administrador."},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "Token inválido o expirado."},
		{domain.ErrTokenRevoked, http.StatusUnauthorized, "Token inválido o expirado."},
		{domain.ErrCreateForbidden, http.StatusForbidden, "Solo vendedores o administradores pueden crear productos."},
		{domain.ErrUpdateForbidden, http.StatusForbidden, "No puedes actualizar productos de otros usuarios."},
		{domain.ErrDeleteForbidden, http.StatusForbidden, "No puedes eliminar productos de otros usuarios."},
		{domain.ErrProductNotFound, http.StatusNotFound, "Producto no encontrado."},
		{domain.ErrUserNotFound, http.StatusNotFound, "Usuario no encontrado."},
	}

	for _, tc := range cases {
		t.Run(tc.detail, func(t *testing.T) {
			rec, body := render(t, tc.err)
			if rec.Code != tc.code {
				t.Errorf("status = %d, want %d", rec.Code, tc.code)
			}
			if body["detail"] != tc.detail {
				t.Errorf("detail = %q, want %q", body["detail"], tc.detail)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationError(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("code", "El código es obligatorio.")
	ve.Add("email", "Ingresa una dirección de correo electrónico válida.")

	rec, body := render(t, ve)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	// Field errors render directly, without a detail wrapper.
	if _, ok := body["detail"]; ok {
		t.Fatalf("validation response should not carry detail: %v", body)
	}
	codeErrs, ok := body["code"].([]any)
	if !ok || len(codeErrs) != 1 || codeErrs[0] != "El código es obligatorio." {
		t.Fatalf("code errors = %v", body["code"])
	}
	if _, ok := body["email"]; !ok {
		t.Fatalf("email errors missing: %v", body)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := render(t, echo.NewHTTPError(http.StatusUnauthorized, "Token de autenticación requerido."))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body["detail"] != "Token de autenticación requerido." {
		t.Fatalf("detail = %q", body["detail"])
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec, body := render(t, errMongoDown)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	// The internal cause never reaches the client.
	if body["detail"] != "Error interno del servidor." {
		t.Fatalf("detail = %q", body["detail"])
	}
}

var errMongoDown = errTest("connection reset by mongod")

type errTest string

func (e errTest) Error() string { return string(e) }
