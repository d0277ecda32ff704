package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mercadito/marketplace-api/internal/core/domain"
)

func TestStaffOrAdmin(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		isStaff bool
		allowed bool
	}{
		{"client denied", domain.RoleClient, false, false},
		{"vendor denied", domain.RoleVendor, false, false},
		{"admin role allowed", domain.RoleAdmin, false, true},
		{"staff flag allowed", domain.RoleClient, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(CtxRole, tc.role)
			c.Set(CtxIsStaff, tc.isStaff)

			called := false
			handler := StaffOrAdmin()(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)
			if tc.allowed {
				if err != nil || !called {
					t.Fatalf("expected pass, got err=%v called=%v", err, called)
				}
				return
			}
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusForbidden {
				t.Fatalf("expected 403 HTTPError, got %v", err)
			}
			if he.Message != "No tienes permiso para realizar esta acción." {
				t.Fatalf("unexpected message: %v", he.Message)
			}
			if called {
				t.Fatalf("next called for denied request")
			}
		})
	}
}
