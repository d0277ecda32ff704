package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
)

type stubUserService struct {
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func TestUserHandler_Me(t *testing.T) {
	e := newEchoWithValidator()
	stub := &stubUserService{
		getFn: func(_ context.Context, id string) (*domain.User, error) {
			if id != "user-3" {
				t.Fatalf("looked up %q, want the requester's own id", id)
			}
			return &domain.User{ID: id, Username: "alice", Email: "alice@example.com", Role: domain.RoleClient, IsActive: true}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setIdentity(c, "user-3", domain.RoleClient, false)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash leaked: %v", resp)
	}
}

func TestUserHandler_Me_NoIdentity(t *testing.T) {
	e := newEchoWithValidator()
	handler := NewUserHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_UpdateMe_PartialFields(t *testing.T) {
	e := newEchoWithValidator()
	var captured ports.UpdateUserInput
	stub := &stubUserService{
		updateFn: func(_ context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
			if id != "user-3" {
				t.Fatalf("updated %q, want the requester's own id", id)
			}
			captured = in
			return &domain.User{ID: id, Username: "alice"}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(`{"first_name":"Alicia","phone":"3009876543"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setIdentity(c, "user-3", domain.RoleClient, false)

	if err := handler.UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if captured.FirstName == nil || *captured.FirstName != "Alicia" {
		t.Errorf("first_name = %v", captured.FirstName)
	}
	if captured.Phone == nil || *captured.Phone != "3009876543" {
		t.Errorf("phone = %v", captured.Phone)
	}
	if captured.Email != nil || captured.LastName != nil || captured.Password != nil {
		t.Errorf("absent fields should stay nil: %+v", captured)
	}
}

func TestUserHandler_UpdateMe_InvalidEmail(t *testing.T) {
	e := newEchoWithValidator()
	handler := NewUserHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setIdentity(c, "user-3", domain.RoleClient, false)

	err := handler.UpdateMe(c)
	ve, ok := err.(*domain.ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if _, present := ve.Fields["email"]; !present {
		t.Fatalf("expected email field error, got %v", ve.Fields)
	}
}

func TestUserHandler_DeleteMe(t *testing.T) {
	e := newEchoWithValidator()
	deleted := ""
	stub := &stubUserService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setIdentity(c, "user-3", domain.RoleClient, false)

	if err := handler.DeleteMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "user-3" {
		t.Fatalf("deleted %q, want the requester's own id", deleted)
	}
}

func TestUserHandler_AdminGetByID(t *testing.T) {
	e := newEchoWithValidator()
	stub := &stubUserService{
		getFn: func(_ context.Context, id string) (*domain.User, error) {
			if id != "user-9" {
				t.Fatalf("looked up %q, want the path id", id)
			}
			return &domain.User{ID: id, Username: "target"}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/users/user-9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("user-9")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_List(t *testing.T) {
	e := newEchoWithValidator()
	stub := &stubUserService{
		listFn: func(_ context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: "user-1", Username: "a"},
				{ID: "user-2", Username: "b"},
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("got %d users, want 2", len(resp))
	}
}
