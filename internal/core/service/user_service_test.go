package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercadito/marketplace-api/internal/core/domain"
	"github.com/mercadito/marketplace-api/internal/core/ports"
)

func newTestUserService(users *stubUserRepo, products *stubProductRepo) *UserService {
	return NewUserService(users, products, zerolog.Nop())
}

func TestUserService_Update_Profile(t *testing.T) {
	users := newStubUserRepo()
	stored := users.add(activeUser(t, "alice", "s3cret99"))
	svc := newTestUserService(users, newStubProductRepo())

	updated, err := svc.Update(context.Background(), stored.ID, ports.UpdateUserInput{
		FirstName: strptr("Alicia"),
		Phone:     strptr("3009876543"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FirstName != "Alicia" || updated.Phone != "3009876543" {
		t.Errorf("fields not applied: %+v", updated)
	}
	if updated.Username != "alice" || updated.Email != stored.Email {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUserService_Update_EmailConflict(t *testing.T) {
	users := newStubUserRepo()
	users.add(activeUser(t, "bob", "s3cret99"))
	stored := users.add(activeUser(t, "carol", "s3cret99"))
	svc := newTestUserService(users, newStubProductRepo())

	_, err := svc.Update(context.Background(), stored.ID, ports.UpdateUserInput{
		Email: strptr("bob@example.com"),
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	got := ve.Fields["email"]
	if len(got) != 1 || got[0] != "Ya existe un usuario con este correo electrónico." {
		t.Fatalf("email errors = %v", got)
	}

	// Re-submitting one's own current email is not a conflict.
	if _, err := svc.Update(context.Background(), stored.ID, ports.UpdateUserInput{
		Email: strptr("carol@example.com"),
	}); err != nil {
		t.Fatalf("same-email update failed: %v", err)
	}
}

func TestUserService_Update_PasswordRehashed(t *testing.T) {
	users := newStubUserRepo()
	stored := users.add(activeUser(t, "dave", "old-pass-99"))
	oldHash := stored.PasswordHash
	svc := newTestUserService(users, newStubProductRepo())

	updated, err := svc.Update(context.Background(), stored.ID, ports.UpdateUserInput{
		Password: strptr("new-pass-99"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PasswordHash == oldHash {
		t.Fatal("password hash unchanged")
	}
	if updated.PasswordHash == "new-pass-99" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-pass-99")); err != nil {
		t.Fatalf("new hash does not match new password: %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), newStubProductRepo())

	_, err := svc.Update(context.Background(), "missing", ports.UpdateUserInput{FirstName: strptr("X")})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_CascadesProducts(t *testing.T) {
	users := newStubUserRepo()
	stored := users.add(activeUser(t, "eve", "s3cret99"))
	other := users.add(activeUser(t, "frank", "s3cret99"))

	products := newStubProductRepo()
	productSvc := NewProductService(products, zerolog.Nop())
	owner := domain.Actor{ID: stored.ID, Role: domain.RoleVendor}
	mustCreate(t, productSvc, owner, ports.CreateProductInput{Code: "C1"})
	mustCreate(t, productSvc, owner, ports.CreateProductInput{Code: "C2"})
	mustCreate(t, productSvc, domain.Actor{ID: other.ID, Role: domain.RoleVendor}, ports.CreateProductInput{Code: "C3"})

	svc := newTestUserService(users, products)
	if err := svc.Delete(context.Background(), stored.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := users.FindByID(context.Background(), stored.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("account still present: %v", err)
	}

	remaining, _ := products.List(context.Background(), ports.ListProductsFilter{})
	if len(remaining) != 1 || remaining[0].OwnerID != other.ID {
		t.Fatalf("cascade left %d products, want only the other owner's", len(remaining))
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), newStubProductRepo())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
