package app_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUsers()
	s := app.NewUserService(users, fakeIssuer{}, bcrypt.MinCost)
	ctx := context.Background()

	tok, u, err := s.Register(ctx, app.Registration{
		Email: "  Ana@Example.com ", Password: "secret1", FirstName: "Ana", LastName: "Lopez",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "ana@example.com" || tok != "token-"+u.ID {
		t.Fatalf("unexpected registration result: %q %+v", tok, u)
	}
	if u.PasswordHash == "secret1" {
		t.Fatalf("password stored in clear")
	}

	tok2, id, err := s.Login(ctx, "ANA@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if id != u.ID || tok2 != "token-"+u.ID {
		t.Fatalf("unexpected login result: %q %q", tok2, id)
	}

	me, err := s.Me(ctx, u.ID)
	if err != nil || me.FirstName != "Ana" {
		t.Fatalf("me: %v %+v", err, me)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := app.NewUserService(newFakeUsers(), fakeIssuer{}, bcrypt.MinCost)
	ctx := context.Background()
	in := app.Registration{Email: "bob@example.com", Password: "secret1", FirstName: "Bob", LastName: "B"}
	if _, _, err := s.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := s.Register(ctx, in); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := app.NewUserService(newFakeUsers(), fakeIssuer{}, bcrypt.MinCost)
	ctx := context.Background()
	if _, _, err := s.Register(ctx, app.Registration{Email: "c@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := s.Login(ctx, "c@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := s.Login(ctx, "nobody@example.com", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}
}
