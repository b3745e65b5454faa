package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/repos"
	"github.com/wayfarelabs/wayfare-backend/internal/repos/testutil"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
)

func newTokenOnlyAuthService(t *testing.T, ttl time.Duration) AuthService {
	return NewAuthService(testutil.Logger(t), nil, "test-secret", ttl)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTokenOnlyAuthService(t, time.Hour)
	inner := svc.(*authService)

	user := &types.User{Email: "round@example.com"}
	user.ID = uuid.New()
	token, err := inner.signToken(user)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("user id = %s, want %s", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Fatalf("email = %q", claims.Email)
	}
}

func TestAuthService_ExpiredToken(t *testing.T) {
	svc := newTokenOnlyAuthService(t, -time.Minute)
	inner := svc.(*authService)

	user := &types.User{Email: "expired@example.com"}
	user.ID = uuid.New()
	token, err := inner.signToken(user)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}

	_, err = svc.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_GarbageToken(t *testing.T) {
	svc := newTokenOnlyAuthService(t, time.Hour)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", token, err)
		}
	}
}

func TestAuthService_WrongSecretRejected(t *testing.T) {
	signer := newTokenOnlyAuthService(t, time.Hour).(*authService)
	user := &types.User{Email: "wrong@example.com"}
	user.ID = uuid.New()
	token, err := signer.signToken(user)
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}

	verifier := NewAuthService(testutil.Logger(t), nil, "other-secret", time.Hour)
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestValidateRegister(t *testing.T) {
	cases := []struct {
		name      string
		in        RegisterInput
		wantField string
	}{
		{"bad email", RegisterInput{Email: "nope", Password: "longenough", FirstName: "A", LastName: "B"}, "email"},
		{"short password", RegisterInput{Email: "a@b.com", Password: "short", FirstName: "A", LastName: "B"}, "password"},
		{"missing first name", RegisterInput{Email: "a@b.com", Password: "longenough", LastName: "B"}, "firstName"},
		{"missing last name", RegisterInput{Email: "a@b.com", Password: "longenough", FirstName: "A"}, "lastName"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validateRegister(&tc.in)
			found := false
			for _, f := range fields {
				if f.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a %q field error, got %v", tc.wantField, fields)
			}
		})
	}

	valid := RegisterInput{Email: "a@b.com", Password: "longenough", FirstName: "A", LastName: "B"}
	if fields := validateRegister(&valid); len(fields) != 0 {
		t.Fatalf("valid input rejected: %v", fields)
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	svc := NewAuthService(log, userRepo, "test-secret", time.Hour)

	result, err := svc.Register(context.Background(), &RegisterInput{
		Email:     "Trip.Planner@Example.com",
		Password:  "supersecret",
		FirstName: "Trip",
		LastName:  "Planner",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.User.Email != "trip.planner@example.com" {
		t.Fatalf("email not lowercased: %q", result.User.Email)
	}
	if result.Token == "" {
		t.Fatal("expected a token on registration")
	}
	if result.User.Password == "supersecret" {
		t.Fatal("password stored in plain text")
	}

	// Duplicate email rejected as validation error.
	_, err = svc.Register(context.Background(), &RegisterInput{
		Email:     "trip.planner@example.com",
		Password:  "supersecret",
		FirstName: "Trip",
		LastName:  "Planner",
	})
	if apierr.From(err).Status != http.StatusBadRequest {
		t.Fatalf("duplicate email: expected 400, got %v", err)
	}

	// Login with the right password.
	login, err := svc.Login(context.Background(), "trip.planner@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := svc.ParseToken(login.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Fatal("login token carries wrong user id")
	}

	// Wrong password and unknown account read identically.
	_, wrongPass := svc.Login(context.Background(), "trip.planner@example.com", "wrongpass")
	_, noUser := svc.Login(context.Background(), "nobody@example.com", "supersecret")
	for _, err := range []error{wrongPass, noUser} {
		ae := apierr.From(err)
		if ae.Status != http.StatusUnauthorized || ae.Error() != "Invalid credentials" {
			t.Fatalf("expected uniform 401 Invalid credentials, got %v", err)
		}
	}
}
