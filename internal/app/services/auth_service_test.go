package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/studenthub/internal/app/models"
	"github.com/campushub/studenthub/internal/app/models/dto"
	"github.com/campushub/studenthub/internal/app/services"
	"github.com/campushub/studenthub/internal/pkg/apperrors"
	"github.com/campushub/studenthub/internal/pkg/auth"
)

func newAuthService(stores *fakeStores) services.AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studenthub.test",
	})
	return services.NewAuthService(stores.users, stores.tokens, jwtService, zerolog.Nop())
}

func studentRegisterRequest() *dto.RegisterRequest {
	sn := "20240001"
	dept := "Computer Engineering"
	sem := 4
	return &dto.RegisterRequest{
		Email:         "s1@studenthub.app",
		Password:      "Secret123!",
		FirstName:     "Elif",
		LastName:      "Demir",
		RoleType:      models.RoleStudent,
		StudentNumber: &sn,
		Department:    &dept,
		Semester:      &sem,
	}
}

func TestRegisterStudent(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	resp, err := svc.Register(context.Background(), studentRegisterRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.Token.AccessToken == "" || resp.Token.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if resp.User.RoleType != string(models.RoleStudent) {
		t.Fatalf("expected STUDENT role, got %s", resp.User.RoleType)
	}

	stored, err := stores.users.GetByEmail(context.Background(), "s1@studenthub.app")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.Password == "Secret123!" {
		t.Fatal("password stored in plaintext")
	}
	if !stored.IsActive {
		t.Fatal("new account should be active")
	}
}

func TestRegisterStudentRequiresStudentNumber(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	req := studentRegisterRequest()
	req.StudentNumber = nil
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	bad := "12AB"
	req.StudentNumber = &bad
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for malformed number, got %v", err)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	req := studentRegisterRequest()
	req.RoleType = models.RoleAdmin
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for admin self-registration, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	if _, err := svc.Register(context.Background(), studentRegisterRequest()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	req := studentRegisterRequest()
	other := "20240002"
	req.StudentNumber = &other
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterDuplicateStudentNumber(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	if _, err := svc.Register(context.Background(), studentRegisterRequest()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	req := studentRegisterRequest()
	req.Email = "s2@studenthub.app"
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, apperrors.ErrStudentNumberTaken) {
		t.Fatalf("expected ErrStudentNumberTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	if _, err := svc.Register(context.Background(), studentRegisterRequest()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "s1@studenthub.app", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token.AccessToken == "" {
		t.Fatal("expected access token")
	}

	stored, _ := stores.users.GetByEmail(context.Background(), "s1@studenthub.app")
	if stored.LastLoginAt == nil {
		t.Fatal("last login not recorded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	if _, err := svc.Register(context.Background(), studentRegisterRequest()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "s1@studenthub.app", Password: "wrong"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	// Unknown accounts and bad passwords are indistinguishable to the caller.
	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@studenthub.app", Password: "whatever"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	resp, err := svc.Register(context.Background(), studentRegisterRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := stores.users.SetActive(context.Background(), resp.User.ID, false); err != nil {
		t.Fatalf("disabling: %v", err)
	}

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "s1@studenthub.app", Password: "Secret123!"})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	resp, err := svc.Register(context.Background(), studentRegisterRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	original := resp.Token.RefreshToken

	rotated, err := svc.RefreshToken(context.Background(), original)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.RefreshToken == original {
		t.Fatal("refresh token was not rotated")
	}

	// The old token is single use.
	if _, err := svc.RefreshToken(context.Background(), original); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked on replay, got %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), "no-such-token"); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	stores := newFakeStores()
	svc := newAuthService(stores)

	resp, err := svc.Register(context.Background(), studentRegisterRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.RefreshToken(context.Background(), resp.Token.RefreshToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked after logout, got %v", err)
	}
}
