package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/campushub/studenthub/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studenthub.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Email:    "user@studenthub.app",
		RoleType: models.RoleStudent,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("empty token in pair")
	}
	if expiresIn != 3600 || refreshExpiresIn != 86400 {
		t.Fatalf("unexpected expiries: %d, %d", expiresIn, refreshExpiresIn)
	}

	claims, err := svc.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "user@studenthub.app" || claims.RoleType != "STUDENT" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "studenthub.test" {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	accessToken, _, _, _, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateToken(accessToken); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(JWTConfig{
		SecretKey:       "another-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studenthub.test",
	})

	accessToken, _, _, _, err := other.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := svc.ValidateToken(accessToken); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("extract = (%q, %v)", token, err)
	}

	for _, header := range []string{"", "abc.def.ghi", "bearer abc", "Token abc"} {
		if _, err := ExtractBearerToken(header); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("header %q: expected ErrInvalidFormat, got %v", header, err)
		}
	}
}
