package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	authz "github.com/campushub/studenthub/internal/app/auth"
	"github.com/campushub/studenthub/internal/app/models"
	"github.com/campushub/studenthub/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studenthub.test",
	})
}

func testRouter(jwtService *auth.JWTService, op authz.Operation) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService)
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), m.RequirePermission(op), func(c *gin.Context) {
		userID, _ := CurrentUserID(c)
		role, _ := CurrentRole(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": string(role)})
	})
	return router
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, role models.RoleType) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:       42,
		Email:    "user@studenthub.app",
		RoleType: role,
	})
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return accessToken
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	router := testRouter(testJWTService(), authz.OpEnroll)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	jwtService := testJWTService()
	router := testRouter(jwtService, authz.OpEnroll)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", tokenFor(t, jwtService, models.RoleStudent)) // no Bearer prefix
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestJWTAuthRejectsForgedToken(t *testing.T) {
	other := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studenthub.test",
	})
	router := testRouter(testJWTService(), authz.OpEnroll)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, other, models.RoleStudent))
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestRequirePermissionAllowsPermittedRole(t *testing.T) {
	jwtService := testJWTService()
	router := testRouter(jwtService, authz.OpEnroll)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, models.RoleStudent))
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", recorder.Code, recorder.Body.String())
	}
}

func TestRequirePermissionRejectsOtherRoles(t *testing.T) {
	jwtService := testJWTService()
	router := testRouter(jwtService, authz.OpEnroll)

	for _, role := range []models.RoleType{models.RoleInstructor, models.RoleAdmin} {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, role))
		router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusForbidden {
			t.Fatalf("role %s: status = %d, want 403", role, recorder.Code)
		}
	}
}
