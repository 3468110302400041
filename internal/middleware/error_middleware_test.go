package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/campushub/studenthub/internal/app/models/dto"
	"github.com/campushub/studenthub/internal/pkg/apperrors"
)

func TestHandleAPIErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"capacity", apperrors.ErrCapacityExceeded, 409, dto.ErrorCodeCapacityExceeded},
		{"already enrolled", apperrors.ErrAlreadyEnrolled, 409, dto.ErrorCodeAlreadyEnrolled},
		{"not enrolled", apperrors.ErrNotEnrolled, 409, dto.ErrorCodeNotEnrolled},
		{"inactive course", apperrors.ErrInactive, 409, dto.ErrorCodeResourceInactive},
		{"course missing", apperrors.ErrCourseNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"user missing", apperrors.ErrUserNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"course code taken", apperrors.ErrCourseCodeExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"email taken", apperrors.ErrEmailAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"bad credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{"disabled account", apperrors.ErrAccountDisabled, 403, dto.ErrorCodeAccountDisabled},
		{"expired token", apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken},
		{"revoked token", apperrors.ErrTokenRevoked, 401, dto.ErrorCodeInvalidToken},
		{"forbidden", apperrors.ErrForbidden, 403, dto.ErrorCodeForbidden},
		{"validation", apperrors.ErrValidationFailed, 400, dto.ErrorCodeValidationFailed},
		{"storage down", apperrors.ErrServerFault, 503, dto.ErrorCodeDatabaseError},
		{"unknown", errInternal, 500, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest("GET", "/test", nil)

			HandleAPIError(c, tc.err)

			if recorder.Code != tc.status {
				t.Fatalf("status = %d, want %d", recorder.Code, tc.status)
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if resp.Success {
				t.Fatal("error response marked success")
			}
			if resp.Error == nil || resp.Error.Code != tc.code {
				t.Fatalf("error code = %+v, want %s", resp.Error, tc.code)
			}
			if resp.Timestamp.IsZero() {
				t.Fatal("missing timestamp")
			}
		})
	}
}

func TestHandleAPIErrorKeepsCustomMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/test", nil)

	HandleAPIError(c, apperrors.NewValidationError("capacity 2 is below current enrollment 3"))

	var resp dto.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Error.Message != "capacity 2 is below current enrollment 3" {
		t.Fatalf("custom message lost: %q", resp.Error.Message)
	}
	if recorder.Code != 400 {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

var errInternal = errFake("boom")

type errFake string

func (e errFake) Error() string { return string(e) }
