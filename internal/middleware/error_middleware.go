package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/campushub/studenthub/internal/app/models/dto"
	"github.com/campushub/studenthub/internal/pkg/apperrors"
	"github.com/campushub/studenthub/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP status codes and the
// standard error envelope. Controllers funnel every service error through
// here so the mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	detail := errorDetailFor(err)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		detail.Message = custom.Message
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
	}

	status := statusFor(detail.Code)
	if status >= 500 {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) *dto.ErrorDetail {
	switch {
	// Enrollment
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return dto.NewErrorDetail(dto.ErrorCodeCapacityExceeded, "Course capacity exceeded")
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		return dto.NewErrorDetail(dto.ErrorCodeAlreadyEnrolled, "Student already enrolled in course")
	case errors.Is(err, apperrors.ErrNotEnrolled):
		return dto.NewErrorDetail(dto.ErrorCodeNotEnrolled, "Student not enrolled in course")
	case errors.Is(err, apperrors.ErrInactive):
		return dto.NewErrorDetail(dto.ErrorCodeResourceInactive, "Course is inactive")

	// Resources
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrCourseCodeExists):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Course code already exists")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrStudentNumberTaken):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Student number already exists")
	case errors.Is(err, apperrors.ErrConflict):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Conflict")

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")

	// Authorization
	case errors.Is(err, apperrors.ErrForbidden):
		return dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")

	// Validation
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")

	// Infrastructure
	case errors.Is(err, apperrors.ErrServerFault):
		return dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Storage unavailable")

	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func statusFor(code dto.ErrorCode) int {
	switch code {
	case dto.ErrorCodeValidationFailed:
		return 400
	case dto.ErrorCodeInvalidCredentials, dto.ErrorCodeInvalidToken, dto.ErrorCodeExpiredToken,
		dto.ErrorCodeTokenNotFound, dto.ErrorCodeUnauthorized:
		return 401
	case dto.ErrorCodeForbidden, dto.ErrorCodeAccountDisabled:
		return 403
	case dto.ErrorCodeResourceNotFound:
		return 404
	case dto.ErrorCodeResourceAlreadyExists, dto.ErrorCodeCapacityExceeded,
		dto.ErrorCodeAlreadyEnrolled, dto.ErrorCodeNotEnrolled, dto.ErrorCodeResourceInactive:
		return 409
	case dto.ErrorCodeDatabaseError:
		return 503
	default:
		return 500
	}
}
