package auth

import (
	"context"
	"fmt"

	"github.com/campushub/studenthub/internal/app/models"
	"github.com/campushub/studenthub/internal/pkg/apperrors"
	"github.com/campushub/studenthub/internal/pkg/logger"
)

// CourseGetter is the slice of the course store the authorization checks need.
type CourseGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// AuthorizationService enforces resource-level rules the policy table cannot
// express: ownership of a course and self-targeting of admin operations.
type AuthorizationService struct {
	courses CourseGetter
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(courses CourseGetter) *AuthorizationService {
	return &AuthorizationService{courses: courses}
}

// ValidateCourseOwnership allows admins to modify any course and instructors
// to modify only their own.
func (s *AuthorizationService) ValidateCourseOwnership(ctx context.Context, courseID, actorID int64, actorRole models.RoleType) error {
	if actorRole == models.RoleAdmin {
		return nil
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound, apperrors.ErrNotFound) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error getting course during ownership validation")
		return fmt.Errorf("failed to check course ownership: %w", err)
	}

	if course.InstructorID != actorID {
		return apperrors.NewForbiddenError("only the owning instructor may modify this course")
	}
	return nil
}

// ValidateNotSelf rejects admin operations aimed at the acting admin's own
// account. Without this an admin could lock themselves out by disabling or
// demoting their own user.
func (s *AuthorizationService) ValidateNotSelf(actorID, targetID int64) error {
	if actorID == targetID {
		return apperrors.NewForbiddenError("operation may not target your own account")
	}
	return nil
}
