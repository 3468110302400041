package services

import (
	"context"

	"github.com/rs/zerolog"
)

// EnrollmentService coordinates enrolling and unenrolling students. The
// capacity and duplicate checks run inside the store's transaction, so
// concurrent requests for the last seat cannot both succeed.
type EnrollmentService interface {
	Enroll(ctx context.Context, courseID, userID int64) error
	Unenroll(ctx context.Context, courseID, userID int64) error
}

type enrollmentService struct {
	enrollments EnrollmentStore
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(enrollments EnrollmentStore, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		logger:      logger.With().Str("service", "enrollment").Logger(),
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, courseID, userID int64) error {
	if err := s.enrollments.Enroll(ctx, courseID, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", courseID).Int64("userID", userID).Msg("Student enrolled")
	return nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, courseID, userID int64) error {
	if err := s.enrollments.Unenroll(ctx, courseID, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", courseID).Int64("userID", userID).Msg("Student unenrolled")
	return nil
}
