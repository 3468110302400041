package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/studenthub/internal/app/models"
	"github.com/campushub/studenthub/internal/app/models/dto"
)

// StudentService serves the student-facing dashboard and profile operations.
type StudentService interface {
	GetDashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error)
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type studentService struct {
	users       UserStore
	enrollments EnrollmentStore
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(users UserStore, enrollments EnrollmentStore, logger zerolog.Logger) StudentService {
	return &studentService{
		users:       users,
		enrollments: enrollments,
		logger:      logger.With().Str("service", "student").Logger(),
	}
}

func (s *studentService) GetDashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.enrollments.CoursesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	courseResponses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		courseResponses = append(courseResponses, dto.NewCourseResponse(course))
	}

	return &dto.DashboardResponse{
		User:            dto.NewUserResponse(user),
		EnrolledCourses: courseResponses,
		EnrolledCount:   len(courseResponses),
		GeneratedAt:     time.Now(),
	}, nil
}

func (s *studentService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *studentService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	update := models.ProfileUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Department: req.Department,
		Semester:   req.Semester,
	}
	if err := s.users.UpdateProfile(ctx, userID, update); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
