package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	authz "github.com/campushub/studenthub/internal/app/auth"
	"github.com/campushub/studenthub/internal/app/models"
	"github.com/campushub/studenthub/internal/app/models/dto"
	"github.com/campushub/studenthub/internal/pkg/apperrors"
	"github.com/campushub/studenthub/internal/pkg/helpers"
	"github.com/campushub/studenthub/internal/pkg/validation"
)

// CourseService manages the course catalog.
type CourseService interface {
	ListCourses(ctx context.Context, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error)
	GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error)
	CreateCourse(ctx context.Context, actorID int64, actorRole models.RoleType, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, courseID, actorID int64, actorRole models.RoleType, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, courseID int64) error
	GetRoster(ctx context.Context, courseID, actorID int64, actorRole models.RoleType) (*dto.RosterResponse, error)
}

type courseService struct {
	courses     CourseStore
	users       UserStore
	enrollments EnrollmentStore
	authz       *authz.AuthorizationService
	logger      zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore, users UserStore, enrollments EnrollmentStore, authzService *authz.AuthorizationService, logger zerolog.Logger) CourseService {
	return &courseService{
		courses:     courses,
		users:       users,
		enrollments: enrollments,
		authz:       authzService,
		logger:      logger.With().Str("service", "course").Logger(),
	}
}

func (s *courseService) ListCourses(ctx context.Context, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	courses, total, err := s.courses.ListActive(ctx, filter.Search, filter.InstructorID, offset, limit)
	if err != nil {
		return nil, err
	}

	if err := s.attachEnrolledCounts(ctx, courses); err != nil {
		return nil, err
	}

	resp := &dto.CourseListResponse{
		Courses:        make([]dto.CourseResponse, 0, len(courses)),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, limit),
	}
	for _, course := range courses {
		resp.Courses = append(resp.Courses, dto.NewCourseResponse(course))
	}
	return resp, nil
}

func (s *courseService) GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.enrollments.CountForCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	course.EnrolledCount = count

	if instructor, err := s.users.GetByID(ctx, course.InstructorID); err == nil {
		course.Instructor = instructor
	}

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

func (s *courseService) CreateCourse(ctx context.Context, actorID int64, actorRole models.RoleType, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !validation.IsValidCourseCode(code) {
		return nil, apperrors.NewValidationError("course code must match the pattern CS101 (2-5 letters, 3 digits)")
	}

	exists, err := s.courses.CodeExists(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("checking course code: %w", err)
	}
	if exists {
		return nil, apperrors.ErrCourseCodeExists
	}

	// Instructors always own what they create; only admins may assign
	// another instructor.
	instructorID := actorID
	if actorRole == models.RoleAdmin {
		if req.InstructorID == 0 {
			return nil, apperrors.NewValidationError("instructorId is required when an admin creates a course")
		}
		instructorID = req.InstructorID
	}

	instructor, err := s.users.GetByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if instructor.RoleType != models.RoleInstructor {
		return nil, apperrors.NewValidationError("assigned user is not an instructor")
	}

	course := &models.Course{
		Code:         code,
		Name:         req.Name,
		Description:  req.Description,
		InstructorID: instructorID,
		ScheduleDay:  req.ScheduleDay,
		ScheduleTime: req.ScheduleTime,
		Room:         req.Room,
		Capacity:     req.Capacity,
		IsActive:     true,
	}

	id, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	course.ID = id
	course.Instructor = instructor

	s.logger.Info().Int64("courseID", id).Str("code", code).Msg("Course created")

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, courseID, actorID int64, actorRole models.RoleType, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	if err := s.authz.ValidateCourseOwnership(ctx, courseID, actorID, actorRole); err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollments.CountForCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.ScheduleDay != nil {
		course.ScheduleDay = *req.ScheduleDay
	}
	if req.ScheduleTime != nil {
		course.ScheduleTime = *req.ScheduleTime
	}
	if req.Room != nil {
		course.Room = *req.Room
	}
	if req.Capacity != nil {
		// Capacity can never drop below the seats already taken.
		if *req.Capacity < enrolled {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("capacity %d is below current enrollment %d", *req.Capacity, enrolled))
		}
		course.Capacity = *req.Capacity
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	course.EnrolledCount = enrolled
	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID int64) error {
	// Soft delete: the course stops accepting enrollments but the roster
	// and history stay intact.
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return err
	}
	if err := s.courses.SetActive(ctx, courseID, false); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", courseID).Msg("Course deactivated")
	return nil
}

func (s *courseService) GetRoster(ctx context.Context, courseID, actorID int64, actorRole models.RoleType) (*dto.RosterResponse, error) {
	if err := s.authz.ValidateCourseOwnership(ctx, courseID, actorID, actorRole); err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	entries, err := s.enrollments.Roster(ctx, courseID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RosterResponse{
		CourseID:      courseID,
		Capacity:      course.Capacity,
		EnrolledCount: len(entries),
		Students:      make([]dto.RosterEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Students = append(resp.Students, dto.RosterEntryResponse{
			UserID:        e.User.ID,
			FirstName:     e.User.FirstName,
			LastName:      e.User.LastName,
			Email:         e.User.Email,
			StudentNumber: e.User.StudentNumber,
			EnrolledAt:    e.EnrolledAt,
		})
	}
	return resp, nil
}

func (s *courseService) attachEnrolledCounts(ctx context.Context, courses []*models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	counts, err := s.enrollments.CountsForCourses(ctx, ids)
	if err != nil {
		return err
	}
	for _, c := range courses {
		c.EnrolledCount = counts[c.ID]
	}
	return nil
}
