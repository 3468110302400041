package services

import (
	"context"

	"github.com/rs/zerolog"

	authz "github.com/campushub/studenthub/internal/app/auth"
	"github.com/campushub/studenthub/internal/app/models"
	"github.com/campushub/studenthub/internal/app/models/dto"
	"github.com/campushub/studenthub/internal/pkg/helpers"
)

// AdminService implements the privileged user-management and reporting
// operations.
type AdminService interface {
	ListUsers(ctx context.Context, filter *dto.UserFilterRequest) (*dto.UserListResponse, error)
	GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error)
	UpdateUserStatus(ctx context.Context, targetID, actorID int64, isActive bool) (*dto.UserResponse, error)
	UpdateUserRole(ctx context.Context, targetID, actorID int64, role models.RoleType) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, targetID, actorID int64) error
}

type adminService struct {
	users       UserStore
	courses     CourseStore
	enrollments EnrollmentStore
	tokens      TokenStore
	authz       *authz.AuthorizationService
	logger      zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(users UserStore, courses CourseStore, enrollments EnrollmentStore, tokens TokenStore, authzService *authz.AuthorizationService, logger zerolog.Logger) AdminService {
	return &adminService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		tokens:      tokens,
		authz:       authzService,
		logger:      logger.With().Str("service", "admin").Logger(),
	}
}

func (s *adminService) ListUsers(ctx context.Context, filter *dto.UserFilterRequest) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	users, total, err := s.users.List(ctx, filter.Role, filter.Search, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{
		Users:          make([]dto.UserResponse, 0, len(users)),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, limit),
	}
	for _, user := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(user))
	}
	return resp, nil
}

func (s *adminService) GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	totalCourses, activeCourses, totalCapacity, err := s.courses.Counts(ctx)
	if err != nil {
		return nil, err
	}

	totalEnrollments, err := s.enrollments.Count(ctx)
	if err != nil {
		return nil, err
	}

	var totalUsers int64
	usersByRole := make(map[string]int64, len(byRole))
	for role, count := range byRole {
		totalUsers += count
		usersByRole[string(role)] = count
	}

	var filledPct float64
	if totalCapacity > 0 {
		filledPct = float64(totalEnrollments) / float64(totalCapacity) * 100
	}

	return &dto.StatisticsResponse{
		TotalUsers:       totalUsers,
		UsersByRole:      usersByRole,
		TotalCourses:     totalCourses,
		ActiveCourses:    activeCourses,
		TotalEnrollments: totalEnrollments,
		TotalCapacity:    totalCapacity,
		SeatsFilledPct:   filledPct,
	}, nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, targetID, actorID int64, isActive bool) (*dto.UserResponse, error) {
	// An admin cannot deactivate their own account.
	if !isActive {
		if err := s.authz.ValidateNotSelf(actorID, targetID); err != nil {
			return nil, err
		}
	}

	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	if err := s.users.SetActive(ctx, targetID, isActive); err != nil {
		return nil, err
	}

	if !isActive {
		// A disabled user should not keep valid sessions.
		if err := s.tokens.RevokeAllUserTokens(ctx, targetID); err != nil {
			s.logger.Warn().Err(err).Int64("userID", targetID).Msg("Failed to revoke tokens for disabled user")
		}
	}

	s.logger.Info().Int64("userID", targetID).Bool("isActive", isActive).Msg("User status updated")

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, targetID, actorID int64, role models.RoleType) (*dto.UserResponse, error) {
	// An admin cannot demote themselves.
	if role != models.RoleAdmin {
		if err := s.authz.ValidateNotSelf(actorID, targetID); err != nil {
			return nil, err
		}
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.RoleType == role {
		resp := dto.NewUserResponse(user)
		return &resp, nil
	}

	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	// Existing tokens carry the old role claim; force a re-login.
	if err := s.tokens.RevokeAllUserTokens(ctx, targetID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", targetID).Msg("Failed to revoke tokens after role change")
	}

	s.logger.Info().Int64("userID", targetID).Str("role", string(role)).Msg("User role updated")

	user, err = s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *adminService) DeleteUser(ctx context.Context, targetID, actorID int64) error {
	if err := s.authz.ValidateNotSelf(actorID, targetID); err != nil {
		return err
	}

	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.tokens.RevokeAllUserTokens(ctx, targetID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", targetID).Msg("Failed to revoke tokens before delete")
	}

	// Enrollment rows go with the user via the cascading foreign key.
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", targetID).Msg("User deleted")
	return nil
}
