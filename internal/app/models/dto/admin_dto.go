package dto

import "github.com/campushub/studenthub/internal/app/models"

// UpdateUserStatusRequest toggles a user's active flag.
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UpdateUserRoleRequest changes a user's role. This is the only path through
// which a role can change.
type UpdateUserRoleRequest struct {
	RoleType models.RoleType `json:"roleType" binding:"required,oneof=STUDENT INSTRUCTOR ADMIN"`
}

// UserFilterRequest carries list filters and pagination for the admin user listing.
type UserFilterRequest struct {
	Role     string `form:"role" binding:"omitempty,oneof=STUDENT INSTRUCTOR ADMIN"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=10"`
}

// StatisticsResponse aggregates counts for the admin statistics view.
type StatisticsResponse struct {
	TotalUsers       int64            `json:"totalUsers"`
	UsersByRole      map[string]int64 `json:"usersByRole"`
	TotalCourses     int64            `json:"totalCourses"`
	ActiveCourses    int64            `json:"activeCourses"`
	TotalEnrollments int64            `json:"totalEnrollments"`
	TotalCapacity    int64            `json:"totalCapacity"`
	SeatsFilledPct   float64          `json:"seatsFilledPct"`
}
