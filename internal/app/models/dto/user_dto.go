package dto

import (
	"time"

	"github.com/campushub/studenthub/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID            int64   `json:"id"`
	Email         string  `json:"email"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	RoleType      string  `json:"roleType" example:"STUDENT" enums:"STUDENT,INSTRUCTOR,ADMIN"`
	IsActive      bool    `json:"isActive"`
	StudentNumber *string `json:"studentNumber,omitempty"`
	Department    *string `json:"department,omitempty"`
	Semester      *int    `json:"semester,omitempty"`
}

// NewUserResponse maps a user model to its response form.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		RoleType:      string(user.RoleType),
		IsActive:      user.IsActive,
		StudentNumber: user.StudentNumber,
		Department:    user.Department,
		Semester:      user.Semester,
	}
}

// UpdateProfileRequest represents profile update data. Email, role and
// password cannot be changed through this path.
type UpdateProfileRequest struct {
	FirstName  string  `json:"firstName" binding:"required,min=2,max=100"`
	LastName   string  `json:"lastName" binding:"required,min=2,max=100"`
	Department *string `json:"department,omitempty"`
	Semester   *int    `json:"semester,omitempty" binding:"omitempty,min=1,max=12"`
}

// DashboardResponse aggregates the data shown on a student's dashboard.
type DashboardResponse struct {
	User            UserResponse     `json:"user"`
	EnrolledCourses []CourseResponse `json:"enrolledCourses"`
	EnrolledCount   int              `json:"enrolledCount"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// UserListResponse represents a paginated user listing.
type UserListResponse struct {
	Users          []UserResponse `json:"users"`
	PaginationInfo PaginationInfo `json:"pagination"`
}
