package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email         string     `json:"email" db:"email" example:"user@school.edu"`                              // User's email address
	Password      string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName     string     `json:"firstName" db:"first_name" example:"John"`                                // User's first name
	LastName      string     `json:"lastName" db:"last_name" example:"Doe"`                                   // User's last name
	RoleType      RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`                               // User's role (STUDENT, INSTRUCTOR or ADMIN)
	IsActive      bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	StudentNumber *string    `json:"studentNumber,omitempty" db:"student_number" example:"20240001"`          // Student number (students only, nullable)
	Department    *string    `json:"department,omitempty" db:"department" example:"Computer Engineering"`     // Department (students only, nullable)
	Semester      *int       `json:"semester,omitempty" db:"semester" example:"4"`                            // Current semester (students only, nullable)
	CreatedAt     time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
}

// IsStudent reports whether the user holds the student role.
func (u *User) IsStudent() bool {
	return u.RoleType == RoleStudent
}

// ProfileUpdate carries the fields a user may change through the profile path.
// Identity-bearing fields (email, role, password) are deliberately absent;
// role changes go through the privileged admin operation instead.
type ProfileUpdate struct {
	FirstName  string
	LastName   string
	Department *string
	Semester   *int
}
