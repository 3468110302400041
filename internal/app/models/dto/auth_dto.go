package dto

import "github.com/campushub/studenthub/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a user registration request. Admin accounts are
// not self-service; they are created by seeding or by another admin.
type RegisterRequest struct {
	Email         string          `json:"email" binding:"required,email"`
	Password      string          `json:"password" binding:"required,min=8"`
	FirstName     string          `json:"firstName" binding:"required,min=2,max=100"`
	LastName      string          `json:"lastName" binding:"required,min=2,max=100"`
	RoleType      models.RoleType `json:"roleType" binding:"required,oneof=STUDENT INSTRUCTOR"`
	StudentNumber *string         `json:"studentNumber,omitempty"`
	Department    *string         `json:"department,omitempty"`
	Semester      *int            `json:"semester,omitempty" binding:"omitempty,min=1,max=12"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
