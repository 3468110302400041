package services

import (
	"context"
	"time"

	"github.com/campushub/studenthub/internal/app/models"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them; tests supply in-memory fakes.

// UserStore is the user record store.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	StudentNumberExists(ctx context.Context, studentNumber string) (bool, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) error
	SetActive(ctx context.Context, userID int64, active bool) error
	UpdateRole(ctx context.Context, userID int64, role models.RoleType) error
	Delete(ctx context.Context, userID int64) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	List(ctx context.Context, role, search string, offset uint64, limit int) ([]*models.User, int64, error)
	CountByRole(ctx context.Context) (map[models.RoleType]int64, error)
}

// CourseStore is the course record store.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, course *models.Course) error
	SetActive(ctx context.Context, id int64, active bool) error
	ListActive(ctx context.Context, search string, instructorID int64, offset uint64, limit int) ([]*models.Course, int64, error)
	Counts(ctx context.Context) (total, active, capacity int64, err error)
}

// EnrollmentStore is the enrollment relation store. Enroll and Unenroll are
// atomic: either the membership changes on both sides or not at all.
type EnrollmentStore interface {
	Enroll(ctx context.Context, courseID, userID int64) error
	Unenroll(ctx context.Context, courseID, userID int64) error
	IsEnrolled(ctx context.Context, courseID, userID int64) (bool, error)
	Roster(ctx context.Context, courseID int64) ([]models.RosterEntry, error)
	CoursesForUser(ctx context.Context, userID int64) ([]*models.Course, error)
	CountForCourse(ctx context.Context, courseID int64) (int, error)
	CountsForCourses(ctx context.Context, courseIDs []int64) (map[int64]int, error)
	Count(ctx context.Context) (int64, error)
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}
