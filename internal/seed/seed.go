// Package seed populates the database with demo accounts and courses. It only
// runs when explicitly enabled through configuration; startup never seeds
// silently.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/campushub/studenthub/internal/app/models"
	appRepos "github.com/campushub/studenthub/internal/app/repositories"
	"github.com/campushub/studenthub/internal/pkg/apperrors"
	"github.com/campushub/studenthub/internal/pkg/auth"
)

type demoUser struct {
	email         string
	firstName     string
	lastName      string
	role          appModels.RoleType
	studentNumber string
	department    string
	semester      int
}

type demoCourse struct {
	code            string
	name            string
	instructorEmail string
	scheduleDay     string
	scheduleTime    string
	room            string
	capacity        int
	studentEmails   []string
}

var demoUsers = []demoUser{
	{email: "admin@studenthub.app", firstName: "Ada", lastName: "Summers", role: appModels.RoleAdmin},
	{email: "instructor@studenthub.app", firstName: "Mehmet", lastName: "Kaya", role: appModels.RoleInstructor},
	{email: "student1@studenthub.app", firstName: "Elif", lastName: "Demir", role: appModels.RoleStudent,
		studentNumber: "20240001", department: "Computer Engineering", semester: 4},
	{email: "student2@studenthub.app", firstName: "Can", lastName: "Aydin", role: appModels.RoleStudent,
		studentNumber: "20240002", department: "Mathematics", semester: 2},
}

var demoCourses = []demoCourse{
	{code: "CS101", name: "Introduction to Programming", instructorEmail: "instructor@studenthub.app",
		scheduleDay: "MONDAY", scheduleTime: "10:00-12:00", room: "B204", capacity: 30,
		studentEmails: []string{"student1@studenthub.app", "student2@studenthub.app"}},
	{code: "MATH201", name: "Linear Algebra", instructorEmail: "instructor@studenthub.app",
		scheduleDay: "WEDNESDAY", scheduleTime: "14:00-16:00", room: "A101", capacity: 25,
		studentEmails: []string{"student2@studenthub.app"}},
}

// demoPassword is shared by all seeded accounts.
const demoPassword = "ChangeMe123!"

// CreateDemoData inserts the demo users, courses and enrollments. Existing
// records are left untouched, so repeated startups are safe.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)
	enrollmentRepo := appRepos.NewEnrollmentRepository(dbPool)

	lgr.Info().Msg("Seeding demo data...")

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	userIDs := make(map[string]int64, len(demoUsers))
	var finalErr error

	for _, du := range demoUsers {
		user := &appModels.User{
			Email:     du.email,
			Password:  hash,
			FirstName: du.firstName,
			LastName:  du.lastName,
			RoleType:  du.role,
			IsActive:  true,
		}
		if du.role == appModels.RoleStudent {
			sn, dept, sem := du.studentNumber, du.department, du.semester
			user.StudentNumber = &sn
			user.Department = &dept
			user.Semester = &sem
		}

		id, err := userRepo.Create(ctx, user)
		switch {
		case err == nil:
			userIDs[du.email] = id
		case errors.Is(err, apperrors.ErrEmailAlreadyExists):
			existing, errGet := userRepo.GetByEmail(ctx, du.email)
			if errGet != nil {
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			userIDs[du.email] = existing.ID
		default:
			lgr.Error().Err(err).Str("email", du.email).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, dc := range demoCourses {
		instructorID, ok := userIDs[dc.instructorEmail]
		if !ok {
			continue
		}

		course := &appModels.Course{
			Code:         dc.code,
			Name:         dc.name,
			InstructorID: instructorID,
			ScheduleDay:  dc.scheduleDay,
			ScheduleTime: dc.scheduleTime,
			Room:         dc.room,
			Capacity:     dc.capacity,
			IsActive:     true,
		}

		courseID, err := courseRepo.Create(ctx, course)
		if errors.Is(err, apperrors.ErrCourseCodeExists) {
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Str("code", dc.code).Msg("Error creating demo course")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, email := range dc.studentEmails {
			studentID, ok := userIDs[email]
			if !ok {
				continue
			}
			if err := enrollmentRepo.Enroll(ctx, courseID, studentID); err != nil &&
				!errors.Is(err, apperrors.ErrAlreadyEnrolled) {
				lgr.Error().Err(err).Str("code", dc.code).Str("email", email).Msg("Error enrolling demo student")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Demo data seeded")
	}
	return finalErr
}
