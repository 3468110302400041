package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/studenthub/internal/app/models"
	"github.com/campushub/studenthub/internal/pkg/apperrors"
	"github.com/campushub/studenthub/internal/pkg/dberrors"
)

// EnrollmentRepository handles the enrollments relation. Course rosters and
// student course lists are both views over this one table.
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Enroll adds a student to a course. The whole check-then-insert runs in one
// transaction with the course row locked, so the capacity check cannot race
// with a concurrent enrollment.
func (r *EnrollmentRepository) Enroll(ctx context.Context, courseID, userID int64) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the course row for the duration of the transaction.
	var capacity int
	var isActive bool
	err = tx.QueryRow(ctx,
		`SELECT capacity, is_active FROM courses WHERE id = $1 FOR UPDATE`,
		courseID,
	).Scan(&capacity, &isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("lock course row: %w", err)
	}

	if !isActive {
		return apperrors.ErrInactive
	}

	var enrolled bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1 AND user_id = $2)`,
		courseID, userID,
	).Scan(&enrolled)
	if err != nil {
		return fmt.Errorf("check duplicate enrollment: %w", err)
	}
	if enrolled {
		return apperrors.ErrAlreadyEnrolled
	}

	var rosterSize int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1`,
		courseID,
	).Scan(&rosterSize)
	if err != nil {
		return fmt.Errorf("count roster: %w", err)
	}
	if rosterSize >= capacity {
		return apperrors.ErrCapacityExceeded
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO enrollments (course_id, user_id) VALUES ($1, $2)`,
		courseID, userID,
	)
	if err != nil {
		// The unique and foreign key constraints backstop the checks above.
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Unenroll removes a student from a course. Removing the single relation row
// detaches both sides at once.
func (r *EnrollmentRepository) Unenroll(ctx context.Context, courseID, userID int64) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, courseID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check course: %w", err)
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	tag, err := r.db.Exec(ctx,
		`DELETE FROM enrollments WHERE course_id = $1 AND user_id = $2`,
		courseID, userID)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}
	return nil
}

// IsEnrolled checks if a student is enrolled in a course
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, courseID, userID int64) (bool, error) {
	query := r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseID, "user_id": userID})

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return true, nil
}

// Roster retrieves the students enrolled in a course
func (r *EnrollmentRepository) Roster(ctx context.Context, courseID int64) ([]models.RosterEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role_type, u.is_active,
		       u.student_number, u.department, u.semester, e.enrolled_at
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		WHERE e.course_id = $1
		ORDER BY e.enrolled_at ASC`,
		courseID)
	if err != nil {
		return nil, fmt.Errorf("error querying roster: %w", err)
	}
	defer rows.Close()

	var entries []models.RosterEntry
	for rows.Next() {
		var entry models.RosterEntry
		err := rows.Scan(
			&entry.User.ID, &entry.User.Email, &entry.User.FirstName, &entry.User.LastName,
			&entry.User.RoleType, &entry.User.IsActive, &entry.User.StudentNumber,
			&entry.User.Department, &entry.User.Semester, &entry.EnrolledAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// CoursesForUser retrieves all courses a student is enrolled in
func (r *EnrollmentRepository) CoursesForUser(ctx context.Context, userID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+prefixedCourseColumns("c")+`
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY c.code ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error querying enrolled courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

// CountForCourse retrieves the roster size of one course
func (r *EnrollmentRepository) CountForCourse(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}

// CountsForCourses retrieves roster sizes for multiple courses at once
func (r *EnrollmentRepository) CountsForCourses(ctx context.Context, courseIDs []int64) (map[int64]int, error) {
	if len(courseIDs) == 0 {
		return make(map[int64]int), nil
	}

	query := r.sb.Select("course_id", "COUNT(*)").
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseIDs}).
		GroupBy("course_id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var courseID int64
		var count int
		if err := rows.Scan(&courseID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[courseID] = count
	}

	return counts, rows.Err()
}

// Count retrieves the total number of enrollments
func (r *EnrollmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}

// prefixedCourseColumns qualifies the course column list with a table alias.
func prefixedCourseColumns(alias string) string {
	return alias + ".id, " + alias + ".code, " + alias + ".name, " + alias + ".description, " +
		alias + ".instructor_id, " + alias + ".schedule_day, " + alias + ".schedule_time, " +
		alias + ".room, " + alias + ".capacity, " + alias + ".is_active, " +
		alias + ".created_at, " + alias + ".updated_at"
}
