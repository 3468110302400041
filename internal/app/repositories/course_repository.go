package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/studenthub/internal/app/models"
	"github.com/campushub/studenthub/internal/pkg/apperrors"
	"github.com/campushub/studenthub/internal/pkg/dberrors"
)

const courseColumns = "id, code, name, description, instructor_id, schedule_day, schedule_time, room, capacity, is_active, created_at, updated_at"

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.Code, &course.Name, &course.Description,
		&course.InstructorID, &course.ScheduleDay, &course.ScheduleTime,
		&course.Room, &course.Capacity, &course.IsActive,
		&course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Create inserts a new course and returns its ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (code, name, description, instructor_id, schedule_day, schedule_time, room, capacity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		course.Code, course.Name, course.Description, course.InstructorID,
		course.ScheduleDay, course.ScheduleTime, course.Room, course.Capacity, course.IsActive).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return 0, apperrors.ErrCourseCodeExists
		}
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	return id, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// CodeExists checks if a course code already exists
func (r *CourseRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course code: %w", err)
	}
	return exists, nil
}

// Update persists mutable course fields. The code is identity-bearing and is
// never updated here.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET name = $1, description = $2, schedule_day = $3, schedule_time = $4, room = $5, capacity = $6, updated_at = $7
		WHERE id = $8`,
		course.Name, course.Description, course.ScheduleDay, course.ScheduleTime,
		course.Room, course.Capacity, time.Now(), course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// SetActive soft-deletes or restores a course. Courses are never physically
// removed so historical enrollment references stay valid.
func (r *CourseRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE courses SET is_active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating course status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// ListActive retrieves active courses with optional filters and pagination
func (r *CourseRepository) ListActive(ctx context.Context, search string, instructorID int64, offset uint64, limit int) ([]*models.Course, int64, error) {
	query := r.sb.Select(courseColumns).From("courses").Where(squirrel.Eq{"is_active": true})
	countQuery := r.sb.Select("COUNT(*)").From("courses").Where(squirrel.Eq{"is_active": true})

	if search != "" {
		like := "%" + search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"code": like},
			squirrel.ILike{"name": like},
		}
		query = query.Where(cond)
		countQuery = countQuery.Where(cond)
	}
	if instructorID > 0 {
		query = query.Where(squirrel.Eq{"instructor_id": instructorID})
		countQuery = countQuery.Where(squirrel.Eq{"instructor_id": instructorID})
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	sql, args, err = query.OrderBy("code ASC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, total, rows.Err()
}

// Counts returns total and active course counts plus the summed capacity of
// active courses, for the statistics view.
func (r *CourseRepository) Counts(ctx context.Context) (total, active, capacity int64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COALESCE(SUM(capacity) FILTER (WHERE is_active), 0)
		FROM courses`).Scan(&total, &active, &capacity)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error counting courses: %w", err)
	}
	return total, active, capacity, nil
}
