package services_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/campushub/studenthub/internal/app/models"
	"github.com/campushub/studenthub/internal/pkg/apperrors"
)

// In-memory stores mirroring the error contract of the pgx repositories.

type enrollmentKey struct {
	courseID int64
	userID   int64
}

type fakeStores struct {
	users       *fakeUserStore
	courses     *fakeCourseStore
	enrollments *fakeEnrollmentStore
	tokens      *fakeTokenStore
}

func newFakeStores() *fakeStores {
	users := &fakeUserStore{byID: make(map[int64]*models.User)}
	courses := &fakeCourseStore{byID: make(map[int64]*models.Course)}
	enrollments := &fakeEnrollmentStore{
		rows:    make(map[enrollmentKey]time.Time),
		courses: courses,
		users:   users,
	}
	users.enrollments = enrollments
	return &fakeStores{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		tokens:      &fakeTokenStore{rows: make(map[string]*tokenRow)},
	}
}

type fakeUserStore struct {
	byID        map[int64]*models.User
	nextID      int64
	enrollments *fakeEnrollmentStore
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range s.byID {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if user.StudentNumber != nil && u.StudentNumber != nil && *u.StudentNumber == *user.StudentNumber {
			return 0, apperrors.ErrStudentNumberTaken
		}
	}
	s.nextID++
	clone := *user
	clone.ID = s.nextID
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	s.byID[clone.ID] = &clone
	return clone.ID, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range s.byID {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) StudentNumberExists(_ context.Context, studentNumber string) (bool, error) {
	for _, user := range s.byID {
		if user.StudentNumber != nil && *user.StudentNumber == studentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, userID int64, update models.ProfileUpdate) error {
	user, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.Department = update.Department
	user.Semester = update.Semester
	user.UpdatedAt = time.Now()
	return nil
}

func (s *fakeUserStore) SetActive(_ context.Context, userID int64, active bool) error {
	user, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsActive = active
	return nil
}

func (s *fakeUserStore) UpdateRole(_ context.Context, userID int64, role models.RoleType) error {
	user, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.RoleType = role
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, userID int64) error {
	if _, ok := s.byID[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.byID, userID)
	// Mirror the cascading foreign key on the enrollments table.
	for key := range s.enrollments.rows {
		if key.userID == userID {
			delete(s.enrollments.rows, key)
		}
	}
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	user, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (s *fakeUserStore) List(_ context.Context, role, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	var matched []*models.User
	for _, user := range s.byID {
		if role != "" && string(user.RoleType) != role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(user.Email), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(user.FirstName+" "+user.LastName), strings.ToLower(search)) {
			continue
		}
		clone := *user
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= uint64(len(matched)) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (s *fakeUserStore) CountByRole(_ context.Context) (map[models.RoleType]int64, error) {
	counts := make(map[models.RoleType]int64)
	for _, user := range s.byID {
		counts[user.RoleType]++
	}
	return counts, nil
}

type fakeCourseStore struct {
	byID   map[int64]*models.Course
	nextID int64
}

func (s *fakeCourseStore) Create(_ context.Context, course *models.Course) (int64, error) {
	for _, c := range s.byID {
		if c.Code == course.Code {
			return 0, apperrors.ErrCourseCodeExists
		}
	}
	s.nextID++
	clone := *course
	clone.ID = s.nextID
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	s.byID[clone.ID] = &clone
	return clone.ID, nil
}

func (s *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := s.byID[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	clone := *course
	return &clone, nil
}

func (s *fakeCourseStore) CodeExists(_ context.Context, code string) (bool, error) {
	for _, c := range s.byID {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := s.byID[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	clone := *course
	clone.UpdatedAt = time.Now()
	s.byID[course.ID] = &clone
	return nil
}

func (s *fakeCourseStore) SetActive(_ context.Context, id int64, active bool) error {
	course, ok := s.byID[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	course.IsActive = active
	return nil
}

func (s *fakeCourseStore) ListActive(_ context.Context, search string, instructorID int64, offset uint64, limit int) ([]*models.Course, int64, error) {
	var matched []*models.Course
	for _, course := range s.byID {
		if !course.IsActive {
			continue
		}
		if instructorID != 0 && course.InstructorID != instructorID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(course.Code+" "+course.Name), strings.ToLower(search)) {
			continue
		}
		clone := *course
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= uint64(len(matched)) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (s *fakeCourseStore) Counts(_ context.Context) (total, active, capacity int64, err error) {
	for _, course := range s.byID {
		total++
		if course.IsActive {
			active++
			capacity += int64(course.Capacity)
		}
	}
	return total, active, capacity, nil
}

type fakeEnrollmentStore struct {
	rows    map[enrollmentKey]time.Time
	courses *fakeCourseStore
	users   *fakeUserStore
}

func (s *fakeEnrollmentStore) Enroll(_ context.Context, courseID, userID int64) error {
	course, ok := s.courses.byID[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if !course.IsActive {
		return apperrors.ErrInactive
	}
	key := enrollmentKey{courseID: courseID, userID: userID}
	if _, exists := s.rows[key]; exists {
		return apperrors.ErrAlreadyEnrolled
	}
	count := 0
	for k := range s.rows {
		if k.courseID == courseID {
			count++
		}
	}
	if count >= course.Capacity {
		return apperrors.ErrCapacityExceeded
	}
	s.rows[key] = time.Now()
	return nil
}

func (s *fakeEnrollmentStore) Unenroll(_ context.Context, courseID, userID int64) error {
	if _, ok := s.courses.byID[courseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	key := enrollmentKey{courseID: courseID, userID: userID}
	if _, exists := s.rows[key]; !exists {
		return apperrors.ErrNotEnrolled
	}
	delete(s.rows, key)
	return nil
}

func (s *fakeEnrollmentStore) IsEnrolled(_ context.Context, courseID, userID int64) (bool, error) {
	_, exists := s.rows[enrollmentKey{courseID: courseID, userID: userID}]
	return exists, nil
}

func (s *fakeEnrollmentStore) Roster(_ context.Context, courseID int64) ([]models.RosterEntry, error) {
	var entries []models.RosterEntry
	for key, enrolledAt := range s.rows {
		if key.courseID != courseID {
			continue
		}
		user, ok := s.users.byID[key.userID]
		if !ok {
			continue
		}
		entries = append(entries, models.RosterEntry{User: *user, EnrolledAt: enrolledAt})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].User.ID < entries[j].User.ID })
	return entries, nil
}

func (s *fakeEnrollmentStore) CoursesForUser(_ context.Context, userID int64) ([]*models.Course, error) {
	var courses []*models.Course
	for key := range s.rows {
		if key.userID != userID {
			continue
		}
		if course, ok := s.courses.byID[key.courseID]; ok {
			clone := *course
			courses = append(courses, &clone)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (s *fakeEnrollmentStore) CountForCourse(_ context.Context, courseID int64) (int, error) {
	count := 0
	for key := range s.rows {
		if key.courseID == courseID {
			count++
		}
	}
	return count, nil
}

func (s *fakeEnrollmentStore) CountsForCourses(_ context.Context, courseIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(courseIDs))
	for _, id := range courseIDs {
		for key := range s.rows {
			if key.courseID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (s *fakeEnrollmentStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.rows)), nil
}

type tokenRow struct {
	userID     int64
	expiryDate time.Time
	revoked    bool
}

type fakeTokenStore struct {
	rows map[string]*tokenRow
}

func (s *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	s.rows[token] = &tokenRow{userID: userID, expiryDate: expiryDate}
	return nil
}

func (s *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	row, ok := s.rows[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if row.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if row.expiryDate.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return row.userID, row.expiryDate, nil
}

func (s *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	row, ok := s.rows[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	row.revoked = true
	return nil
}

func (s *fakeTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, row := range s.rows {
		if row.userID == userID {
			row.revoked = true
		}
	}
	return nil
}
