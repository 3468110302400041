package models

import "time"

// Enrollment is the single relation linking students to courses. A course's
// roster and a student's enrolled-course list are both views over this table,
// so two-sided membership can never diverge.
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
}

// RosterEntry pairs an enrolled student with the enrollment time.
type RosterEntry struct {
	User       User      `json:"user"`
	EnrolledAt time.Time `json:"enrolledAt"`
}
