package models

import "time"

// Course represents a course in the catalog.
type Course struct {
	ID           int64     `json:"id" db:"id"`
	Code         string    `json:"code" db:"code"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"` // Nullable
	InstructorID int64     `json:"instructorId" db:"instructor_id"`
	ScheduleDay  string    `json:"scheduleDay" db:"schedule_day"`
	ScheduleTime string    `json:"scheduleTime" db:"schedule_time"`
	Room         string    `json:"room" db:"room"`
	Capacity     int       `json:"capacity" db:"capacity"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Derived from the enrollments relation, populated when needed
	EnrolledCount int `json:"enrolledCount" db:"-"`

	// Relations (populated when needed)
	Instructor *User `json:"instructor,omitempty"`
}

// AvailableSeats returns the remaining capacity, never negative.
func (c *Course) AvailableSeats() int {
	seats := c.Capacity - c.EnrolledCount
	if seats < 0 {
		return 0
	}
	return seats
}
