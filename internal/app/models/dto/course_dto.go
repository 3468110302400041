package dto

import (
	"time"

	"github.com/campushub/studenthub/internal/app/models"
)

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required,min=2,max=200"`
	Description  *string `json:"description,omitempty"`
	InstructorID int64   `json:"instructorId,omitempty"` // Optional for instructors; they own what they create
	ScheduleDay  string  `json:"scheduleDay" binding:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	ScheduleTime string  `json:"scheduleTime" binding:"required"`
	Room         string  `json:"room" binding:"required"`
	Capacity     int     `json:"capacity" binding:"required,min=1"`
}

// UpdateCourseRequest represents course update data. The course code is
// identity-bearing and cannot be changed after creation.
type UpdateCourseRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Description  *string `json:"description,omitempty"`
	ScheduleDay  *string `json:"scheduleDay,omitempty" binding:"omitempty,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	ScheduleTime *string `json:"scheduleTime,omitempty"`
	Room         *string `json:"room,omitempty"`
	Capacity     *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
}

// CourseFilterRequest carries list filters and pagination for courses.
type CourseFilterRequest struct {
	Search       string `form:"search"`
	InstructorID int64  `form:"instructorId"`
	Page         int    `form:"page,default=1"`
	PageSize     int    `form:"pageSize,default=10"`
}

// CourseResponse represents course information including derived seat counts.
type CourseResponse struct {
	ID             int64              `json:"id"`
	Code           string             `json:"code"`
	Name           string             `json:"name"`
	Description    *string            `json:"description,omitempty"`
	InstructorID   int64              `json:"instructorId"`
	Instructor     *UserBasicResponse `json:"instructor,omitempty"`
	ScheduleDay    string             `json:"scheduleDay"`
	ScheduleTime   string             `json:"scheduleTime"`
	Room           string             `json:"room"`
	Capacity       int                `json:"capacity"`
	EnrolledCount  int                `json:"enrolledCount"`
	AvailableSeats int                `json:"availableSeats"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// UserBasicResponse is the abbreviated user form embedded in other responses.
type UserBasicResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// NewCourseResponse maps a course model to its response form.
func NewCourseResponse(course *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:             course.ID,
		Code:           course.Code,
		Name:           course.Name,
		Description:    course.Description,
		InstructorID:   course.InstructorID,
		ScheduleDay:    course.ScheduleDay,
		ScheduleTime:   course.ScheduleTime,
		Room:           course.Room,
		Capacity:       course.Capacity,
		EnrolledCount:  course.EnrolledCount,
		AvailableSeats: course.AvailableSeats(),
		IsActive:       course.IsActive,
		CreatedAt:      course.CreatedAt,
		UpdatedAt:      course.UpdatedAt,
	}
	if course.Instructor != nil {
		resp.Instructor = &UserBasicResponse{
			ID:        course.Instructor.ID,
			FirstName: course.Instructor.FirstName,
			LastName:  course.Instructor.LastName,
			Email:     course.Instructor.Email,
		}
	}
	return resp
}

// CourseListResponse represents a paginated course listing.
type CourseListResponse struct {
	Courses        []CourseResponse `json:"courses"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}

// RosterEntryResponse represents one student on a course roster.
type RosterEntryResponse struct {
	UserID        int64     `json:"userId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	StudentNumber *string   `json:"studentNumber,omitempty"`
	EnrolledAt    time.Time `json:"enrolledAt"`
}

// RosterResponse represents a course roster.
type RosterResponse struct {
	CourseID      int64                 `json:"courseId"`
	Capacity      int                   `json:"capacity"`
	EnrolledCount int                   `json:"enrolledCount"`
	Students      []RosterEntryResponse `json:"students"`
}
