package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campushub/studenthub/internal/app/models"
	"github.com/campushub/studenthub/internal/app/models/dto"
	"github.com/campushub/studenthub/internal/app/services"
	"github.com/campushub/studenthub/internal/middleware"
)

// CourseController handles course catalog and enrollment operations
type CourseController struct {
	courseService     services.CourseService
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, enrollmentService services.EnrollmentService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// ListCourses lists active courses
// @Summary List courses
// @Description Returns active courses with optional search and instructor filters, paginated.
// @Tags courses
// @Produce json
// @Param search query string false "Match against course code or name"
// @Param instructorId query int false "Filter by instructor"
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses"
// @Security BearerAuth
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var filter dto.CourseFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.courseService.ListCourses(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Courses retrieved"))
}

// GetCourse returns one course
// @Summary Get course details
// @Description Returns a single course with its instructor and seat counts.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.courseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Course retrieved"))
}

// CreateCourse creates a course
// @Summary Create a course
// @Description Creates a new course. Instructors own the courses they create; admins must name an instructor.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Insufficient permissions"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Security BearerAuth
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	actorID, actorRole, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.courseService.CreateCourse(ctx.Request.Context(), actorID, actorRole, &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("code", req.Code).Msg("Course creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Course created"))
}

// UpdateCourse updates a course
// @Summary Update a course
// @Description Updates course fields. Instructors may only update their own courses; capacity can't drop below current enrollment.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.courseService.UpdateCourse(ctx.Request.Context(), courseID, actorID, actorRole, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Course updated"))
}

// DeleteCourse deactivates a course
// @Summary Delete a course
// @Description Soft-deletes a course. The roster is preserved but no new enrollments are accepted.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deactivated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Course deactivated"))
}

// GetRoster lists the students enrolled in a course
// @Summary Get course roster
// @Description Returns the students enrolled in a course. Instructors may only view their own rosters.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.RosterResponse} "Roster"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id}/roster [get]
func (c *CourseController) GetRoster(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	actorID, actorRole, ok := currentActor(ctx)
	if !ok {
		return
	}

	resp, err := c.courseService.GetRoster(ctx.Request.Context(), courseID, actorID, actorRole)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Roster retrieved"))
}

// Enroll enrolls the calling student
// @Summary Enroll in a course
// @Description Enrolls the authenticated student in a course. Fails if the course is full, inactive, or the student is already enrolled.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Enrolled"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course full, inactive or already enrolled"
// @Security BearerAuth
// @Router /courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	userID, exists := middleware.CurrentUserID(ctx)
	if !exists {
		unauthenticated(ctx)
		return
	}

	if err := c.enrollmentService.Enroll(ctx.Request.Context(), courseID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Enrolled in course"))
}

// Unenroll removes the calling student from a course
// @Summary Unenroll from a course
// @Description Removes the authenticated student's enrollment. Fails if the student is not enrolled.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Unenrolled"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Not enrolled"
// @Security BearerAuth
// @Router /courses/{id}/unenroll [post]
func (c *CourseController) Unenroll(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	userID, exists := middleware.CurrentUserID(ctx)
	if !exists {
		unauthenticated(ctx)
		return
	}

	if err := c.enrollmentService.Unenroll(ctx.Request.Context(), courseID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Unenrolled from course"))
}

// pathID parses a numeric path parameter, writing the error response itself.
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func currentActor(ctx *gin.Context) (int64, models.RoleType, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		unauthenticated(ctx)
		return 0, "", false
	}
	role, ok := middleware.CurrentRole(ctx)
	if !ok {
		unauthenticated(ctx)
		return 0, "", false
	}
	return userID, role, true
}

func unauthenticated(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
