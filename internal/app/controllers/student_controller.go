package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campushub/studenthub/internal/app/models/dto"
	"github.com/campushub/studenthub/internal/app/services"
	"github.com/campushub/studenthub/internal/middleware"
)

// StudentController handles the student dashboard and profile endpoints
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetDashboard returns the student's dashboard
// @Summary Student dashboard
// @Description Returns the authenticated student's profile together with their enrolled courses.
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /students/dashboard [get]
func (c *StudentController) GetDashboard(ctx *gin.Context) {
	userID, exists := middleware.CurrentUserID(ctx)
	if !exists {
		unauthenticated(ctx)
		return
	}

	resp, err := c.studentService.GetDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Dashboard retrieved"))
}

// GetProfile returns the caller's profile
// @Summary Get profile
// @Description Returns the authenticated user's profile.
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile"
// @Security BearerAuth
// @Router /students/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	userID, exists := middleware.CurrentUserID(ctx)
	if !exists {
		unauthenticated(ctx)
		return
	}

	resp, err := c.studentService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Profile retrieved"))
}

// UpdateProfile updates the caller's profile
// @Summary Update profile
// @Description Updates the authenticated user's name, department and semester. Email, role and password cannot be changed here.
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /students/profile [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	userID, exists := middleware.CurrentUserID(ctx)
	if !exists {
		unauthenticated(ctx)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.studentService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Profile updated"))
}
