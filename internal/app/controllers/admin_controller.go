package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campushub/studenthub/internal/app/models/dto"
	"github.com/campushub/studenthub/internal/app/services"
	"github.com/campushub/studenthub/internal/middleware"
)

// AdminController handles privileged user-management and reporting endpoints
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// ListUsers lists users
// @Summary List users
// @Description Returns users with optional role and search filters, paginated.
// @Tags admin
// @Produce json
// @Param role query string false "Filter by role" Enums(STUDENT, INSTRUCTOR, ADMIN)
// @Param search query string false "Match against name, email or student number"
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users"
// @Security BearerAuth
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.adminService.ListUsers(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Users retrieved"))
}

// GetStatistics returns platform statistics
// @Summary Platform statistics
// @Description Returns aggregate user, course and enrollment counts.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StatisticsResponse} "Statistics"
// @Security BearerAuth
// @Router /admin/statistics [get]
func (c *AdminController) GetStatistics(ctx *gin.Context) {
	resp, err := c.adminService.GetStatistics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Statistics retrieved"))
}

// UpdateUserStatus toggles a user's active flag
// @Summary Activate or deactivate a user
// @Description Sets a user's active flag. Deactivating revokes the user's sessions. Admins cannot deactivate themselves.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Status updated"
// @Failure 403 {object} dto.ErrorResponse "Cannot deactivate own account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/status [put]
func (c *AdminController) UpdateUserStatus(ctx *gin.Context) {
	targetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(ctx)
	if !exists {
		unauthenticated(ctx)
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.adminService.UpdateUserStatus(ctx.Request.Context(), targetID, actorID, *req.IsActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "User status updated"))
}

// UpdateUserRole changes a user's role
// @Summary Change a user's role
// @Description Sets a user's role and revokes their sessions so new tokens carry the new role. Admins cannot demote themselves.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Role updated"
// @Failure 403 {object} dto.ErrorResponse "Cannot change own role"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/role [put]
func (c *AdminController) UpdateUserRole(ctx *gin.Context) {
	targetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(ctx)
	if !exists {
		unauthenticated(ctx)
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.adminService.UpdateUserRole(ctx.Request.Context(), targetID, actorID, req.RoleType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "User role updated"))
}

// DeleteUser removes a user
// @Summary Delete a user
// @Description Permanently deletes a user. Their enrollments are removed with them. Admins cannot delete themselves.
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted"
// @Failure 403 {object} dto.ErrorResponse "Cannot delete own account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	targetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	actorID, exists := middleware.CurrentUserID(ctx)
	if !exists {
		unauthenticated(ctx)
		return
	}

	if err := c.adminService.DeleteUser(ctx.Request.Context(), targetID, actorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "User deleted"))
}
