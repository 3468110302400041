package routes

import (
	"github.com/gin-gonic/gin"

	authz "github.com/campushub/studenthub/internal/app/auth"
	"github.com/campushub/studenthub/internal/app/controllers"
	"github.com/campushub/studenthub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	courses := authenticated.Group("/courses")
	{
		// Catalog reads are open to every authenticated role
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourse)

		courses.POST("", authMiddleware.RequirePermission(authz.OpCourseCreate), courseController.CreateCourse)
		courses.PUT("/:id", authMiddleware.RequirePermission(authz.OpCourseUpdate), courseController.UpdateCourse)
		courses.DELETE("/:id", authMiddleware.RequirePermission(authz.OpCourseDelete), courseController.DeleteCourse)
		courses.GET("/:id/roster", authMiddleware.RequirePermission(authz.OpCourseRoster), courseController.GetRoster)

		courses.POST("/:id/enroll", authMiddleware.RequirePermission(authz.OpEnroll), courseController.Enroll)
		courses.POST("/:id/unenroll", authMiddleware.RequirePermission(authz.OpUnenroll), courseController.Unenroll)
		// Kept for clients that treat enrollment as a deletable resource.
		courses.DELETE("/:id/enroll", authMiddleware.RequirePermission(authz.OpUnenroll), courseController.Unenroll)
	}

	students := authenticated.Group("/students")
	{
		students.GET("/dashboard", authMiddleware.RequirePermission(authz.OpStudentDashboard), studentController.GetDashboard)
		students.GET("/profile", authMiddleware.RequirePermission(authz.OpStudentProfileRead), studentController.GetProfile)
		students.PUT("/profile", authMiddleware.RequirePermission(authz.OpStudentProfileUpdate), studentController.UpdateProfile)
	}

	admin := authenticated.Group("/admin")
	{
		admin.GET("/users", authMiddleware.RequirePermission(authz.OpAdminUserList), adminController.ListUsers)
		admin.GET("/statistics", authMiddleware.RequirePermission(authz.OpAdminStatistics), adminController.GetStatistics)
		admin.PUT("/users/:id/status", authMiddleware.RequirePermission(authz.OpAdminUserStatus), adminController.UpdateUserStatus)
		admin.PUT("/users/:id/role", authMiddleware.RequirePermission(authz.OpAdminUserRole), adminController.UpdateUserRole)
		admin.DELETE("/users/:id", authMiddleware.RequirePermission(authz.OpAdminUserDelete), adminController.DeleteUser)
	}
}
