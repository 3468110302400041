package auth

import (
	"github.com/campushub/studenthub/internal/app/models"
)

// Operation names a protected operation on a resource. Every mutating route
// maps to exactly one operation; the policy table below is the single place
// where role requirements live.
type Operation string

// Protected operations.
const (
	OpCourseCreate Operation = "course.create"
	OpCourseUpdate Operation = "course.update"
	OpCourseDelete Operation = "course.delete"
	OpCourseRoster Operation = "course.roster"

	OpEnroll   Operation = "enrollment.enroll"
	OpUnenroll Operation = "enrollment.unenroll"

	OpStudentDashboard     Operation = "student.dashboard"
	OpStudentProfileRead   Operation = "student.profile.read"
	OpStudentProfileUpdate Operation = "student.profile.update"

	OpAdminUserList    Operation = "admin.users.list"
	OpAdminStatistics  Operation = "admin.statistics"
	OpAdminUserStatus  Operation = "admin.users.status"
	OpAdminUserRole    Operation = "admin.users.role"
	OpAdminUserDelete  Operation = "admin.users.delete"
)

// policy maps each operation to the roles permitted to perform it. Ownership
// and self-targeting rules that depend on the concrete resource are enforced
// by the AuthorizationService, after this coarse check passes.
var policy = map[Operation][]models.RoleType{
	OpCourseCreate: {models.RoleAdmin, models.RoleInstructor},
	OpCourseUpdate: {models.RoleAdmin, models.RoleInstructor},
	OpCourseDelete: {models.RoleAdmin},
	OpCourseRoster: {models.RoleAdmin, models.RoleInstructor},

	OpEnroll:   {models.RoleStudent},
	OpUnenroll: {models.RoleStudent},

	OpStudentDashboard:     {models.RoleStudent},
	OpStudentProfileRead:   {models.RoleStudent},
	OpStudentProfileUpdate: {models.RoleStudent},

	OpAdminUserList:   {models.RoleAdmin},
	OpAdminStatistics: {models.RoleAdmin},
	OpAdminUserStatus: {models.RoleAdmin},
	OpAdminUserRole:   {models.RoleAdmin},
	OpAdminUserDelete: {models.RoleAdmin},
}

// Allowed reports whether the role may perform the operation. Unknown
// operations are denied.
func Allowed(op Operation, role models.RoleType) bool {
	roles, ok := policy[op]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedRoles returns the roles permitted for an operation.
func AllowedRoles(op Operation) []models.RoleType {
	return policy[op]
}
