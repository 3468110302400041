package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Course code pattern - department letters plus a number, e.g. CENG101
	CourseCodePattern = `^[A-Z]{2,5}\d{3}$`

	// Student number pattern - 8 digits
	StudentNumberPattern = `^\d{8}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email         *regexp.Regexp
	CourseCode    *regexp.Regexp
	StudentNumber *regexp.Regexp
}{
	Email:         regexp.MustCompile(EmailPattern),
	CourseCode:    regexp.MustCompile(CourseCodePattern),
	StudentNumber: regexp.MustCompile(StudentNumberPattern),
}

// IsValidEmail reports whether the value matches the email pattern.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidCourseCode reports whether the value matches the course code pattern.
func IsValidCourseCode(value string) bool {
	return CompiledPatterns.CourseCode.MatchString(value)
}

// IsValidStudentNumber reports whether the value matches the student number pattern.
func IsValidStudentNumber(value string) bool {
	return CompiledPatterns.StudentNumber.MatchString(value)
}
