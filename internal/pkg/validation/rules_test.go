package validation

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@school.edu", "first.last@studenthub.app", "a@b.co"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{"", "no-at-sign", "user@", "@host.com", "user@host", "user space@host.com"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestIsValidCourseCode(t *testing.T) {
	valid := []string{"CS101", "MATH201", "PHYS999", "ABCDE123"}
	for _, code := range valid {
		if !IsValidCourseCode(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}

	invalid := []string{"", "cs101", "C101", "CS1", "CS1011", "TOOLONG123", "CS 101"}
	for _, code := range invalid {
		if IsValidCourseCode(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}

func TestIsValidStudentNumber(t *testing.T) {
	if !IsValidStudentNumber("20240001") {
		t.Error("expected 8-digit number to be valid")
	}

	invalid := []string{"", "1234567", "123456789", "2024000a", "ABCDEFGH"}
	for _, number := range invalid {
		if IsValidStudentNumber(number) {
			t.Errorf("expected %q to be invalid", number)
		}
	}
}
