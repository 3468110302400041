package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert enrollment: %w", pgError("23505", "enrollments_course_user_key"))

	if !IsDuplicateConstraintError(err, "enrollments_course_user_key") {
		t.Fatal("wrapped unique violation on the named constraint not recognized")
	}
	if IsDuplicateConstraintError(err, "users_email_key") {
		t.Fatal("matched a different constraint name")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(pgError("23505", "users_email_key")) {
		t.Fatal("unique violation not recognized")
	}
	if IsUniqueViolation(pgError("23503", "enrollments_user_id_fkey")) {
		t.Fatal("foreign key violation treated as unique violation")
	}
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Fatal("plain error treated as unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(pgError("23503", "enrollments_user_id_fkey")) {
		t.Fatal("foreign key violation not recognized")
	}
	if IsForeignKeyViolation(pgError("23505", "users_email_key")) {
		t.Fatal("unique violation treated as foreign key violation")
	}
	if IsForeignKeyViolation(nil) {
		t.Fatal("nil error treated as foreign key violation")
	}
}
