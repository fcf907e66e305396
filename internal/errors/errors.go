package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/projcal/internal/logger"
)

var (
	// ErrValidation marks input rejected before any write happens.
	ErrValidation = stderrors.New("validation failed")
	// ErrNotFound marks a missing project, task or holiday.
	ErrNotFound = stderrors.New("not found")
	// ErrConflict marks a write rejected by a uniqueness constraint.
	ErrConflict = stderrors.New("conflict")
)

// Validationf returns an error wrapping ErrValidation
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf returns an error wrapping ErrNotFound
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return stderrors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is a uniqueness conflict
func IsConflict(err error) bool {
	return stderrors.Is(err, ErrConflict)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
