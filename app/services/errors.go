package services

import "errors"

// Engine errors. All are raised before the first store mutation of the
// failing operation, so callers never observe partial writes.
var (
	ErrInvalidAmount   = errors.New("payment amount must be positive")
	ErrStudentNotFound = errors.New("student not found")
	ErrClassNotFound   = errors.New("student has no resolvable class")
	ErrNoScheduleFound = errors.New("no fee schedule for the student's level and school year")
)
