package pipeline

import (
	"errors"
	"strings"
)

// Sentinel errors surfaced by pipeline operations. Callers dispatch with
// errors.Is; the HTTP layer maps them to status codes.
var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrCompanyNotFound   = errors.New("company not found")
	ErrRoundNotFound     = errors.New("round not found")
	ErrAlreadyRegistered = errors.New("already registered for this drive")
	ErrRoundNumberTaken  = errors.New("round number already exists for this company")
	ErrDriveClosed       = errors.New("drive is not accepting registrations")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// EligibilityError is returned by Register when the student fails the
// drive's criteria. Reasons carries every failing rule so the student can
// fix all deficiencies before a second attempt.
type EligibilityError struct {
	Reasons []string
}

func (e *EligibilityError) Error() string {
	return "not eligible for this drive: " + strings.Join(e.Reasons, "; ")
}
