package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/worktime"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Caller contract violations
	case errors.Is(err, worktime.ErrInvalidTimeFormat):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Business-rule conflicts, surfaced to the user and never retried
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCompletedToday):
		Conflict(w, "You have already completed attendance for today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out")
	case errors.Is(err, attendance.ErrOpenRecordExists):
		Conflict(w, "An open attendance record already exists")
	case errors.Is(err, attendance.ErrRecordImmutable):
		Conflict(w, "This record is managed by an external override")

	// Stale ids (double submit)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Transient store failure, retryable with backoff
	case errors.Is(err, attendance.ErrStoreUnavailable):
		ServiceUnavailable(w, "Attendance store is temporarily unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
