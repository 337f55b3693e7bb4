package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/check-out errors
	ErrAlreadyCheckedIn      = errors.New("you have already checked in today")
	ErrAlreadyCompletedToday = errors.New("you have already completed attendance for today")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out")
	ErrOpenRecordExists      = errors.New("an open attendance record already exists for this employee")

	// General errors
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrRecordImmutable  = errors.New("override records cannot be mutated by check-in/check-out")
	ErrInvalidStatus    = errors.New("invalid attendance status")
	ErrStoreUnavailable = errors.New("attendance store is unavailable, retry later")
)
