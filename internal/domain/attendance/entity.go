package attendance

import (
	"time"
)

// Attendance statuses. The first four are derived by the engine from check-in
// and check-out times; the last three are overrides set by external
// authorities (work calendar, leave approval) and always win classification.
const (
	StatusPresent    = "present"
	StatusAbsent     = "absent"
	StatusLate       = "late"
	StatusEarlyLeave = "early-leave"
	StatusOnLeave    = "on-leave"
	StatusWeekend    = "weekend"
	StatusMission    = "mission"
)

// OverrideStatuses are the statuses an external collaborator may seed directly.
var OverrideStatuses = []string{StatusWeekend, StatusOnLeave, StatusMission}

// IsOverrideStatus reports whether status is externally driven rather than
// derived from check-in/out times.
func IsOverrideStatus(status string) bool {
	return status == StatusWeekend || status == StatusOnLeave || status == StatusMission
}

// Record is one attendance entry per employee per calendar date.
// CheckIn and CheckOut are wall-clock "HH:MM" values local to the employee's
// work calendar; Date carries the calendar day with no meaningful time
// component. WorkHours, WorkMinutes and Overtime are derived and recomputed
// whenever CheckOut changes.
type Record struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Department   string
	Date         time.Time
	CheckIn      *string
	CheckOut     *string
	Status       string
	WorkHours    int
	WorkMinutes  int
	Overtime     int
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Open reports whether the record has a check-in but no check-out yet.
func (r *Record) Open() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

// Closed reports whether the record has both a check-in and a check-out.
func (r *Record) Closed() bool {
	return r.CheckIn != nil && r.CheckOut != nil
}
