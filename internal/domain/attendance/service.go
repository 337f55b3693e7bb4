package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's record for an employee with the current wall-clock time
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes an open record and recomputes derived work duration
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// ApplyOverride pre-seeds a weekend/on-leave/mission record for a date
	ApplyOverride(ctx context.Context, req OverrideRequest) (RecordResponse, error)

	// CorrectRecord is the audited administrative path for fixing clock times
	CorrectRecord(ctx context.Context, req CorrectRecordRequest) (RecordResponse, error)

	// GetRecord retrieves a single record by ID
	GetRecord(ctx context.Context, id string) (RecordResponse, error)

	// EmployeeRecords retrieves one employee's records, newest first by default
	EmployeeRecords(ctx context.Context, employeeID string, filter RecordFilter) (ListRecordsResponse, error)

	// ListRecords retrieves records across employees with filters
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
}
