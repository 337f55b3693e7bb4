package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access for attendance records. The engine
// treats the store as an append-only event log with controlled mutation:
// records enter through Append and change only through Update.
//
// Implementations must observe the engine's own prior Append/Update calls on
// any subsequent read within the same logical operation, and must enforce the
// single-open-record invariant at the storage boundary: Append rejects a
// record with a check-in while another open record exists for the same
// employee (ErrOpenRecordExists). Transient infrastructure failures are
// surfaced as ErrStoreUnavailable so callers can retry with backoff.
type RecordRepository interface {
	// Append stores a new record and assigns its ID.
	Append(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID, ErrRecordNotFound when absent.
	GetByID(ctx context.Context, id string) (Record, error)

	// FindOpen returns the employee's open record (check-in set, check-out
	// null), or nil when the employee has none. At most one can exist.
	FindOpen(ctx context.Context, employeeID string) (*Record, error)

	// GetByEmployeeAndDate returns the record for an employee on a calendar
	// date, or nil when none exists. Used to prevent double check-in.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// Update mutates an existing record, ErrRecordNotFound when absent.
	Update(ctx context.Context, record Record) error

	// Query retrieves records matching the filter plus the unpaginated total.
	// Ordering follows filter.SortOrder: "asc" is date-ascending (monthly
	// views), anything else is date-descending (history views).
	Query(ctx context.Context, filter RecordFilter) ([]Record, int64, error)
}
