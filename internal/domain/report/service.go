package report

import (
	"context"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
)

// ReportService defines the read-side aggregation consumed by dashboards,
// reports and payroll feeds. All operations fold over one point-in-time read
// of the record store and are deterministic for a given record set.
type ReportService interface {
	// MonthlyStats aggregates one employee's month into counts, totals and rates
	MonthlyStats(ctx context.Context, employeeID string, year, month int) (MonthlyStats, error)

	// MonthlyRecords returns one employee's month chronologically ascending
	MonthlyRecords(ctx context.Context, employeeID string, year, month int) ([]attendance.RecordResponse, error)

	// MonthlyOverview returns stats and records for one employee's month
	MonthlyOverview(ctx context.Context, employeeID string, year, month int) (MonthlyOverview, error)

	// DepartmentMonthlyStats aggregates a department's month per employee
	DepartmentMonthlyStats(ctx context.Context, department string, year, month int) (DepartmentMonthlyStats, error)
}
