package report

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(t *testing.T, now time.Time) (*ReportServiceImpl, attendance.RecordRepository) {
	t.Helper()
	repo := memory.NewAttendanceRepository()
	svc := NewReportService(repo, &clock.Fixed{Instant: now}).(*ReportServiceImpl)
	return svc, repo
}

type seed struct {
	employeeID string
	department string
	day        time.Time
	status     string
	checkIn    string
	checkOut   string
	hours      int
	minutes    int
	overtime   int
}

func seedRecord(t *testing.T, repo attendance.RecordRepository, s seed) {
	t.Helper()

	record := attendance.Record{
		EmployeeID:   s.employeeID,
		EmployeeName: "Seeded Employee",
		Department:   s.department,
		Date:         s.day,
		Status:       s.status,
		WorkHours:    s.hours,
		WorkMinutes:  s.minutes,
		Overtime:     s.overtime,
	}
	if s.checkIn != "" {
		record.CheckIn = &s.checkIn
	}
	if s.checkOut != "" {
		record.CheckOut = &s.checkOut
	}

	_, err := repo.Append(context.Background(), record)
	require.NoError(t, err)
}

func march(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

// seedMarch fills March 2026 for one employee: 16 present days, 2 late days,
// 2 absent days and one weekend pair.
func seedMarch(t *testing.T, repo attendance.RecordRepository, employeeID, department string) {
	t.Helper()

	weekdays := []int{2, 3, 4, 5, 6, 9, 10, 11, 12, 13, 16, 17, 18, 19, 20, 23, 24, 25, 26, 27}
	for i, day := range weekdays {
		switch {
		case i < 16:
			seedRecord(t, repo, seed{
				employeeID: employeeID, department: department, day: march(day),
				status: attendance.StatusPresent, checkIn: "08:00", checkOut: "17:00",
				hours: 9, overtime: 1,
			})
		case i < 18:
			seedRecord(t, repo, seed{
				employeeID: employeeID, department: department, day: march(day),
				status: attendance.StatusLate, checkIn: "09:30", checkOut: "17:30",
				hours: 8,
			})
		default:
			seedRecord(t, repo, seed{
				employeeID: employeeID, department: department, day: march(day),
				status: attendance.StatusAbsent,
			})
		}
	}

	seedRecord(t, repo, seed{employeeID: employeeID, department: department, day: march(7), status: attendance.StatusWeekend})
	seedRecord(t, repo, seed{employeeID: employeeID, department: department, day: march(8), status: attendance.StatusWeekend})
}

func TestReportService_MonthlyStats_RatesAndTotals(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestReportService(t, time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC))
	seedMarch(t, repo, "emp-1", "Engineering")

	stats, err := svc.MonthlyStats(ctx, "emp-1", 2026, 3)

	// 20 working days recorded: 18 attended (16 on time, 2 late), 2 absent.
	// Weekend entries count toward neither side of the rates.
	assert.NoError(t, err)
	assert.Equal(t, 18, stats.PresentDays)
	assert.Equal(t, 2, stats.LateDays)
	assert.Equal(t, 2, stats.AbsentDays)
	assert.InDelta(t, 90.0, stats.AttendanceRate, 0.001)
	assert.InDelta(t, 88.889, stats.PunctualityRate, 0.01)
	// 16 nine-hour days plus 2 eight-hour days
	assert.Equal(t, 160, stats.TotalWorkHours)
	assert.Equal(t, 0, stats.TotalWorkMinutes)
	assert.Equal(t, 16, stats.OvertimeHours)
}

func TestReportService_MonthlyStats_EmptyMonth(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestReportService(t, time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC))

	stats, err := svc.MonthlyStats(ctx, "emp-1", 2026, 3)

	assert.NoError(t, err)
	assert.Equal(t, 0, stats.PresentDays)
	assert.Equal(t, 0, stats.AbsentDays)
	assert.Equal(t, 0.0, stats.AttendanceRate)
	assert.Equal(t, 0.0, stats.PunctualityRate)
	assert.Equal(t, 0, stats.TotalWorkHours)
}

func TestReportService_MonthlyStats_OnlyAbsences(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestReportService(t, time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC))
	seedRecord(t, repo, seed{employeeID: "emp-1", department: "Engineering", day: march(2), status: attendance.StatusAbsent})
	seedRecord(t, repo, seed{employeeID: "emp-1", department: "Engineering", day: march(3), status: attendance.StatusAbsent})

	stats, err := svc.MonthlyStats(ctx, "emp-1", 2026, 3)

	// No attended days: both rates are 0, never NaN
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.AbsentDays)
	assert.Equal(t, 0.0, stats.AttendanceRate)
	assert.Equal(t, 0.0, stats.PunctualityRate)
}

func TestReportService_MonthlyStats_FractionalMinutes(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestReportService(t, time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC))
	seedRecord(t, repo, seed{
		employeeID: "emp-1", department: "Engineering", day: march(2),
		status: attendance.StatusPresent, checkIn: "08:00", checkOut: "16:45", hours: 8, minutes: 45,
	})
	seedRecord(t, repo, seed{
		employeeID: "emp-1", department: "Engineering", day: march(3),
		status: attendance.StatusPresent, checkIn: "08:00", checkOut: "16:30", hours: 8, minutes: 30,
	})

	stats, err := svc.MonthlyStats(ctx, "emp-1", 2026, 3)

	// 8h45m + 8h30m carries over into a whole hour
	assert.NoError(t, err)
	assert.Equal(t, 17, stats.TotalWorkHours)
	assert.Equal(t, 15, stats.TotalWorkMinutes)
}

func TestReportService_MonthlyStats_FutureDaysExcluded(t *testing.T) {
	ctx := context.Background()
	// Mid-month snapshot: March 10th
	svc, repo := newTestReportService(t, time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))
	seedRecord(t, repo, seed{
		employeeID: "emp-1", department: "Engineering", day: march(9),
		status: attendance.StatusPresent, checkIn: "08:00", checkOut: "17:00", hours: 9, overtime: 1,
	})
	seedRecord(t, repo, seed{
		employeeID: "emp-1", department: "Engineering", day: march(10),
		status: attendance.StatusPresent, checkIn: "08:00", checkOut: "17:00", hours: 9, overtime: 1,
	})
	// A day still in the future never counts against the attendance rate
	seedRecord(t, repo, seed{employeeID: "emp-1", department: "Engineering", day: march(20), status: attendance.StatusAbsent})

	stats, err := svc.MonthlyStats(ctx, "emp-1", 2026, 3)

	assert.NoError(t, err)
	assert.Equal(t, 2, stats.PresentDays)
	assert.Equal(t, 1, stats.AbsentDays)
	assert.InDelta(t, 100.0, stats.AttendanceRate, 0.001)
}

func TestReportService_MonthlyRecords_ChronologicalAndScoped(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestReportService(t, time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC))

	// Seeded out of order, plus noise from another employee and another month
	seedRecord(t, repo, seed{employeeID: "emp-1", department: "Engineering", day: march(10), status: attendance.StatusPresent, checkIn: "08:00", checkOut: "17:00", hours: 9})
	seedRecord(t, repo, seed{employeeID: "emp-1", department: "Engineering", day: march(2), status: attendance.StatusPresent, checkIn: "08:00", checkOut: "17:00", hours: 9})
	seedRecord(t, repo, seed{employeeID: "emp-1", department: "Engineering", day: march(5), status: attendance.StatusAbsent})
	seedRecord(t, repo, seed{employeeID: "emp-2", department: "Engineering", day: march(4), status: attendance.StatusPresent, checkIn: "08:00", checkOut: "17:00", hours: 9})
	seedRecord(t, repo, seed{employeeID: "emp-1", department: "Engineering", day: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), status: attendance.StatusPresent, checkIn: "08:00", checkOut: "17:00", hours: 9})

	records, err := svc.MonthlyRecords(ctx, "emp-1", 2026, 3)

	assert.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2026-03-02", records[0].Date)
	assert.Equal(t, "2026-03-05", records[1].Date)
	assert.Equal(t, "2026-03-10", records[2].Date)
}

func TestReportService_MonthlyOverview(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestReportService(t, time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC))
	seedMarch(t, repo, "emp-1", "Engineering")

	overview, err := svc.MonthlyOverview(ctx, "emp-1", 2026, 3)

	assert.NoError(t, err)
	assert.Equal(t, 18, overview.Stats.PresentDays)
	assert.Len(t, overview.Records, 22)
	// Records arrive chronologically for calendar rendering
	assert.Equal(t, "2026-03-02", overview.Records[0].Date)
}

func TestReportService_DepartmentMonthlyStats(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestReportService(t, time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC))

	seedRecord(t, repo, seed{employeeID: "emp-b", department: "Engineering", day: march(2), status: attendance.StatusPresent, checkIn: "08:00", checkOut: "17:00", hours: 9})
	seedRecord(t, repo, seed{employeeID: "emp-a", department: "Engineering", day: march(2), status: attendance.StatusLate, checkIn: "09:30", checkOut: "17:30", hours: 8})
	seedRecord(t, repo, seed{employeeID: "emp-c", department: "Sales", day: march(2), status: attendance.StatusPresent, checkIn: "08:00", checkOut: "17:00", hours: 9})

	result, err := svc.DepartmentMonthlyStats(ctx, "Engineering", 2026, 3)

	assert.NoError(t, err)
	assert.Equal(t, "Engineering", result.Department)
	require.Len(t, result.Employees, 2)
	assert.Equal(t, "emp-a", result.Employees[0].EmployeeID)
	assert.Equal(t, "emp-b", result.Employees[1].EmployeeID)
	assert.InDelta(t, 0.0, result.Employees[0].PunctualityRate, 0.001)
	assert.InDelta(t, 100.0, result.Employees[1].PunctualityRate, 0.001)
}
