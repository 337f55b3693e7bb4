package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/config"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/clock"
)

// AttendanceJobs closes out the previous calendar day: stale open sessions get
// a synthetic check-out, and employees with no record on a working day are
// marked absent. Both jobs are idempotent and safe to re-run.
type AttendanceJobs struct {
	attendanceSvc  attendance.AttendanceService
	attendanceRepo attendance.RecordRepository
	clk            clock.Clock
	cfg            config.AttendanceConfig
}

func NewAttendanceJobs(
	attendanceSvc attendance.AttendanceService,
	attendanceRepo attendance.RecordRepository,
	clk clock.Clock,
	cfg config.AttendanceConfig,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc:  attendanceSvc,
		attendanceRepo: attendanceRepo,
		clk:            clk,
		cfg:            cfg,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// isWeekend reports whether day falls on a configured non-working weekday.
func (j *AttendanceJobs) isWeekend(day time.Time) bool {
	for _, wd := range j.cfg.WeekendDays {
		if day.Weekday() == wd {
			return true
		}
	}
	return false
}

// sameDay compares calendar components only: stored dates may carry a
// different location or time component than the job's local midnight.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// yesterday returns the previous calendar day, truncated to midnight.
func (j *AttendanceJobs) yesterday() time.Time {
	now := j.clk.Now()
	y := now.AddDate(0, 0, -1)
	return time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, y.Location())
}

// AutoCloseStaleSessions completes sessions that were left open past their
// calendar day by writing the standard end-of-day time as the check-out.
// Classification and derived hours are recomputed through the correction path.
func (j *AttendanceJobs) AutoCloseStaleSessions(ctx context.Context) error {
	// Only run at midnight (00:00-00:59)
	if j.clk.Now().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting auto-close stale sessions job")

	yesterdayStr := j.yesterday().Format("2006-01-02")
	records, _, err := j.attendanceRepo.Query(ctx, attendance.RecordFilter{
		EndDate:   &yesterdayStr,
		SortOrder: "asc",
	})
	if err != nil {
		return fmt.Errorf("failed to query past records: %w", err)
	}

	closedCount := 0
	for i := range records {
		rec := &records[i]
		if !rec.Open() {
			continue
		}

		checkOut := j.cfg.StandardEnd
		note := "Auto-closed: no check-out recorded by end of day. Contact your manager if this is incorrect."
		_, err := j.attendanceSvc.CorrectRecord(ctx, attendance.CorrectRecordRequest{
			ID:       rec.ID,
			CheckOut: &checkOut,
			Notes:    &note,
		})
		if err != nil {
			slog.Error("Cron: Failed to auto-close session",
				"record_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"error", err)
			continue
		}
		closedCount++
	}

	if closedCount > 0 {
		slog.Info("Cron: Auto-closed stale sessions", "count", closedCount)
	} else {
		slog.Info("Cron: No stale sessions found")
	}
	return nil
}

// MarkAbsentEmployees backfills yesterday for every known employee that has no
// record: a weekend entry on non-working days, an absent entry otherwise. The
// set of known employees is derived from recent record history.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run at midnight (00:00-00:59)
	if j.clk.Now().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job")

	yesterday := j.yesterday()

	// Employees seen in the trailing 30 days are considered active.
	startStr := yesterday.AddDate(0, 0, -30).Format("2006-01-02")
	endStr := yesterday.Format("2006-01-02")
	records, _, err := j.attendanceRepo.Query(ctx, attendance.RecordFilter{
		StartDate: &startStr,
		EndDate:   &endStr,
		SortOrder: "asc",
	})
	if err != nil {
		return fmt.Errorf("failed to query recent records: %w", err)
	}

	type employeeInfo struct {
		name       string
		department string
	}
	employees := make(map[string]employeeInfo)
	covered := make(map[string]bool)
	for i := range records {
		rec := &records[i]
		employees[rec.EmployeeID] = employeeInfo{name: rec.EmployeeName, department: rec.Department}
		if sameDay(rec.Date, yesterday) {
			covered[rec.EmployeeID] = true
		}
	}

	weekend := j.isWeekend(yesterday)
	markedCount := 0
	for employeeID, info := range employees {
		if covered[employeeID] {
			continue
		}

		record := attendance.Record{
			EmployeeID:   employeeID,
			EmployeeName: info.name,
			Department:   info.department,
			Date:         yesterday,
			Status:       attendance.StatusAbsent,
		}
		if weekend {
			record.Status = attendance.StatusWeekend
		}

		if _, err := j.attendanceRepo.Append(ctx, record); err != nil {
			slog.Error("Cron: Failed to backfill record",
				"employee_id", employeeID,
				"date", endStr,
				"error", err)
			continue
		}
		markedCount++
	}

	slog.Info("Cron: Backfilled missing records", "count", markedCount, "date", endStr, "weekend", weekend)
	return nil
}
