package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	repo  attendance.RecordRepository
	clock clock.Clock
}

func NewReportService(repo attendance.RecordRepository, clk clock.Clock) report.ReportService {
	return &ReportServiceImpl{repo: repo, clock: clk}
}

// monthRange returns the inclusive YYYY-MM-DD bounds of a month.
func monthRange(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func (s *ReportServiceImpl) monthFilter(employeeID *string, department *string, year, month int) attendance.RecordFilter {
	start, end := monthRange(year, month)
	return attendance.RecordFilter{
		EmployeeID: employeeID,
		Department: department,
		StartDate:  &start,
		EndDate:    &end,
		SortOrder:  "asc",
	}
}

// foldStats is the pure aggregation fold: identical output for identical
// record sets. Working days exclude weekend-status days and days still in the
// future relative to now; a zero denominator yields a 0 rate, never NaN.
func foldStats(employeeID string, year, month int, records []attendance.Record, now time.Time) report.MonthlyStats {
	stats := report.MonthlyStats{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var workingDays, presentOnly, totalMinutes int
	for _, record := range records {
		day := time.Date(record.Date.Year(), record.Date.Month(), record.Date.Day(), 0, 0, 0, 0, time.UTC)
		if record.Status != attendance.StatusWeekend && !day.After(today) {
			workingDays++
		}

		switch record.Status {
		case attendance.StatusPresent:
			presentOnly++
			stats.PresentDays++
		case attendance.StatusLate:
			stats.LateDays++
			stats.PresentDays++
		case attendance.StatusAbsent:
			stats.AbsentDays++
		}

		totalMinutes += record.WorkHours*60 + record.WorkMinutes
		stats.OvertimeHours += record.Overtime
	}

	stats.TotalWorkHours = totalMinutes / 60
	stats.TotalWorkMinutes = totalMinutes % 60

	if workingDays > 0 {
		stats.AttendanceRate = float64(stats.PresentDays) / float64(workingDays) * 100
	}
	if presentOnly+stats.LateDays > 0 {
		stats.PunctualityRate = float64(presentOnly) / float64(presentOnly+stats.LateDays) * 100
	}

	return stats
}

// MonthlyStats implements report.ReportService.
func (s *ReportServiceImpl) MonthlyStats(ctx context.Context, employeeID string, year, month int) (report.MonthlyStats, error) {
	records, _, err := s.repo.Query(ctx, s.monthFilter(&employeeID, nil, year, month))
	if err != nil {
		return report.MonthlyStats{}, fmt.Errorf("failed to query monthly records: %w", err)
	}
	return foldStats(employeeID, year, month, records, s.clock.Now()), nil
}

// MonthlyRecords implements report.ReportService.
func (s *ReportServiceImpl) MonthlyRecords(ctx context.Context, employeeID string, year, month int) ([]attendance.RecordResponse, error) {
	records, _, err := s.repo.Query(ctx, s.monthFilter(&employeeID, nil, year, month))
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapRecordToResponse(record))
	}
	return responses, nil
}

// MonthlyOverview implements report.ReportService.
func (s *ReportServiceImpl) MonthlyOverview(ctx context.Context, employeeID string, year, month int) (report.MonthlyOverview, error) {
	var (
		stats   report.MonthlyStats
		records []attendance.RecordResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := s.MonthlyStats(gCtx, employeeID, year, month)
		if err != nil {
			return err
		}
		stats = data
		return nil
	})

	g.Go(func() error {
		data, err := s.MonthlyRecords(gCtx, employeeID, year, month)
		if err != nil {
			return err
		}
		records = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.MonthlyOverview{}, err
	}

	return report.MonthlyOverview{Stats: stats, Records: records}, nil
}

// DepartmentMonthlyStats implements report.ReportService.
// One snapshot query for the whole department, folded per employee.
func (s *ReportServiceImpl) DepartmentMonthlyStats(ctx context.Context, department string, year, month int) (report.DepartmentMonthlyStats, error) {
	records, _, err := s.repo.Query(ctx, s.monthFilter(nil, &department, year, month))
	if err != nil {
		return report.DepartmentMonthlyStats{}, fmt.Errorf("failed to query department records: %w", err)
	}

	byEmployee := make(map[string][]attendance.Record)
	for _, record := range records {
		byEmployee[record.EmployeeID] = append(byEmployee[record.EmployeeID], record)
	}

	now := s.clock.Now()
	result := report.DepartmentMonthlyStats{
		Department: department,
		Year:       year,
		Month:      month,
		Employees:  make([]report.MonthlyStats, 0, len(byEmployee)),
	}
	for employeeID, employeeRecords := range byEmployee {
		result.Employees = append(result.Employees, foldStats(employeeID, year, month, employeeRecords, now))
	}
	sort.Slice(result.Employees, func(i, j int) bool {
		return result.Employees[i].EmployeeID < result.Employees[j].EmployeeID
	})

	return result, nil
}

func mapRecordToResponse(record attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		EmployeeName: record.EmployeeName,
		Department:   record.Department,
		Date:         record.Date.Format("2006-01-02"),
		CheckIn:      record.CheckIn,
		CheckOut:     record.CheckOut,
		Status:       record.Status,
		WorkHours:    record.WorkHours,
		WorkMinutes:  record.WorkMinutes,
		Overtime:     record.Overtime,
		Notes:        record.Notes,
	}
	if !record.CreatedAt.IsZero() {
		resp.CreatedAt = record.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if !record.UpdatedAt.IsZero() {
		resp.UpdatedAt = record.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}
