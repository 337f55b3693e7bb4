package attendance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/worktime"
)

type AttendanceServiceImpl struct {
	repo             attendance.RecordRepository
	clock            clock.Clock
	classifier       Classifier
	standardDayHours int

	// Per-employee mutual exclusion: check-in and check-out for the same
	// employee never run concurrently. Cross-employee operations proceed in
	// parallel.
	mu            sync.Mutex
	employeeLocks map[string]*sync.Mutex
}

func NewAttendanceService(
	repo attendance.RecordRepository,
	clk clock.Clock,
	classifier Classifier,
	standardDayHours int,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		repo:             repo,
		clock:            clk,
		classifier:       classifier,
		standardDayHours: standardDayHours,
		employeeLocks:    make(map[string]*sync.Mutex),
	}
}

func (a *AttendanceServiceImpl) lockEmployee(employeeID string) func() {
	a.mu.Lock()
	lock, ok := a.employeeLocks[employeeID]
	if !ok {
		lock = &sync.Mutex{}
		a.employeeLocks[employeeID] = lock
	}
	a.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// minuteOfDay extracts the wall-clock minute-of-day from a timestamp.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// dateOnly strips the time component, keeping the calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	unlock := a.lockEmployee(req.EmployeeID)
	defer unlock()

	now := a.clock.Now()
	today := dateOnly(now)

	// One open record per employee globally, not per date: a stale open
	// record from a previous day still blocks a new check-in.
	open, err := a.repo.FindOpen(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up open record: %w", err)
	}
	if open != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	existing, err := a.repo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if existing != nil {
		if attendance.IsOverrideStatus(existing.Status) {
			return attendance.RecordResponse{}, attendance.ErrRecordImmutable
		}
		if existing.Closed() {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCompletedToday
		}
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	checkIn := worktime.FormatClock(minuteOfDay(now))
	status := a.classifier.AtCheckIn(minuteOfDay(now))

	record := attendance.Record{
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Department:   req.Department,
		Date:         today,
		CheckIn:      &checkIn,
		Status:       status,
	}

	created, err := a.repo.Append(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrOpenRecordExists) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to append attendance record: %w", err)
	}

	return mapRecordToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	unlock := a.lockEmployee(req.EmployeeID)
	defer unlock()

	record, err := a.repo.GetByID(ctx, req.RecordID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// A stale or foreign id never reveals another employee's record.
	if record.EmployeeID != req.EmployeeID {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}
	if attendance.IsOverrideStatus(record.Status) {
		return attendance.RecordResponse{}, attendance.ErrRecordImmutable
	}
	if record.CheckIn == nil {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}
	if record.CheckOut != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := a.clock.Now()
	checkOut := worktime.FormatClock(minuteOfDay(now))

	elapsed, err := worktime.Elapsed(*record.CheckIn, checkOut)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record.CheckOut = &checkOut
	record.WorkHours = elapsed.Hours
	record.WorkMinutes = elapsed.Minutes
	record.Overtime = overtimeHours(elapsed.Hours, a.standardDayHours)
	record.Status = a.classifier.AtCheckOut(record.Status, minuteOfDay(now))

	if err := a.repo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// ApplyOverride implements attendance.AttendanceService.
// This is the entry point for the work-calendar and leave-approval
// collaborators: weekend, on-leave and mission days are seeded here and stay
// immutable to check-in/check-out.
func (a *AttendanceServiceImpl) ApplyOverride(ctx context.Context, req attendance.OverrideRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	unlock := a.lockEmployee(req.EmployeeID)
	defer unlock()

	date, _ := time.Parse("2006-01-02", req.Date)

	existing, err := a.repo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up record for override: %w", err)
	}

	if existing != nil {
		// The override authority wins regardless of recorded clock times.
		existing.Status = req.Status
		if req.Notes != nil {
			existing.Notes = req.Notes
		}
		if err := a.repo.Update(ctx, *existing); err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to apply override: %w", err)
		}
		return mapRecordToResponse(*existing), nil
	}

	record := attendance.Record{
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Department:   req.Department,
		Date:         date,
		Status:       req.Status,
		Notes:        req.Notes,
	}

	created, err := a.repo.Append(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to seed override record: %w", err)
	}

	return mapRecordToResponse(created), nil
}

// CorrectRecord implements attendance.AttendanceService.
// This is the audited administrative path for fixing wrong clock times;
// derived fields and the status are recomputed from the corrected pair.
func (a *AttendanceServiceImpl) CorrectRecord(ctx context.Context, req attendance.CorrectRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	// The first read only resolves the lock key; its snapshot may go stale
	// while we wait for the lock, so re-read before mutating.
	owner, err := a.repo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	unlock := a.lockEmployee(owner.EmployeeID)
	defer unlock()

	record, err := a.repo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if req.CheckIn != nil {
		record.CheckIn = req.CheckIn
	}
	if req.CheckOut != nil {
		record.CheckOut = req.CheckOut
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	// checkOut without checkIn is invalid
	if record.CheckIn == nil && record.CheckOut != nil {
		return attendance.RecordResponse{}, fmt.Errorf("%w: check_out requires check_in", worktime.ErrInvalidTimeFormat)
	}

	if record.CheckIn != nil && record.CheckOut != nil {
		elapsed, err := worktime.Elapsed(*record.CheckIn, *record.CheckOut)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		record.WorkHours = elapsed.Hours
		record.WorkMinutes = elapsed.Minutes
		record.Overtime = overtimeHours(elapsed.Hours, a.standardDayHours)
	} else {
		record.WorkHours = 0
		record.WorkMinutes = 0
		record.Overtime = 0
	}

	override := ""
	if attendance.IsOverrideStatus(record.Status) {
		override = record.Status
	}
	status, err := a.classifier.Classify(record.CheckIn, record.CheckOut, override)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	record.Status = status

	if err := a.repo.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update corrected record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// GetRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	record, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return mapRecordToResponse(record), nil
}

// EmployeeRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EmployeeRecords(ctx context.Context, employeeID string, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	filter.EmployeeID = &employeeID
	return a.ListRecords(ctx, filter)
}

// ListRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, total, err := a.repo.Query(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to query attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapRecordToResponse(record))
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

func overtimeHours(workHours, standardDayHours int) int {
	if workHours > standardDayHours {
		return workHours - standardDayHours
	}
	return 0
}

// mapRecordToResponse converts a Record entity to RecordResponse
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
