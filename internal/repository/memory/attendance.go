package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/google/uuid"
)

// attendanceRepository is a mutex-guarded in-memory record store. It enforces
// the same storage-boundary invariants as the PostgreSQL implementation
// (single open record per employee, one record per employee per date) and is
// used by tests and database-less deployments.
type attendanceRepository struct {
	mu      sync.RWMutex
	records map[string]attendance.Record
}

func NewAttendanceRepository() attendance.RecordRepository {
	return &attendanceRepository{
		records: make(map[string]attendance.Record),
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Append implements attendance.RecordRepository.
func (a *attendanceRepository) Append(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.records {
		if existing.EmployeeID != record.EmployeeID {
			continue
		}
		if record.Open() && existing.Open() {
			return attendance.Record{}, attendance.ErrOpenRecordExists
		}
		if sameDay(existing.Date, record.Date) {
			return attendance.Record{}, attendance.ErrOpenRecordExists
		}
	}

	now := time.Now()
	record.ID = uuid.NewString()
	record.CreatedAt = now
	record.UpdatedAt = now
	a.records[record.ID] = record

	return record, nil
}

// GetByID implements attendance.RecordRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	record, ok := a.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return record, nil
}

// FindOpen implements attendance.RecordRepository.
func (a *attendanceRepository) FindOpen(ctx context.Context, employeeID string) (*attendance.Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, record := range a.records {
		if record.EmployeeID == employeeID && record.Open() {
			found := record
			return &found, nil
		}
	}
	return nil, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, record := range a.records {
		if record.EmployeeID == employeeID && sameDay(record.Date, date) {
			found := record
			return &found, nil
		}
	}
	return nil, nil
}

// Update implements attendance.RecordRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing, ok := a.records[record.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now()
	a.records[record.ID] = record

	return nil
}

func matches(record attendance.Record, filter attendance.RecordFilter) bool {
	if filter.EmployeeID != nil && *filter.EmployeeID != "" && record.EmployeeID != *filter.EmployeeID {
		return false
	}
	if filter.Department != nil && *filter.Department != "" && record.Department != *filter.Department {
		return false
	}
	day := record.Date.Format("2006-01-02")
	if filter.Date != nil && *filter.Date != "" && day != *filter.Date {
		return false
	}
	if filter.StartDate != nil && *filter.StartDate != "" && day < *filter.StartDate {
		return false
	}
	if filter.EndDate != nil && *filter.EndDate != "" && day > *filter.EndDate {
		return false
	}
	if filter.Status != nil && *filter.Status != "" && record.Status != *filter.Status {
		return false
	}
	return true
}

// Query implements attendance.RecordRepository.
func (a *attendanceRepository) Query(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	a.mu.RLock()
	matched := make([]attendance.Record, 0)
	for _, record := range a.records {
		if matches(record, filter) {
			matched = append(matched, record)
		}
	}
	a.mu.RUnlock()

	asc := filter.SortOrder == "asc"
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			if asc {
				return matched[i].Date.Before(matched[j].Date)
			}
			return matched[i].Date.After(matched[j].Date)
		}
		// Same day only happens across employees; keep output stable.
		if asc {
			return matched[i].EmployeeID < matched[j].EmployeeID
		}
		return matched[i].EmployeeID > matched[j].EmployeeID
	})

	total := int64(len(matched))

	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.Limit
		if start >= len(matched) {
			return []attendance.Record{}, total, nil
		}
		end := start + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	return matched, total, nil
}
