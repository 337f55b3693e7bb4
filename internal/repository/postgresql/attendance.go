package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Table layout:
//
//	attendance_records(
//	    id uuid primary key default gen_random_uuid(),
//	    employee_id text, employee_name text, department text,
//	    date date, check_in char(5), check_out char(5),
//	    status text, work_hours int, work_minutes int, overtime int,
//	    notes text, created_at timestamptz, updated_at timestamptz)
//
// A partial unique index enforces the single-open-record invariant at the
// storage boundary, not just in the controller:
//
//	CREATE UNIQUE INDEX uq_attendance_open ON attendance_records (employee_id)
//	    WHERE check_in IS NOT NULL AND check_out IS NULL;
//	CREATE UNIQUE INDEX uq_attendance_day ON attendance_records (employee_id, date);
type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `id, employee_id, employee_name, department, date,
	   check_in, check_out, status, work_hours, work_minutes, overtime,
	   notes, created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var record attendance.Record
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.EmployeeName, &record.Department, &record.Date,
		&record.CheckIn, &record.CheckOut, &record.Status, &record.WorkHours, &record.WorkMinutes, &record.Overtime,
		&record.Notes, &record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}

// mapStoreError turns transport-level pgx failures into the retryable
// ErrStoreUnavailable sentinel; logical errors pass through untouched.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", attendance.ErrStoreUnavailable, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08 - connection exceptions, class 57 - operator intervention
		if len(pgErr.Code) >= 2 && (pgErr.Code[:2] == "08" || pgErr.Code[:2] == "57") {
			return fmt.Errorf("%w: %v", attendance.ErrStoreUnavailable, err)
		}
	}
	return err
}

// Append implements attendance.RecordRepository.
func (a *attendanceRepository) Append(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, employee_name, department, date,
			check_in, check_out, status, work_hours, work_minutes, overtime, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.EmployeeName,
		record.Department,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.WorkHours,
		record.WorkMinutes,
		record.Overtime,
		record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrOpenRecordExists
		}
		return attendance.Record{}, fmt.Errorf("failed to append attendance record: %w", mapStoreError(err))
	}

	return record, nil
}

// GetByID implements attendance.RecordRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordColumns + ` FROM attendance_records WHERE id = $1`

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", mapStoreError(err))
	}

	return record, nil
}

// FindOpen implements attendance.RecordRepository.
func (a *attendanceRepository) FindOpen(ctx context.Context, employeeID string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
		ORDER BY date DESC
		LIMIT 1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open attendance record: %w", mapStoreError(err))
	}

	return &record, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record by employee and date: %w", mapStoreError(err))
	}

	return &record, nil
}

// Update implements attendance.RecordRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_in = $1, check_out = $2, status = $3,
			work_hours = $4, work_minutes = $5, overtime = $6,
			notes = $7, updated_at = $8
		WHERE id = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.WorkHours,
		record.WorkMinutes,
		record.Overtime,
		record.Notes,
		time.Now(),
		record.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", mapStoreError(err))
	}

	return nil
}

// Query implements attendance.RecordRepository.
func (a *attendanceRepository) Query(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	// Build WHERE clause
	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendance_records WHERE " + baseWhere

	// Ordering contract: monthly views ascending, history views descending.
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records
		WHERE %s
		ORDER BY date %s, check_in %s
	`, recordColumns, baseWhere, sortOrder, sortOrder)

	// Limit <= 0 disables pagination (aggregation snapshot reads).
	countArgs := args
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		selectQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args[:len(args):len(args)], filter.Limit, (page-1)*filter.Limit)
	}

	// Count and page inside one transaction so the unpaginated total and the
	// returned rows describe the same snapshot.
	var total int64
	var records []attendance.Record
	err := WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count attendance records: %w", err)
		}

		rows, err := tx.Query(ctx, selectQuery, args...)
		if err != nil {
			return fmt.Errorf("failed to query attendance records: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			record, err := scanRecord(rows)
			if err != nil {
				return fmt.Errorf("failed to scan attendance record: %w", err)
			}
			records = append(records, record)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, mapStoreError(err)
	}

	return records, total, nil
}
