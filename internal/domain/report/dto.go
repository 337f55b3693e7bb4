package report

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
)

// MonthlyStats is derived on demand per (employee, year, month); it is never
// persisted. Rates are percentages in [0,100] and always numeric: a zero
// denominator yields 0, never NaN.
type MonthlyStats struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	PresentDays int `json:"present_days"` // present + late
	LateDays    int `json:"late_days"`
	AbsentDays  int `json:"absent_days"`

	TotalWorkHours   int `json:"total_work_hours"`
	TotalWorkMinutes int `json:"total_work_minutes"` // 0-59 remainder
	OvertimeHours    int `json:"overtime_hours"`

	AttendanceRate  float64 `json:"attendance_rate"`
	PunctualityRate float64 `json:"punctuality_rate"`
}

// MonthlyOverview bundles a month's stats with its chronological records for
// dashboard consumers.
type MonthlyOverview struct {
	Stats   MonthlyStats                `json:"stats"`
	Records []attendance.RecordResponse `json:"records"`
}

// DepartmentMonthlyStats rolls one department's month into per-employee stats.
type DepartmentMonthlyStats struct {
	Department string         `json:"department"`
	Year       int            `json:"year"`
	Month      int            `json:"month"`
	Employees  []MonthlyStats `json:"employees"`
}
