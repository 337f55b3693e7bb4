package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	MonthlyStats(w http.ResponseWriter, r *http.Request)
	MonthlyRecords(w http.ResponseWriter, r *http.Request)
	MonthlyOverview(w http.ResponseWriter, r *http.Request)
	DepartmentStats(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	clock         clock.Clock
}

func NewReportHandler(reportService report.ReportService, clk clock.Clock) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		clock:         clk,
	}
}

// parseYearMonth reads year/month query parameters, defaulting to the current month.
func (h *reportHandlerImpl) parseYearMonth(r *http.Request) (int, int) {
	now := h.clock.Now()
	year, month := now.Year(), int(now.Month())

	if y := r.URL.Query().Get("year"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil && parsed >= 2000 && parsed <= 2100 {
			year = parsed
		}
	}
	if m := r.URL.Query().Get("month"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil && parsed >= 1 && parsed <= 12 {
			month = parsed
		}
	}
	return year, month
}

// MonthlyStats implements ReportHandler.
func (h *reportHandlerImpl) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, month := h.parseYearMonth(r)

	result, err := h.reportService.MonthlyStats(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlyRecords implements ReportHandler.
func (h *reportHandlerImpl) MonthlyRecords(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, month := h.parseYearMonth(r)

	result, err := h.reportService.MonthlyRecords(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlyOverview implements ReportHandler.
func (h *reportHandlerImpl) MonthlyOverview(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, month := h.parseYearMonth(r)

	result, err := h.reportService.MonthlyOverview(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DepartmentStats implements ReportHandler.
func (h *reportHandlerImpl) DepartmentStats(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")
	year, month := h.parseYearMonth(r)

	result, err := h.reportService.DepartmentMonthlyStats(r.Context(), department, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
