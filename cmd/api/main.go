package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/attendance-engine-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/memory"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/postgresql"
	domainAttendance "github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	attendanceService "github.com/cmlabs-hris/attendance-engine-go/internal/service/attendance"
	reportService "github.com/cmlabs-hris/attendance-engine-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var attendanceRepo domainAttendance.RecordRepository
	switch cfg.App.StoreDriver {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			fmt.Println("Error connecting to database:", err)
			return
		}
		defer db.Close()
		attendanceRepo = postgresql.NewAttendanceRepository(db)
	case "memory":
		attendanceRepo = memory.NewAttendanceRepository()
	default:
		log.Fatal("Unsupported store driver: ", cfg.App.StoreDriver)
	}

	clk := clock.System()

	classifier, err := attendanceService.NewClassifier(cfg.Attendance.LateThreshold, cfg.Attendance.StandardEnd)
	if err != nil {
		log.Fatal("Invalid classification thresholds: ", err)
	}

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		clk,
		classifier,
		cfg.Attendance.StandardDayHours,
	)
	reportSvc := reportService.NewReportService(attendanceRepo, clk)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc, clk)

	router := appHTTP.NewRouter(attendanceHandler, reportHandler)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, attendanceRepo, clk, cfg.Attendance)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	_ = server.Close()
}
