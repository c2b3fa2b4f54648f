package main

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/presensia/attendance-backend-go/internal/config"
	appHTTP "github.com/presensia/attendance-backend-go/internal/handler/http"
	"github.com/presensia/attendance-backend-go/internal/pkg/cron"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
	"github.com/presensia/attendance-backend-go/internal/pkg/storage"
	"github.com/presensia/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/presensia/attendance-backend-go/internal/service/attendance"
	employeeService "github.com/presensia/attendance-backend-go/internal/service/employee"
	"github.com/presensia/attendance-backend-go/internal/service/file"
	payrollService "github.com/presensia/attendance-backend-go/internal/service/payroll"
	settingsService "github.com/presensia/attendance-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileService := file.NewFileService(fileStorage)

	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		ledgerRepo,
		employeeRepo,
		settingsSvc,
		fileService,
		cfg.Kiosk.MatchThreshold,
	)
	payrollSvc := payrollService.NewPayrollService(ledgerRepo, employeeRepo, settingsSvc)

	scheduler := cron.NewScheduler()
	retentionJobs := cron.NewRetentionJobs(
		filepath.Join(cfg.Storage.BasePath, "scans"),
		cfg.Storage.ScanRetentionDays,
	)
	retentionJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	kioskHandler := appHTTP.NewKioskHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigin: cfg.App.AllowedOrigin,
			Env:           cfg.App.Env,
			UploadsPath:   cfg.Storage.BasePath,
		},
		kioskHandler,
		employeeHandler,
		attendanceHandler,
		settingsHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
