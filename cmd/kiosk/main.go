package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/presensia/attendance-backend-go/internal/config"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/kiosk"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
	"github.com/presensia/attendance-backend-go/internal/repository/postgresql"
	"github.com/presensia/attendance-backend-go/internal/repository/sqlite"
	attendanceService "github.com/presensia/attendance-backend-go/internal/service/attendance"
	settingsService "github.com/presensia/attendance-backend-go/internal/service/settings"
)

// The kiosk binary runs the capture loop against a spool-directory
// camera. With postgres credentials it shares the API's database;
// without them it falls back to a local sqlite file so a kiosk keeps
// working offline.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "attendance-kiosk"),
	)

	var (
		ledgerRepo   attendance.LedgerRepository
		employeeRepo employee.EmployeeRepository
		settingsRepo settings.SettingsRepository
	)

	if cfg.Database.Password != "" {
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			logger.Error("failed to connect to postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()

		ledgerRepo = postgresql.NewLedgerRepository(db)
		employeeRepo = postgresql.NewEmployeeRepository(db)
		settingsRepo = postgresql.NewSettingsRepository(db)
		logger.Info("using postgres store")
	} else {
		store, err := sqlite.Open(cfg.Kiosk.SQLitePath)
		if err != nil {
			logger.Error("failed to open sqlite store", slog.Any("error", err))
			os.Exit(1)
		}
		defer store.Close()

		ledgerRepo = sqlite.NewLedgerRepository(store)
		employeeRepo = sqlite.NewEmployeeRepository(store)
		settingsRepo = sqlite.NewSettingsRepository(store)
		logger.Info("using sqlite store", slog.String("path", cfg.Kiosk.SQLitePath))
	}

	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		ledgerRepo,
		employeeRepo,
		settingsSvc,
		nil, // no photo storage on the kiosk
		cfg.Kiosk.MatchThreshold,
	)

	camera, err := kiosk.NewSpoolCamera(cfg.Kiosk.SpoolDir)
	if err != nil {
		logger.Error("failed to open spool camera", slog.Any("error", err))
		os.Exit(1)
	}

	loop := kiosk.NewLoop(camera, kiosk.NewJSONEmbedder(), attendanceSvc, logger, kiosk.Config{
		PollInterval:   cfg.Kiosk.PollInterval,
		Cooldown:       cfg.Kiosk.Cooldown,
		ModeResetAfter: cfg.Kiosk.ModeResetAfter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("kiosk loop exited", slog.Any("error", err))
		os.Exit(1)
	}
}
