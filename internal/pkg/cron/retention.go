package cron

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// RetentionJobs prunes aged scan photos from local storage. Photos are
// stored under one directory per day ("scans/2006-01-02"), so a day
// expires by removing its directory.
type RetentionJobs struct {
	scansDir string
	keepDays int
}

func NewRetentionJobs(scansDir string, keepDays int) *RetentionJobs {
	return &RetentionJobs{
		scansDir: scansDir,
		keepDays: keepDays,
	}
}

func (j *RetentionJobs) RegisterJobs(scheduler *Scheduler) {
	if j.keepDays <= 0 {
		return
	}
	scheduler.AddJob("prune_scan_photos", 12*time.Hour, j.PruneScanPhotos)
}

func (j *RetentionJobs) PruneScanPhotos(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -j.keepDays).Format("2006-01-02")

	entries, err := os.ReadDir(j.scansDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	pruned := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Day-named directories compare chronologically as strings.
		if _, ok := validator.IsValidDate(entry.Name()); !ok || !entry.IsDir() || entry.Name() >= cutoff {
			continue
		}
		if err := os.RemoveAll(filepath.Join(j.scansDir, entry.Name())); err != nil {
			slog.Error("failed to prune scan photos", "day", entry.Name(), "error", err)
			continue
		}
		pruned++
	}

	if pruned > 0 {
		slog.Info("pruned scan photos", "days", pruned, "cutoff", cutoff)
	}
	return nil
}
