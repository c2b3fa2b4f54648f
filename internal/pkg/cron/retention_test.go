package cron

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneScanPhotos(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Now()

	mkDay := func(day string) {
		t.Helper()
		sub := filepath.Join(dir, day)
		require.NoError(t, os.MkdirAll(sub, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(sub, "photo.jpg"), []byte("jpeg"), 0644))
	}

	oldDay := now.AddDate(0, 0, -10).Format("2006-01-02")
	freshDay := now.Format("2006-01-02")
	mkDay(oldDay)
	mkDay(freshDay)

	// Non-day entries are never touched.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tmp"), 0755))

	jobs := NewRetentionJobs(dir, 7)
	require.NoError(t, jobs.PruneScanPhotos(context.Background()))

	assert.NoDirExists(t, filepath.Join(dir, oldDay))
	assert.DirExists(t, filepath.Join(dir, freshDay))
	assert.DirExists(t, filepath.Join(dir, "tmp"))
}

func TestPruneScanPhotosMissingDir(t *testing.T) {
	t.Parallel()

	jobs := NewRetentionJobs(filepath.Join(t.TempDir(), "nope"), 7)
	assert.NoError(t, jobs.PruneScanPhotos(context.Background()))
}

func TestRegisterJobsDisabledWithoutRetention(t *testing.T) {
	t.Parallel()

	scheduler := NewScheduler()
	NewRetentionJobs(t.TempDir(), 0).RegisterJobs(scheduler)
	assert.Empty(t, scheduler.jobs)
}
