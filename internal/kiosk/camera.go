package kiosk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SpoolCamera reads frames dropped as files into a spool directory by
// an external capture process. Files are consumed oldest name first
// and removed once read.
type SpoolCamera struct {
	dir string
}

func NewSpoolCamera(dir string) (*SpoolCamera, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create spool directory: %w", err)
	}
	return &SpoolCamera{dir: dir}, nil
}

// Capture implements Camera.
func (c *SpoolCamera) Capture(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read spool directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, ErrNoFrame
	}
	sort.Strings(names)

	path := filepath.Join(c.dir, names[0])
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame %s: %w", names[0], err)
	}
	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("failed to consume frame %s: %w", names[0], err)
	}

	return Frame(data), nil
}

// Close implements Camera. The spool needs no teardown.
func (c *SpoolCamera) Close() error {
	return nil
}
