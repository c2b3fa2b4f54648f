// Package kiosk runs the capture loop that turns camera frames into
// attendance scans. Face detection stays behind the Embedder port; the
// loop only sequences capture, recognition, and ledger appends.
package kiosk

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	"github.com/sony/gobreaker"
)

// Frame is one captured image or descriptor blob.
type Frame []byte

// ErrNoFrame means the camera had nothing to deliver this tick. The
// loop skips the tick silently.
var ErrNoFrame = errors.New("no frame available")

type Camera interface {
	Capture(ctx context.Context) (Frame, error)
	Close() error
}

// Embedder extracts a face embedding from a frame. found is false when
// the frame contains no face.
type Embedder interface {
	DetectAndEmbed(ctx context.Context, frame Frame) (embedding facematch.Embedding, found bool, err error)
}

// Recorder is the slice of the attendance service the loop needs.
type Recorder interface {
	RecordScan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResult, error)
}

type Config struct {
	// PollInterval is the capture cadence; Cooldown is the pause after
	// any processed outcome before the loop re-arms.
	PollInterval time.Duration
	Cooldown     time.Duration

	// ModeResetAfter reverts a non-default mode (check_out, breaks)
	// back to check_in after this much idle time, so a kiosk left in
	// check-out mode overnight greets the morning correctly.
	ModeResetAfter time.Duration

	// AttachPhoto forwards the raw frame with the scan for the audit
	// trail. Only sensible when frames are actual JPEGs.
	AttachPhoto bool
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 5 * time.Second
	}
	if c.ModeResetAfter <= 0 {
		c.ModeResetAfter = 20 * time.Second
	}
	return c
}

type Loop struct {
	camera   Camera
	embedder Embedder
	recorder Recorder
	logger   *slog.Logger
	breaker  *gobreaker.CircuitBreaker
	cfg      Config

	mu            sync.Mutex
	mode          attendance.EventType
	modeChangedAt time.Time
}

func NewLoop(camera Camera, embedder Embedder, recorder Recorder, logger *slog.Logger, cfg Config) *Loop {
	l := &Loop{
		camera:   camera,
		embedder: embedder,
		recorder: recorder,
		logger:   logger,
		cfg:      cfg.withDefaults(),
		mode:     attendance.EventCheckIn,
	}

	l.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "attendance-ledger",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("ledger breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})

	return l
}

func (l *Loop) Mode() attendance.EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

func (l *Loop) SetMode(mode attendance.EventType) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mode = mode
	l.modeChangedAt = time.Now()
}

// Run drives the loop until ctx is cancelled. Processing is strictly
// serialized: a tick runs start to finish before the next capture is
// considered, which is the kiosk's busy guard. The camera is released
// on every exit path.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		if err := l.camera.Close(); err != nil {
			l.logger.Error("failed to close camera", slog.Any("error", err))
		}
	}()

	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()

	l.logger.Info("kiosk loop started",
		slog.Duration("poll_interval", l.cfg.PollInterval),
		slog.Duration("cooldown", l.cfg.Cooldown))

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("kiosk loop stopping")
			return ctx.Err()
		case <-ticker.C:
			l.maybeRevertMode()
			if processed := l.tick(ctx); processed {
				select {
				case <-ctx.Done():
					l.logger.Info("kiosk loop stopping")
					return ctx.Err()
				case <-time.After(l.cfg.Cooldown):
				}
			}
		}
	}
}

// tick handles one capture. It reports whether a scan was processed
// (accepted or rejected), which triggers the cooldown.
func (l *Loop) tick(ctx context.Context) bool {
	frame, err := l.camera.Capture(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoFrame) {
			l.logger.Warn("capture failed", slog.Any("error", err))
		}
		return false
	}

	// Stamp at acquisition so a slow embedder cannot shift the
	// classification window.
	at := time.Now()

	embedding, found, err := l.embedder.DetectAndEmbed(ctx, frame)
	if err != nil {
		l.logger.Warn("embedding failed", slog.Any("error", err))
		return false
	}
	if !found {
		return false
	}

	req := attendance.ScanRequest{
		Mode:      string(l.Mode()),
		Embedding: embedding,
		At:        at,
	}
	if l.cfg.AttachPhoto {
		req.PhotoJPEG = frame
	}

	// Classification rejections are normal outcomes and must not trip
	// the breaker; only storage faults count as failures.
	result, err := l.breaker.Execute(func() (interface{}, error) {
		out, err := l.recorder.RecordScan(ctx, req)
		if err != nil && isRejection(err) {
			return rejection{err: err}, nil
		}
		return out, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			l.logger.Warn("ledger unavailable, captures paused")
		} else {
			l.logger.Error("failed to record scan", slog.Any("error", err))
		}
		return true
	}

	switch v := result.(type) {
	case rejection:
		l.logger.Info("scan rejected",
			slog.String("mode", req.Mode),
			slog.String("reason", v.err.Error()))
	case attendance.ScanResult:
		l.logger.Info("scan accepted",
			slog.String("mode", req.Mode),
			slog.String("employee", v.EmployeeName),
			slog.String("status", v.Event.Status))
	}
	return true
}

func (l *Loop) maybeRevertMode() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mode != attendance.EventCheckIn && time.Since(l.modeChangedAt) > l.cfg.ModeResetAfter {
		l.logger.Info("mode reverted to check_in", slog.String("from", string(l.mode)))
		l.mode = attendance.EventCheckIn
	}
}

type rejection struct {
	err error
}

func isRejection(err error) bool {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return true
	}
	return errors.Is(err, attendance.ErrFaceNotRecognized) ||
		errors.Is(err, attendance.ErrDuplicateEvent) ||
		errors.Is(err, attendance.ErrTooLateToCheckIn) ||
		errors.Is(err, attendance.ErrTooEarlyToCheckOut)
}
