package kiosk

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCamera struct {
	mu     sync.Mutex
	frames []Frame
	closed bool
}

func (c *fakeCamera) Capture(ctx context.Context) (Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil, ErrNoFrame
	}
	frame := c.frames[0]
	c.frames = c.frames[1:]
	return frame, nil
}

func (c *fakeCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeCamera) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []attendance.ScanRequest
	errs  []error
}

func (r *fakeRecorder) RecordScan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, req)
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		if err != nil {
			return attendance.ScanResult{}, err
		}
	}
	return attendance.ScanResult{EmployeeName: "Sari"}, nil
}

func (r *fakeRecorder) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{
		PollInterval:   5 * time.Millisecond,
		Cooldown:       time.Millisecond,
		ModeResetAfter: time.Hour,
	}
}

func runLoop(t *testing.T, loop *Loop, duration time.Duration) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()
	err := loop.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoopProcessesFrames(t *testing.T) {
	t.Parallel()

	camera := &fakeCamera{frames: []Frame{Frame(`[0.1, 0.2]`)}}
	recorder := &fakeRecorder{}
	loop := NewLoop(camera, NewJSONEmbedder(), recorder, testLogger(), testConfig())

	runLoop(t, loop, 100*time.Millisecond)

	require.Equal(t, 1, recorder.callCount())
	call := recorder.calls[0]
	assert.Equal(t, "check_in", call.Mode)
	assert.Equal(t, facematch.Embedding{0.1, 0.2}, call.Embedding)
	assert.False(t, call.At.IsZero(), "frames are stamped at acquisition")
	assert.True(t, camera.isClosed(), "camera released on exit")
}

func TestLoopSkipsFramesWithoutFaces(t *testing.T) {
	t.Parallel()

	camera := &fakeCamera{frames: []Frame{Frame("null"), Frame("  "), Frame(`[0.5]`)}}
	recorder := &fakeRecorder{}
	loop := NewLoop(camera, NewJSONEmbedder(), recorder, testLogger(), testConfig())

	runLoop(t, loop, 100*time.Millisecond)

	assert.Equal(t, 1, recorder.callCount(), "only the frame with a face reaches the recorder")
}

func TestLoopClassificationRejectionsDoNotTripBreaker(t *testing.T) {
	t.Parallel()

	frames := make([]Frame, 6)
	errs := make([]error, 6)
	for i := range frames {
		frames[i] = Frame(`[0.1]`)
		errs[i] = attendance.ErrDuplicateEvent
	}

	camera := &fakeCamera{frames: frames}
	recorder := &fakeRecorder{errs: errs}
	loop := NewLoop(camera, NewJSONEmbedder(), recorder, testLogger(), testConfig())

	runLoop(t, loop, 200*time.Millisecond)

	// Six rejections in a row and the breaker still admits scans.
	assert.Equal(t, 6, recorder.callCount())
}

func TestLoopBreakerOpensOnStorageFaults(t *testing.T) {
	t.Parallel()

	storageErr := errors.New("ledger unavailable")
	frames := make([]Frame, 10)
	errs := make([]error, 10)
	for i := range frames {
		frames[i] = Frame(`[0.1]`)
		errs[i] = storageErr
	}

	camera := &fakeCamera{frames: frames}
	recorder := &fakeRecorder{errs: errs}
	loop := NewLoop(camera, NewJSONEmbedder(), recorder, testLogger(), testConfig())

	runLoop(t, loop, 300*time.Millisecond)

	// Three consecutive failures open the breaker; later frames are
	// consumed but never reach the recorder.
	assert.Equal(t, 3, recorder.callCount())
	assert.True(t, camera.isClosed())
}

func TestLoopModeRevertsAfterIdle(t *testing.T) {
	t.Parallel()

	camera := &fakeCamera{}
	recorder := &fakeRecorder{}
	cfg := testConfig()
	cfg.ModeResetAfter = 20 * time.Millisecond
	loop := NewLoop(camera, NewJSONEmbedder(), recorder, testLogger(), cfg)

	loop.SetMode(attendance.EventCheckOut)
	assert.Equal(t, attendance.EventCheckOut, loop.Mode())

	runLoop(t, loop, 100*time.Millisecond)

	assert.Equal(t, attendance.EventCheckIn, loop.Mode(), "check_out mode reverts after idle timeout")
}

func TestSpoolCameraConsumesFrames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	camera, err := NewSpoolCamera(dir)
	require.NoError(t, err)

	_, err = camera.Capture(context.Background())
	assert.ErrorIs(t, err, ErrNoFrame)

	writeFrame := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	writeFrame("002.json", `[0.2]`)
	writeFrame("001.json", `[0.1]`)

	first, err := camera.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Frame(`[0.1]`), first, "oldest name first")

	second, err := camera.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Frame(`[0.2]`), second)

	_, err = camera.Capture(context.Background())
	assert.ErrorIs(t, err, ErrNoFrame, "frames are consumed")
}
