package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
	"github.com/presensia/attendance-backend-go/internal/pkg/scheduleclock"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	"github.com/presensia/attendance-backend-go/internal/service/file"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	ledgerRepo   attendance.LedgerRepository
	employeeRepo employee.EmployeeRepository
	settingsSvc  settings.SettingsService
	fileService  file.FileService

	maxDistance float64
}

// NewAttendanceService wires the scan pipeline. fileService may be nil
// when photo capture is disabled (the standalone kiosk store).
func NewAttendanceService(
	ledgerRepo attendance.LedgerRepository,
	employeeRepo employee.EmployeeRepository,
	settingsSvc settings.SettingsService,
	fileService file.FileService,
	maxDistance float64,
) attendance.AttendanceService {
	if maxDistance <= 0 {
		maxDistance = facematch.DefaultMaxDistance
	}
	return &AttendanceServiceImpl{
		ledgerRepo:   ledgerRepo,
		employeeRepo: employeeRepo,
		settingsSvc:  settingsSvc,
		fileService:  fileService,
		maxDistance:  maxDistance,
	}
}

// RecordScan implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordScan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResult{}, err
	}

	// Fresh snapshot per scan so settings edits apply immediately.
	rules, err := s.settingsSvc.Snapshot(ctx)
	if err != nil {
		return attendance.ScanResult{}, err
	}

	enrolled, err := s.employeeRepo.ListEnrolled(ctx)
	if err != nil {
		return attendance.ScanResult{}, fmt.Errorf("failed to load enrolled employees: %w", err)
	}

	candidates := make([]facematch.Candidate, 0, len(enrolled))
	for _, emp := range enrolled {
		candidates = append(candidates, facematch.Candidate{ID: emp.ID, Embedding: emp.FaceEmbedding})
	}

	matchedID, distance, err := facematch.Match(req.Embedding, candidates, s.maxDistance)
	if err != nil {
		if errors.Is(err, facematch.ErrNoCandidates) || errors.Is(err, facematch.ErrNoMatch) {
			return attendance.ScanResult{}, attendance.ErrFaceNotRecognized
		}
		return attendance.ScanResult{}, err
	}

	var matched employee.Employee
	for _, emp := range enrolled {
		if emp.ID == matchedID {
			matched = emp
			break
		}
	}

	at := req.At
	if at.IsZero() {
		at = time.Now()
	}
	loc := rules.Location()
	local := at.In(loc)
	day := local.Format("2006-01-02")

	todays, err := s.ledgerRepo.EventsForDay(ctx, matched.ID, day)
	if err != nil {
		return attendance.ScanResult{}, fmt.Errorf("failed to load today's events: %w", err)
	}

	workStart, workEnd, err := scheduleWindow(matched, rules)
	if err != nil {
		return attendance.ScanResult{}, err
	}

	status, err := EvaluatePolicy(PolicyInput{
		Requested:        attendance.EventType(req.Mode),
		Flags:            attendance.FlagsFromEvents(todays),
		NowMinutes:       local.Hour()*60 + local.Minute(),
		WorkStartMinutes: workStart,
		WorkEndMinutes:   workEnd,
		Rules:            rules,
	})
	if err != nil {
		return attendance.ScanResult{}, err
	}

	var photoURL *string
	if len(req.PhotoJPEG) > 0 && s.fileService != nil {
		path, err := s.fileService.UploadScanPhoto(ctx, matched.ID, day, req.PhotoJPEG)
		if err != nil {
			return attendance.ScanResult{}, err
		}
		photoURL = &path
	}

	event := attendance.Event{
		ID:           uuid.Must(uuid.NewV7()).String(),
		EmployeeID:   matched.ID,
		Timestamp:    at.UTC(),
		Day:          day,
		Type:         attendance.EventType(req.Mode),
		Status:       status,
		FineAmount:   decimal.Zero,
		BonusAmount:  decimal.Zero,
		PhotoURL:     photoURL,
		EmployeeName: matched.Name,
	}

	created, err := s.ledgerRepo.Append(ctx, event)
	if err != nil {
		return attendance.ScanResult{}, err
	}

	return attendance.ScanResult{
		EmployeeID:   matched.ID,
		EmployeeName: matched.Name,
		Distance:     distance,
		Event:        attendance.ToView(created),
	}, nil
}

// ListEvents implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListEvents(ctx context.Context, filter attendance.ListEventsFilter) ([]attendance.EventView, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rules, err := s.settingsSvc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	loc := rules.Location()

	// Default to today when no range is given; a single bound covers
	// just that day.
	startDay := filter.Start
	endDay := filter.End
	if startDay == "" && endDay == "" {
		startDay = time.Now().In(loc).Format("2006-01-02")
		endDay = startDay
	} else if startDay == "" {
		startDay = endDay
	} else if endDay == "" {
		endDay = startDay
	}

	start, err := time.ParseInLocation("2006-01-02", startDay, loc)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: "start", Message: "start must be YYYY-MM-DD"}}
	}
	endDate, err := time.ParseInLocation("2006-01-02", endDay, loc)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: "end", Message: "end must be YYYY-MM-DD"}}
	}
	end := endDate.AddDate(0, 0, 1)

	events, err := s.ledgerRepo.EventsInRange(ctx, filter.EmployeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	views := make([]attendance.EventView, 0, len(events))
	for _, e := range events {
		views = append(views, attendance.ToView(e))
	}
	return views, nil
}

// GetEvent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEvent(ctx context.Context, id string) (attendance.EventView, error) {
	if !validator.IsValidUUID(id) {
		return attendance.EventView{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}

	event, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.EventView{}, err
	}
	return attendance.ToView(event), nil
}

// AdjustEvent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AdjustEvent(ctx context.Context, req attendance.AdjustEventRequest) (attendance.EventView, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventView{}, err
	}

	updated, err := s.ledgerRepo.UpdateAdjustment(ctx, req.EventID, attendance.Adjustment{
		FineAmount:  req.FineAmount,
		BonusAmount: req.BonusAmount,
		AdminNotes:  req.AdminNotes,
	})
	if err != nil {
		return attendance.EventView{}, err
	}
	return attendance.ToView(updated), nil
}

// scheduleWindow resolves the employee's schedule, preferring personal
// overrides over company-wide settings.
func scheduleWindow(emp employee.Employee, rules settings.Settings) (start, end int, err error) {
	startStr := rules.WorkStart
	if emp.WorkStart != nil && *emp.WorkStart != "" {
		startStr = *emp.WorkStart
	}
	endStr := rules.WorkEnd
	if emp.WorkEnd != nil && *emp.WorkEnd != "" {
		endStr = *emp.WorkEnd
	}

	start, err = scheduleclock.MinutesSinceMidnight(startStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid work start %q: %w", startStr, err)
	}
	end, err = scheduleclock.MinutesSinceMidnight(endStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid work end %q: %w", endStr, err)
	}
	return start, end, nil
}
