package attendance

import (
	"time"

	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ScanRequest is one kiosk recognition attempt.
type ScanRequest struct {
	Mode      string              `json:"mode"`
	Embedding facematch.Embedding `json:"embedding"`

	// PhotoJPEG optionally carries the captured frame for the audit
	// trail; it is stored through file storage, never in the ledger row.
	PhotoJPEG []byte `json:"-"`

	// At overrides the scan instant. Zero means "now". The kiosk
	// stamps captures at acquisition time so a slow embedder does not
	// shift classification.
	At time.Time `json:"-"`
}

func (r ScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Mode, ValidEventTypes) {
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "mode must be one of check_in, check_out, break_out, break_in"})
	}
	if len(r.Embedding) == 0 {
		errs = append(errs, validator.ValidationError{Field: "embedding", Message: "embedding is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ScanResult reports a successful classification back to the kiosk.
type ScanResult struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Distance     float64   `json:"distance"`
	Event        EventView `json:"event"`
}

type EventView struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Employee    string          `json:"employee_name,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Day         string          `json:"day"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	FineAmount  decimal.Decimal `json:"fine_amount"`
	BonusAmount decimal.Decimal `json:"bonus_amount"`
	AdminNotes  *string         `json:"admin_notes,omitempty"`
	PhotoURL    *string         `json:"photo_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToView(e Event) EventView {
	return EventView{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		Employee:    e.EmployeeName,
		Timestamp:   e.Timestamp,
		Day:         e.Day,
		Type:        string(e.Type),
		Status:      string(e.Status),
		FineAmount:  e.FineAmount,
		BonusAmount: e.BonusAmount,
		AdminNotes:  e.AdminNotes,
		PhotoURL:    e.PhotoURL,
		CreatedAt:   e.CreatedAt,
	}
}

type ListEventsFilter struct {
	EmployeeID string
	Start      string // "2006-01-02", inclusive
	End        string // "2006-01-02", inclusive
}

func (f ListEventsFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != "" && !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if f.Start != "" {
		if _, ok := validator.IsValidDate(f.Start); !ok {
			errs = append(errs, validator.ValidationError{Field: "start", Message: "start must be YYYY-MM-DD"})
		}
	}
	if f.End != "" {
		if _, ok := validator.IsValidDate(f.End); !ok {
			errs = append(errs, validator.ValidationError{Field: "end", Message: "end must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustEventRequest struct {
	EventID     string           `json:"-"`
	FineAmount  *decimal.Decimal `json:"fine_amount,omitempty"`
	BonusAmount *decimal.Decimal `json:"bonus_amount,omitempty"`
	AdminNotes  *string          `json:"admin_notes,omitempty"`
}

func (r AdjustEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EventID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	if r.FineAmount == nil && r.BonusAmount == nil && r.AdminNotes == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one of fine_amount, bonus_amount, admin_notes is required"})
	}
	if r.FineAmount != nil && r.FineAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fine_amount", Message: "fine_amount must not be negative"})
	}
	if r.BonusAmount != nil && r.BonusAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus_amount", Message: "bonus_amount must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
