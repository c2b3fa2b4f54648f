package settings

import (
	"time"

	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	Timezone             *string `json:"timezone,omitempty"`
	CompanyName          *string `json:"company_name,omitempty"`
	LateThresholdMinutes *int    `json:"late_threshold_minutes,omitempty"`
	WorkStart            *string `json:"work_start,omitempty"`
	WorkEnd              *string `json:"work_end,omitempty"`
	BreakStart           *string `json:"break_start,omitempty"`
	BreakEnd             *string `json:"break_end,omitempty"`
	AllowLateCheckin     *bool   `json:"allow_late_checkin,omitempty"`
	MaxLateMinutes       *int    `json:"max_late_minutes,omitempty"`
	AllowEarlyCheckout   *bool   `json:"allow_early_checkout,omitempty"`
	AllowEarlyBreakout   *bool   `json:"allow_early_breakout,omitempty"`
}

func (r UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timezone != nil {
		if _, err := time.LoadLocation(*r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{Field: "timezone", Message: "unknown timezone"})
		}
	}
	if r.LateThresholdMinutes != nil && *r.LateThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_threshold_minutes", Message: "must not be negative"})
	}
	if r.MaxLateMinutes != nil && *r.MaxLateMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "max_late_minutes", Message: "must not be negative"})
	}

	clockFields := map[string]*string{
		"work_start":  r.WorkStart,
		"work_end":    r.WorkEnd,
		"break_start": r.BreakStart,
		"break_end":   r.BreakEnd,
	}
	for field, value := range clockFields {
		if value != nil && !validator.IsValidClockTime(*value) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be HH:MM"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	Timezone             string `json:"timezone"`
	CompanyName          string `json:"company_name"`
	LateThresholdMinutes int    `json:"late_threshold_minutes"`
	WorkStart            string `json:"work_start"`
	WorkEnd              string `json:"work_end"`
	BreakStart           string `json:"break_start"`
	BreakEnd             string `json:"break_end"`
	AllowLateCheckin     bool   `json:"allow_late_checkin"`
	MaxLateMinutes       int    `json:"max_late_minutes"`
	AllowEarlyCheckout   bool   `json:"allow_early_checkout"`
	AllowEarlyBreakout   bool   `json:"allow_early_breakout"`
}

func ToResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		Timezone:             s.Timezone,
		CompanyName:          s.CompanyName,
		LateThresholdMinutes: s.LateThresholdMinutes,
		WorkStart:            s.WorkStart,
		WorkEnd:              s.WorkEnd,
		BreakStart:           s.BreakStart,
		BreakEnd:             s.BreakEnd,
		AllowLateCheckin:     s.AllowLateCheckin,
		MaxLateMinutes:       s.MaxLateMinutes,
		AllowEarlyCheckout:   s.AllowEarlyCheckout,
		AllowEarlyBreakout:   s.AllowEarlyBreakout,
	}
}
