package employee

import (
	"time"

	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name               string          `json:"name"`
	WorkStart          *string         `json:"work_start,omitempty"`
	WorkEnd            *string         `json:"work_end,omitempty"`
	WageType           string          `json:"wage_type"`
	BaseWage           decimal.Decimal `json:"base_wage"`
	OvertimeHourlyRate decimal.Decimal `json:"overtime_hourly_rate"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsInSlice(r.WageType, ValidWageTypes) {
		errs = append(errs, validator.ValidationError{Field: "wage_type", Message: "wage_type must be monthly or daily"})
	}
	if r.BaseWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_wage", Message: "base_wage must not be negative"})
	}
	if r.OvertimeHourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hourly_rate", Message: "overtime_hourly_rate must not be negative"})
	}
	if r.WorkStart != nil && !validator.IsValidClockTime(*r.WorkStart) {
		errs = append(errs, validator.ValidationError{Field: "work_start", Message: "work_start must be HH:MM"})
	}
	if r.WorkEnd != nil && !validator.IsValidClockTime(*r.WorkEnd) {
		errs = append(errs, validator.ValidationError{Field: "work_end", Message: "work_end must be HH:MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                 string           `json:"-"`
	Name               *string          `json:"name,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
	WorkStart          *string          `json:"work_start,omitempty"`
	WorkEnd            *string          `json:"work_end,omitempty"`
	WageType           *string          `json:"wage_type,omitempty"`
	BaseWage           *decimal.Decimal `json:"base_wage,omitempty"`
	OvertimeHourlyRate *decimal.Decimal `json:"overtime_hourly_rate,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.WageType != nil && !validator.IsInSlice(*r.WageType, ValidWageTypes) {
		errs = append(errs, validator.ValidationError{Field: "wage_type", Message: "wage_type must be monthly or daily"})
	}
	if r.BaseWage != nil && r.BaseWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_wage", Message: "base_wage must not be negative"})
	}
	if r.OvertimeHourlyRate != nil && r.OvertimeHourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hourly_rate", Message: "overtime_hourly_rate must not be negative"})
	}
	if r.WorkStart != nil && !validator.IsValidClockTime(*r.WorkStart) {
		errs = append(errs, validator.ValidationError{Field: "work_start", Message: "work_start must be HH:MM"})
	}
	if r.WorkEnd != nil && !validator.IsValidClockTime(*r.WorkEnd) {
		errs = append(errs, validator.ValidationError{Field: "work_end", Message: "work_end must be HH:MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EnrollFaceRequest struct {
	EmployeeID string              `json:"-"`
	Embedding  facematch.Embedding `json:"embedding"`
}

func (r EnrollFaceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	if len(r.Embedding) == 0 {
		errs = append(errs, validator.ValidationError{Field: "embedding", Message: "embedding is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	IsActive           bool            `json:"is_active"`
	WorkStart          *string         `json:"work_start,omitempty"`
	WorkEnd            *string         `json:"work_end,omitempty"`
	WageType           string          `json:"wage_type"`
	BaseWage           decimal.Decimal `json:"base_wage"`
	OvertimeHourlyRate decimal.Decimal `json:"overtime_hourly_rate"`
	FaceEnrolled       bool            `json:"face_enrolled"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                 e.ID,
		Name:               e.Name,
		IsActive:           e.IsActive,
		WorkStart:          e.WorkStart,
		WorkEnd:            e.WorkEnd,
		WageType:           string(e.WageType),
		BaseWage:           e.BaseWage,
		OvertimeHourlyRate: e.OvertimeHourlyRate,
		FaceEnrolled:       e.Enrolled(),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
