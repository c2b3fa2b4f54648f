package payroll

import (
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// SummaryRow is one employee's derived payroll line for a month. Rows
// are computed from the attendance ledger on demand and never stored.
type SummaryRow struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeName string            `json:"employee_name"`
	IsActive     bool              `json:"is_active"`
	WageType     employee.WageType `json:"wage_type"`
	BaseWage     decimal.Decimal   `json:"base_wage"`

	DaysPresent int `json:"days_present"`
	LateCount   int `json:"late_count"`

	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`

	TotalFines   decimal.Decimal `json:"total_fines"`
	TotalBonuses decimal.Decimal `json:"total_bonuses"`

	// EstimatedSalary = base + bonuses + overtime - fines, rounded to
	// a whole currency unit. Base is the monthly wage, or the daily
	// wage times days present.
	EstimatedSalary decimal.Decimal `json:"estimated_salary"`
}

// Report is the monthly payroll view for all employees.
type Report struct {
	Month string       `json:"month"` // "2006-01"
	Rows  []SummaryRow `json:"rows"`

	TotalEstimated decimal.Decimal `json:"total_estimated"`
}
