package employee

import (
	"time"

	"github.com/presensia/attendance-backend-go/internal/pkg/facematch"
	"github.com/shopspring/decimal"
)

type WageType string

const (
	WageMonthly WageType = "monthly"
	WageDaily   WageType = "daily"
)

var ValidWageTypes = []string{string(WageMonthly), string(WageDaily)}

// Employee is a staff member enrolled in the attendance system.
// Employees are never hard-deleted; deactivation clears IsActive so
// historical attendance and payroll rows stay resolvable.
type Employee struct {
	ID       string
	Name     string
	IsActive bool

	// WorkStart/WorkEnd override the company-wide schedule when set,
	// as "HH:MM" clock strings.
	WorkStart *string
	WorkEnd   *string

	WageType           WageType
	BaseWage           decimal.Decimal
	OvertimeHourlyRate decimal.Decimal

	// FaceEmbedding is nil until the employee's face is enrolled.
	// A re-scan replaces it wholesale.
	FaceEmbedding facematch.Embedding

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Enrolled reports whether the employee can be recognized at the kiosk.
func (e Employee) Enrolled() bool {
	return len(e.FaceEmbedding) > 0
}
