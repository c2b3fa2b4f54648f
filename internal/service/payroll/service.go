package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	"github.com/presensia/attendance-backend-go/internal/domain/payroll"
	"github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/pkg/scheduleclock"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

type PayrollServiceImpl struct {
	ledgerRepo   attendance.LedgerRepository
	employeeRepo employee.EmployeeRepository
	settingsSvc  settings.SettingsService
}

func NewPayrollService(
	ledgerRepo attendance.LedgerRepository,
	employeeRepo employee.EmployeeRepository,
	settingsSvc settings.SettingsService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		ledgerRepo:   ledgerRepo,
		employeeRepo: employeeRepo,
		settingsSvc:  settingsSvc,
	}
}

// MonthlyReport implements payroll.PayrollService.
func (s *PayrollServiceImpl) MonthlyReport(ctx context.Context, month string) (payroll.Report, error) {
	monthStart, ok := validator.IsValidMonth(month)
	if !ok {
		return payroll.Report{}, validator.ValidationErrors{{Field: "month", Message: "month must be YYYY-MM"}}
	}

	rules, err := s.settingsSvc.Snapshot(ctx)
	if err != nil {
		return payroll.Report{}, err
	}
	loc := rules.Location()

	start := time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	// Inactive employees keep appearing in reports for months they
	// worked; filtering happens in the UI, not here.
	employees, err := s.employeeRepo.List(ctx, true)
	if err != nil {
		return payroll.Report{}, fmt.Errorf("failed to list employees: %w", err)
	}

	report := payroll.Report{
		Month:          month,
		Rows:           make([]payroll.SummaryRow, 0, len(employees)),
		TotalEstimated: decimal.Zero,
	}

	for _, emp := range employees {
		events, err := s.ledgerRepo.EventsInRange(ctx, emp.ID, start, end)
		if err != nil {
			return payroll.Report{}, fmt.Errorf("failed to load events for %s: %w", emp.ID, err)
		}

		row := ComputeSummary(emp, events, rules)
		report.Rows = append(report.Rows, row)
		report.TotalEstimated = report.TotalEstimated.Add(row.EstimatedSalary)
	}

	return report, nil
}

// ComputeSummary derives one employee's payroll line from their ledger
// events for the period. Pure; all money stays decimal until the final
// whole-unit rounding.
func ComputeSummary(emp employee.Employee, events []attendance.Event, rules settings.Settings) payroll.SummaryRow {
	type dayEvents map[attendance.EventType]attendance.Event
	byDay := make(map[string]dayEvents)

	totalFines := decimal.Zero
	totalBonuses := decimal.Zero

	for _, e := range events {
		day, ok := byDay[e.Day]
		if !ok {
			day = make(dayEvents)
			byDay[e.Day] = day
		}
		// The ledger guarantees one event per type per day; first
		// wins if a store without the constraint sneaks in extras.
		if _, exists := day[e.Type]; !exists {
			day[e.Type] = e
		}

		totalFines = totalFines.Add(e.FineAmount)
		totalBonuses = totalBonuses.Add(e.BonusAmount)
	}

	scheduled := scheduledMinutes(emp, rules)

	daysPresent := 0
	lateCount := 0
	overtimeMinutes := 0

	for _, day := range byDay {
		checkIn, hasCheckIn := day[attendance.EventCheckIn]
		if !hasCheckIn {
			continue
		}
		daysPresent++
		if checkIn.Status == attendance.StatusLate {
			lateCount++
		}

		checkOut, hasCheckOut := day[attendance.EventCheckOut]
		if !hasCheckOut {
			continue
		}

		net := int(checkOut.Timestamp.Sub(checkIn.Timestamp).Minutes())

		breakOut, hasBreakOut := day[attendance.EventBreakOut]
		breakIn, hasBreakIn := day[attendance.EventBreakIn]
		if hasBreakOut && hasBreakIn {
			if pause := int(breakIn.Timestamp.Sub(breakOut.Timestamp).Minutes()); pause > 0 {
				net -= pause
			}
		}

		if extra := net - scheduled; extra > 0 {
			overtimeMinutes += extra
		}
	}

	overtimeHours := decimal.NewFromInt(int64(overtimeMinutes)).Div(sixty)
	overtimePay := overtimeHours.Mul(emp.OvertimeHourlyRate)

	base := emp.BaseWage
	if emp.WageType == employee.WageDaily {
		base = emp.BaseWage.Mul(decimal.NewFromInt(int64(daysPresent)))
	}

	estimated := base.Add(totalBonuses).Add(overtimePay).Sub(totalFines).Round(0)

	return payroll.SummaryRow{
		EmployeeID:      emp.ID,
		EmployeeName:    emp.Name,
		IsActive:        emp.IsActive,
		WageType:        emp.WageType,
		BaseWage:        emp.BaseWage,
		DaysPresent:     daysPresent,
		LateCount:       lateCount,
		OvertimeHours:   overtimeHours,
		OvertimePay:     overtimePay,
		TotalFines:      totalFines,
		TotalBonuses:    totalBonuses,
		EstimatedSalary: estimated,
	}
}

func scheduledMinutes(emp employee.Employee, rules settings.Settings) int {
	startStr := rules.WorkStart
	if emp.WorkStart != nil && *emp.WorkStart != "" {
		startStr = *emp.WorkStart
	}
	endStr := rules.WorkEnd
	if emp.WorkEnd != nil && *emp.WorkEnd != "" {
		endStr = *emp.WorkEnd
	}

	start, err := scheduleclock.MinutesSinceMidnight(startStr)
	if err != nil {
		start, _ = scheduleclock.MinutesSinceMidnight(settings.Defaults().WorkStart)
	}
	end, err := scheduleclock.MinutesSinceMidnight(endStr)
	if err != nil {
		end, _ = scheduleclock.MinutesSinceMidnight(settings.Defaults().WorkEnd)
	}

	return scheduleclock.SpanMinutes(start, end)
}
