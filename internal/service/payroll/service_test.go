package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/employee"
	domainSettings "github.com/presensia/attendance-backend-go/internal/domain/settings"
	"github.com/presensia/attendance-backend-go/internal/repository/memory"
	settingsService "github.com/presensia/attendance-backend-go/internal/service/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmployee(wageType employee.WageType, baseWage int64) employee.Employee {
	return employee.Employee{
		ID:                 uuid.Must(uuid.NewV7()).String(),
		Name:               "Sari",
		IsActive:           true,
		WageType:           wageType,
		BaseWage:           decimal.NewFromInt(baseWage),
		OvertimeHourlyRate: decimal.NewFromInt(20_000),
	}
}

func event(empID, day, clock string, eventType attendance.EventType, status attendance.Status) attendance.Event {
	ts, err := time.Parse("2006-01-02 15:04", day+" "+clock)
	if err != nil {
		panic(err)
	}
	return attendance.Event{
		ID:          uuid.Must(uuid.NewV7()).String(),
		EmployeeID:  empID,
		Timestamp:   ts.UTC(),
		Day:         day,
		Type:        eventType,
		Status:      status,
		FineAmount:  decimal.Zero,
		BonusAmount: decimal.Zero,
	}
}

func TestComputeSummaryOvertimeAndAdjustments(t *testing.T) {
	t.Parallel()

	emp := testEmployee(employee.WageMonthly, 3_000_000)
	rules := domainSettings.Defaults() // 07:00-15:00, 480 scheduled minutes

	// One 07:00-19:00 day with a one hour break: 660 net minutes,
	// 180 minutes of overtime.
	checkIn := event(emp.ID, "2026-03-02", "07:00", attendance.EventCheckIn, attendance.StatusOnTime)
	checkIn.FineAmount = decimal.NewFromInt(50_000)
	checkOut := event(emp.ID, "2026-03-02", "19:00", attendance.EventCheckOut, attendance.StatusOvertime)
	checkOut.BonusAmount = decimal.NewFromInt(100_000)

	events := []attendance.Event{
		checkIn,
		event(emp.ID, "2026-03-02", "11:00", attendance.EventBreakOut, attendance.StatusBreak),
		event(emp.ID, "2026-03-02", "12:00", attendance.EventBreakIn, attendance.StatusBreak),
		checkOut,
	}

	row := ComputeSummary(emp, events, rules)

	assert.Equal(t, 1, row.DaysPresent)
	assert.Equal(t, 0, row.LateCount)
	assert.True(t, row.OvertimeHours.Equal(decimal.NewFromInt(3)), "got %s overtime hours", row.OvertimeHours)
	assert.True(t, row.OvertimePay.Equal(decimal.NewFromInt(60_000)), "got %s overtime pay", row.OvertimePay)
	assert.True(t, row.TotalFines.Equal(decimal.NewFromInt(50_000)))
	assert.True(t, row.TotalBonuses.Equal(decimal.NewFromInt(100_000)))

	// 3_000_000 + 100_000 + 60_000 - 50_000
	assert.True(t, row.EstimatedSalary.Equal(decimal.NewFromInt(3_110_000)), "got %s", row.EstimatedSalary)
}

func TestComputeSummaryMonthlyAdjustmentsOnly(t *testing.T) {
	t.Parallel()

	emp := testEmployee(employee.WageMonthly, 5_000_000)
	rules := domainSettings.Defaults()

	late := event(emp.ID, "2026-03-02", "07:20", attendance.EventCheckIn, attendance.StatusLate)
	late.FineAmount = decimal.NewFromInt(50_000)
	bonus := event(emp.ID, "2026-03-05", "07:00", attendance.EventCheckIn, attendance.StatusOnTime)
	bonus.BonusAmount = decimal.NewFromInt(100_000)

	row := ComputeSummary(emp, []attendance.Event{late, bonus}, rules)

	assert.Equal(t, 1, row.LateCount)
	// 5_000_000 + 100_000 - 50_000
	assert.True(t, row.EstimatedSalary.Equal(decimal.NewFromInt(5_050_000)), "got %s", row.EstimatedSalary)
}

func TestComputeSummaryDailyWageWithOvertime(t *testing.T) {
	t.Parallel()

	emp := testEmployee(employee.WageDaily, 100_000)
	rules := domainSettings.Defaults()

	// Twenty days present; the first runs 07:00-19:00 with a one hour
	// break, which is 3 hours past the 480 scheduled minutes.
	events := []attendance.Event{
		event(emp.ID, "2026-03-01", "07:00", attendance.EventCheckIn, attendance.StatusOnTime),
		event(emp.ID, "2026-03-01", "11:00", attendance.EventBreakOut, attendance.StatusBreak),
		event(emp.ID, "2026-03-01", "12:00", attendance.EventBreakIn, attendance.StatusBreak),
		event(emp.ID, "2026-03-01", "19:00", attendance.EventCheckOut, attendance.StatusOvertime),
	}
	for day := 2; day <= 20; day++ {
		events = append(events,
			event(emp.ID, fmt.Sprintf("2026-03-%02d", day), "07:00", attendance.EventCheckIn, attendance.StatusOnTime))
	}

	row := ComputeSummary(emp, events, rules)

	assert.Equal(t, 20, row.DaysPresent)
	assert.True(t, row.OvertimeHours.Equal(decimal.NewFromInt(3)), "got %s", row.OvertimeHours)
	// 100_000*20 + 3*20_000
	assert.True(t, row.EstimatedSalary.Equal(decimal.NewFromInt(2_060_000)), "got %s", row.EstimatedSalary)
}

func TestComputeSummaryLateCount(t *testing.T) {
	t.Parallel()

	emp := testEmployee(employee.WageMonthly, 3_000_000)
	rules := domainSettings.Defaults()

	events := []attendance.Event{
		event(emp.ID, "2026-03-02", "07:20", attendance.EventCheckIn, attendance.StatusLate),
		event(emp.ID, "2026-03-03", "07:00", attendance.EventCheckIn, attendance.StatusOnTime),
		event(emp.ID, "2026-03-04", "07:40", attendance.EventCheckIn, attendance.StatusLate),
	}

	row := ComputeSummary(emp, events, rules)
	assert.Equal(t, 3, row.DaysPresent)
	assert.Equal(t, 2, row.LateCount)
	assert.True(t, row.OvertimeHours.IsZero(), "days without check-out accrue no overtime")
}

func TestComputeSummaryDailyWage(t *testing.T) {
	t.Parallel()

	emp := testEmployee(employee.WageDaily, 150_000)
	rules := domainSettings.Defaults()

	var events []attendance.Event
	for day := 2; day <= 4; day++ {
		events = append(events,
			event(emp.ID, fmt.Sprintf("2026-03-%02d", day), "07:00", attendance.EventCheckIn, attendance.StatusOnTime))
	}

	row := ComputeSummary(emp, events, rules)
	assert.Equal(t, 3, row.DaysPresent)
	assert.True(t, row.EstimatedSalary.Equal(decimal.NewFromInt(450_000)), "got %s", row.EstimatedSalary)
}

// Adding a day present never lowers a daily-wage salary.
func TestComputeSummaryDailyWageMonotonic(t *testing.T) {
	t.Parallel()

	emp := testEmployee(employee.WageDaily, 150_000)
	rules := domainSettings.Defaults()

	var events []attendance.Event
	previous := decimal.Zero
	for day := 1; day <= 10; day++ {
		events = append(events,
			event(emp.ID, fmt.Sprintf("2026-03-%02d", day), "07:00", attendance.EventCheckIn, attendance.StatusOnTime))
		row := ComputeSummary(emp, events, rules)
		assert.True(t, row.EstimatedSalary.GreaterThanOrEqual(previous),
			"day %d: %s < %s", day, row.EstimatedSalary, previous)
		previous = row.EstimatedSalary
	}
}

func TestComputeSummaryZeroEvents(t *testing.T) {
	t.Parallel()

	rules := domainSettings.Defaults()

	monthly := ComputeSummary(testEmployee(employee.WageMonthly, 3_000_000), nil, rules)
	assert.Equal(t, 0, monthly.DaysPresent)
	assert.True(t, monthly.EstimatedSalary.Equal(decimal.NewFromInt(3_000_000)))

	daily := ComputeSummary(testEmployee(employee.WageDaily, 150_000), nil, rules)
	assert.True(t, daily.EstimatedSalary.IsZero())
}

func TestComputeSummaryNegativeBreakIgnored(t *testing.T) {
	t.Parallel()

	emp := testEmployee(employee.WageMonthly, 3_000_000)
	rules := domainSettings.Defaults()

	// break_in recorded before break_out (clock skew): the pause must
	// not be subtracted, never added.
	events := []attendance.Event{
		event(emp.ID, "2026-03-02", "07:00", attendance.EventCheckIn, attendance.StatusOnTime),
		event(emp.ID, "2026-03-02", "11:30", attendance.EventBreakIn, attendance.StatusBreak),
		event(emp.ID, "2026-03-02", "11:45", attendance.EventBreakOut, attendance.StatusBreak),
		event(emp.ID, "2026-03-02", "16:00", attendance.EventCheckOut, attendance.StatusOvertime),
	}

	row := ComputeSummary(emp, events, rules)
	// 540 net minutes against 480 scheduled, break ignored.
	assert.True(t, row.OvertimeHours.Equal(decimal.NewFromInt(1)), "got %s", row.OvertimeHours)
}

func TestMonthlyReport(t *testing.T) {
	t.Parallel()

	employees := memory.NewEmployeeStore()
	ledger := memory.NewLedgerStore()
	settingsStore := memory.NewSettingsStore()
	require.NoError(t, settingsStore.UpsertAll(context.Background(), map[string]string{
		domainSettings.KeyTimezone: "UTC",
	}))

	settingsSvc := settingsService.NewSettingsService(settingsStore)
	svc := NewPayrollService(ledger, employees, settingsSvc)

	emp := testEmployee(employee.WageMonthly, 3_000_000)
	_, err := employees.Create(context.Background(), emp)
	require.NoError(t, err)

	idle := testEmployee(employee.WageDaily, 150_000)
	idle.Name = "Budi"
	_, err = employees.Create(context.Background(), idle)
	require.NoError(t, err)

	_, err = ledger.Append(context.Background(),
		event(emp.ID, "2026-03-02", "07:00", attendance.EventCheckIn, attendance.StatusOnTime))
	require.NoError(t, err)

	// An event outside the month must not count.
	_, err = ledger.Append(context.Background(),
		event(emp.ID, "2026-04-01", "07:00", attendance.EventCheckIn, attendance.StatusOnTime))
	require.NoError(t, err)

	report, err := svc.MonthlyReport(context.Background(), "2026-03")
	require.NoError(t, err)

	assert.Equal(t, "2026-03", report.Month)
	require.Len(t, report.Rows, 2)

	rows := map[string]bool{}
	for _, row := range report.Rows {
		rows[row.EmployeeID] = true
		if row.EmployeeID == emp.ID {
			assert.Equal(t, 1, row.DaysPresent)
		}
		if row.EmployeeID == idle.ID {
			assert.Equal(t, 0, row.DaysPresent)
			assert.True(t, row.EstimatedSalary.IsZero())
		}
	}
	assert.Len(t, rows, 2)
	assert.True(t, report.TotalEstimated.Equal(decimal.NewFromInt(3_000_000)))

	_, err = svc.MonthlyReport(context.Background(), "March 2026")
	assert.Error(t, err)
}
