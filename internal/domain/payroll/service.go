package payroll

import "context"

// PayrollService derives payroll summaries from the attendance ledger.
type PayrollService interface {
	// MonthlyReport computes rows for every employee for a calendar
	// month ("2006-01") in the configured timezone.
	MonthlyReport(ctx context.Context, month string) (Report, error)
}
