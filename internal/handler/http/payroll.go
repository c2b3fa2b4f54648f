package http

import (
	"net/http"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/payroll"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type PayrollHandler struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return PayrollHandler{payrollService: payrollService}
}

// Report handles GET /api/v1/payroll/report?month=YYYY-MM. The month
// defaults to the current one.
func (h PayrollHandler) Report(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	report, err := h.payrollService.MonthlyReport(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}
