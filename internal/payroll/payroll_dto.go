package payroll

import (
	"time"

	"github.com/YugandharPise/SME-HR/internal/store"
)

type RunPayrollRequest struct {
	Period string `json:"period"`
}

type RunPayrollResponse struct {
	Message           string `json:"message"`
	Period            string `json:"period"`
	PayslipsGenerated int    `json:"payslips_generated"`
}

type PayslipResponse struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Period       string    `json:"period"`
	PayDate      time.Time `json:"pay_date"`
	Basic        float64   `json:"basic"`
	Allowances   float64   `json:"allowances"`
	Deductions   float64   `json:"deductions"`
	NetPay       float64   `json:"net_pay"`
	FilePath     string    `json:"file_path"`
}

func mapToResponse(p store.Payslip) PayslipResponse {
	return PayslipResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Period:       p.Period,
		PayDate:      p.PayDate,
		Basic:        p.Basic,
		Allowances:   p.Allowances,
		Deductions:   p.Deductions,
		NetPay:       p.NetPay,
		FilePath:     p.ArtifactPath,
	}
}

func mapToListResponse(slips []store.Payslip) []PayslipResponse {
	res := make([]PayslipResponse, len(slips))
	for i, p := range slips {
		res[i] = mapToResponse(p)
	}
	return res
}
