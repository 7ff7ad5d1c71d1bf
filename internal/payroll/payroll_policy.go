package payroll

import "math"

const DefaultTaxRate = 0.15

// DeductionPolicy decides what is withheld from a monthly basic amount.
type DeductionPolicy interface {
	Deductions(basic float64) float64
}

// FlatRate withholds a fixed share of basic pay.
type FlatRate struct {
	Rate float64
}

func (f FlatRate) Deductions(basic float64) float64 {
	return basic * f.Rate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// computePayslip returns basic, allowances, deductions and net pay for one
// month of an annual salary.
func computePayslip(annualSalary float64, policy DeductionPolicy) (basic, allowances, deductions, net float64) {
	basic = round2(annualSalary / 12)
	deductions = round2(policy.Deductions(basic))
	net = round2(basic + allowances - deductions)
	return basic, allowances, deductions, net
}
