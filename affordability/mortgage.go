package affordability

import "math"

// MonthlyPayment is the fixed principal and interest payment that amortizes
// principal over termYears at an annual ratePercent.
func MonthlyPayment(principal, ratePercent float64, termYears int) float64 {
	n := float64(termYears * 12)
	if n <= 0 || principal <= 0 {
		return 0
	}
	r := ratePercent / 100 / 12
	if r == 0 {
		return principal / n
	}
	f := math.Pow(1+r, n)
	return principal * r * f / (f - 1)
}

// Principal is the amount financed after the down payment.
func (l LoanConfig) Principal(price float64) float64 {
	return price * (1 - l.DownPaymentPercent/100)
}

// MonthlyCost is the full monthly housing cost of buying at price: principal,
// interest, property tax and insurance.
func (l LoanConfig) MonthlyCost(price float64) float64 {
	pi := MonthlyPayment(l.Principal(price), l.RatePercent, l.TermYears)
	tax := price * l.PropertyTaxPercent / 100 / 12
	return pi + tax + l.InsuranceAnnual/12
}
