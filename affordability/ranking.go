package affordability

import (
	"cmp"
	"slices"
)

// Ranking is one metro priced under a loan. Ratios are annual cost over
// median household income.
type Ranking struct {
	Rank            int
	Metro           Metro
	MonthlyCost     float64
	PaymentToIncome float64
	PriceToIncome   float64
	RentToIncome    float64
}

func rate(loan LoanConfig, m Metro) Ranking {
	cost := loan.MonthlyCost(m.MedianHomePrice)
	income := m.MedianHouseholdIncome
	return Ranking{
		Metro:           m,
		MonthlyCost:     cost,
		PaymentToIncome: cost * 12 / income,
		PriceToIncome:   m.MedianHomePrice / income,
		RentToIncome:    m.MedianRent * 12 / income,
	}
}

// Rank prices every metro, orders them from most to least affordable and
// keeps the first topN (all when topN is 0).
func Rank(loan LoanConfig, metros []Metro, topN int) []Ranking {
	out := make([]Ranking, 0, len(metros))
	for _, m := range metros {
		out = append(out, rate(loan, m))
	}
	slices.SortStableFunc(out, func(a, b Ranking) int {
		if c := cmp.Compare(a.PaymentToIncome, b.PaymentToIncome); c != 0 {
			return c
		}
		return cmp.Compare(a.Metro.Name, b.Metro.Name)
	})
	if topN > 0 && topN < len(out) {
		out = out[:topN]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
