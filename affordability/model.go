package affordability

import (
	"github.com/delaneyj/fastreactor/reactor"
)

// Model keeps a ranking up to date as loan terms, filters or the metro list
// change. Every input is a reactive cell; rankings recompute on demand, or
// immediately once something watches them.
type Model struct {
	tr *reactor.Tracker

	Rate          *reactor.State[float64]
	DownPayment   *reactor.State[float64]
	TermYears     *reactor.State[int]
	PropertyTax   *reactor.State[float64]
	Insurance     *reactor.State[float64]
	MinPopulation *reactor.State[int64]
	TopN          *reactor.State[int]
	Metros        *reactor.ReactiveList[Metro]

	loan     *reactor.Computed[LoanConfig]
	eligible *reactor.Computed[[]Metro]
	rankings *reactor.Computed[[]Ranking]
}

func NewModel(tr *reactor.Tracker, cfg Config) *Model {
	m := &Model{
		tr:            tr,
		Rate:          reactor.NewState(tr, cfg.Loan.RatePercent),
		DownPayment:   reactor.NewState(tr, cfg.Loan.DownPaymentPercent),
		TermYears:     reactor.NewState(tr, cfg.Loan.TermYears),
		PropertyTax:   reactor.NewState(tr, cfg.Loan.PropertyTaxPercent),
		Insurance:     reactor.NewState(tr, cfg.Loan.InsuranceAnnual),
		MinPopulation: reactor.NewState(tr, cfg.Filter.MinPopulation),
		TopN:          reactor.NewState(tr, cfg.Filter.TopN),
		Metros:        reactor.NewReactiveList(tr, cfg.Metros...),
	}

	m.loan = reactor.NewComputed(tr, func() LoanConfig {
		return LoanConfig{
			RatePercent:        m.Rate.Get(),
			DownPaymentPercent: m.DownPayment.Get(),
			TermYears:          m.TermYears.Get(),
			PropertyTaxPercent: m.PropertyTax.Get(),
			InsuranceAnnual:    m.Insurance.Get(),
		}
	})
	m.eligible = m.Metros.Filter(func(metro Metro) bool {
		return metro.Population >= m.MinPopulation.Get()
	})
	m.rankings = reactor.NewComputed(tr, func() []Ranking {
		return Rank(m.loan.Get(), m.eligible.Get(), m.TopN.Get())
	})
	return m
}

// Loan is the current loan terms as one value.
func (m *Model) Loan() *reactor.Computed[LoanConfig] {
	return m.loan
}

// Eligible is the metros that pass the population filter, in list order.
func (m *Model) Eligible() *reactor.Computed[[]Metro] {
	return m.eligible
}

func (m *Model) Rankings() *reactor.Computed[[]Ranking] {
	return m.rankings
}

// Apply pushes a whole config into the model's inputs.
func (m *Model) Apply(cfg Config) {
	m.Rate.Set(cfg.Loan.RatePercent)
	m.DownPayment.Set(cfg.Loan.DownPaymentPercent)
	m.TermYears.Set(cfg.Loan.TermYears)
	m.PropertyTax.Set(cfg.Loan.PropertyTaxPercent)
	m.Insurance.Set(cfg.Loan.InsuranceAnnual)
	m.MinPopulation.Set(cfg.Filter.MinPopulation)
	m.TopN.Set(cfg.Filter.TopN)
	m.Metros.Replace(cfg.Metros)
}

// Summary is a flat view of the model suitable for headers and logs.
type Summary struct {
	RatePercent     float64 `reactor:"rate"`
	Ranked          int     `reactor:"ranked"`
	MostAffordable  string  `reactor:"most_affordable"`
	LeastAffordable string  `reactor:"least_affordable"`
}

// BindSummary keeps s in sync with the model until the returned func is
// called.
func (m *Model) BindSummary(s *Summary) (func(), error) {
	ranked := reactor.Map(m.rankings, func(rs []Ranking) int { return len(rs) })
	most := reactor.Map(m.rankings, func(rs []Ranking) string {
		if len(rs) == 0 {
			return ""
		}
		return rs[0].Metro.Name
	})
	least := reactor.Map(m.rankings, func(rs []Ranking) string {
		if len(rs) == 0 {
			return ""
		}
		return rs[len(rs)-1].Metro.Name
	})

	unbind, err := reactor.Hydrate(s, map[string]any{
		"rate":             m.Rate,
		"ranked":           ranked,
		"most_affordable":  most,
		"least_affordable": least,
	})
	if err != nil {
		return nil, err
	}
	return func() {
		unbind()
		ranked.Dispose()
		most.Dispose()
		least.Dispose()
	}, nil
}
