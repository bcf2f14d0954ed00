package render

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/fastreactor/affordability"
)

// CSV writes raw values, one metro per line, under a header row.
func CSV(w io.Writer, rows []affordability.Ranking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(csvRecord(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var csvHeader = []string{
	"rank", "metro", "state", "population", "median_home_price",
	"median_household_income", "median_rent", "monthly_cost",
	"payment_to_income", "price_to_income", "rent_to_income",
}

func csvRecord(r affordability.Ranking) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{
		strconv.Itoa(r.Rank),
		r.Metro.Name,
		r.Metro.State,
		strconv.FormatInt(r.Metro.Population, 10),
		f(r.Metro.MedianHomePrice),
		f(r.Metro.MedianHouseholdIncome),
		f(r.Metro.MedianRent),
		f(r.MonthlyCost),
		f(r.PaymentToIncome),
		f(r.PriceToIncome),
		f(r.RentToIncome),
	}
}

// Digest fingerprints rankings by their csv form. Equal rankings always
// share a digest.
func Digest(rows []affordability.Ranking) uint64 {
	var buf bytes.Buffer
	if err := CSV(&buf, rows); err != nil {
		panic(err)
	}
	return xxhash.Sum64(buf.Bytes())
}
