package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/delaneyj/fastreactor/affordability"
	"github.com/dustin/go-humanize"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatPretty   Format = "pretty"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown format")

// Formats lists every supported output format.
func Formats() []Format {
	return []Format{FormatTable, FormatPretty, FormatMarkdown, FormatHTML, FormatCSV}
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats(), f) {
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// Write renders rankings to w in the given format. title is ignored by csv.
func Write(w io.Writer, f Format, title string, rows []affordability.Ranking) error {
	switch f {
	case FormatTable:
		return Table(w, title, rows)
	case FormatPretty:
		return Pretty(w, title, rows)
	case FormatMarkdown:
		return Markdown(w, title, rows)
	case FormatHTML:
		return HTML(w, title, rows)
	case FormatCSV:
		return CSV(w, rows)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
	}
}

var header = []string{
	"rank", "metro", "state", "home price", "income", "rent",
	"monthly cost", "cost/income", "price/income", "rent/income",
}

func cells(r affordability.Ranking) []string {
	return []string{
		strconv.Itoa(r.Rank),
		r.Metro.Name,
		r.Metro.State,
		money(r.Metro.MedianHomePrice),
		money(r.Metro.MedianHouseholdIncome),
		money(r.Metro.MedianRent),
		money(r.MonthlyCost),
		percent(r.PaymentToIncome),
		ratio(r.PriceToIncome),
		percent(r.RentToIncome),
	}
}

func money(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func ratio(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "x"
}

// Population formats a head count for captions and logs.
func Population(n int64) string {
	return humanize.Comma(n)
}
