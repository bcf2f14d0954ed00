package render

import (
	"io"

	"github.com/delaneyj/fastreactor/affordability"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
)

// Table renders an ASCII grid with the title as caption.
func Table(w io.Writer, title string, rows []affordability.Ranking) error {
	tbl := newTableWriter(w, rows)
	if title != "" {
		tbl.SetCaption(true, title)
	}
	tbl.Render()
	return nil
}

// Markdown renders a GitHub flavored table preceded by the title as a
// heading.
func Markdown(w io.Writer, title string, rows []affordability.Ranking) error {
	if title != "" {
		if _, err := io.WriteString(w, "### "+title+"\n\n"); err != nil {
			return err
		}
	}
	tbl := newTableWriter(w, rows)
	tbl.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	tbl.SetCenterSeparator("|")
	tbl.Render()
	return nil
}

func newTableWriter(w io.Writer, rows []affordability.Ranking) *tablewriter.Table {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader(header)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAutoWrapText(false)
	for _, r := range rows {
		tbl.Append(cells(r))
	}
	return tbl
}

// Pretty renders a box drawn table.
func Pretty(w io.Writer, title string, rows []affordability.Ranking) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	if title != "" {
		tbl.SetTitle(title)
	}

	hdr := make(table.Row, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	tbl.AppendHeader(hdr)
	for _, r := range rows {
		c := cells(r)
		row := make(table.Row, len(c))
		for i, v := range c {
			row[i] = v
		}
		tbl.AppendRow(row)
	}
	tbl.AppendFooter(table.Row{"", "metros", len(rows)})
	tbl.Render()
	return nil
}
