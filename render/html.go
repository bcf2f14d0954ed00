package render

import (
	"io"

	"github.com/delaneyj/fastreactor/affordability"
	"github.com/valyala/quicktemplate"
)

//go:generate qtc -file=report.qtpl

// HTML renders an escaped html fragment.
func HTML(w io.Writer, title string, rows []affordability.Ranking) error {
	bb := quicktemplate.AcquireByteBuffer()
	defer quicktemplate.ReleaseByteBuffer(bb)

	WriteReport(bb, title, rows)
	_, err := w.Write(bb.B)
	return err
}
