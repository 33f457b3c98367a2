package render

import (
	"io"

	"github.com/go-pdf/fpdf"
)

// FPDFWriter draws an A4 portrait document with the core Helvetica font.
// Text is translated from UTF-8 to cp1252, which covers Portuguese and English.
type FPDFWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewFPDFWriter returns a DocWriter backed by fpdf.
func NewFPDFWriter() DocWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 12)
	return &FPDFWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// SetFontSize sets the font size in points.
func (w *FPDFWriter) SetFontSize(pt float64) { w.pdf.SetFontSize(pt) }

// Text draws s at (x, y) in millimetres.
func (w *FPDFWriter) Text(x, y float64, s string) { w.pdf.Text(x, y, w.tr(s)) }

// SplitText wraps s to lines no wider than width.
func (w *FPDFWriter) SplitText(s string, width float64) []string {
	return wrapWords(s, width, func(t string) float64 {
		return w.pdf.GetStringWidth(w.tr(t))
	})
}

// AddPage starts a new page.
func (w *FPDFWriter) AddPage() { w.pdf.AddPage() }

// SetDrawColor sets the colour used by Line.
func (w *FPDFWriter) SetDrawColor(r, g, b int) { w.pdf.SetDrawColor(r, g, b) }

// Line draws a straight line.
func (w *FPDFWriter) Line(x1, y1, x2, y2 float64) { w.pdf.Line(x1, y1, x2, y2) }

// Output reports any error fpdf accumulated while drawing.
func (w *FPDFWriter) Output(out io.Writer) error {
	if err := w.pdf.Error(); err != nil {
		return err
	}
	return w.pdf.Output(out)
}
