package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"

	"github.com/dshills/swotboard/internal/locale"
	"github.com/dshills/swotboard/internal/sanitize"
	"github.com/dshills/swotboard/internal/schema"
)

// DocWriter is the page-drawing capability the document layout needs. Coordinates are
// millimetres from the top-left corner of the current page.
type DocWriter interface {
	SetFontSize(pt float64)
	Text(x, y float64, s string)
	// SplitText wraps s into lines no wider than width at the current font size.
	SplitText(s string, width float64) []string
	AddPage()
	SetDrawColor(r, g, b int)
	Line(x1, y1, x2, y2 float64)
	Output(w io.Writer) error
}

// Layout constants, in millimetres on an A4 page.
const (
	marginX       = 20.0
	indentX       = 25.0
	topY          = 20.0
	pageBottomY   = 287.0
	lineHeight    = 5.0
	itemWidth     = 170.0
	detailWidth   = 165.0
	itemBreakY    = 270.0 // checked after each data item
	findingBreakY = 240.0 // checked before each finding; a finding block needs room
	dividerEndX   = 190.0
)

type pdfRenderer struct {
	newWriter func() DocWriter
}

func (p *pdfRenderer) Render(report *Report) (out []byte, err error) {
	// The writer is third-party drawing code; a panic there must not take the session down.
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = goerr.New("document writer failed",
				goerr.V("panic", fmt.Sprint(rec)), goerr.T(ErrTagExport))
		}
	}()

	w := p.newWriter()
	layoutDocument(w, report)

	var buf bytes.Buffer
	if err := w.Output(&buf); err != nil {
		return nil, goerr.Wrap(err, "writing document", goerr.T(ErrTagExport))
	}
	return buf.Bytes(), nil
}

// page tracks the vertical cursor and starts a new page when it runs out of room.
type page struct {
	w DocWriter
	y float64
}

func (p *page) breakIfBelow(limit float64) {
	if p.y > limit {
		p.w.AddPage()
		p.y = topY
	}
}

// lines writes wrapped text one line per lineHeight, breaking mid-block if a single
// entry is taller than the remaining page.
func (p *page) lines(x float64, lines []string) {
	for i, l := range lines {
		if i > 0 {
			p.y += lineHeight
		}
		if p.y > pageBottomY {
			p.w.AddPage()
			p.y = topY
		}
		p.w.Text(x, p.y, l)
	}
}

func layoutDocument(w DocWriter, report *Report) {
	cat := report.catalog()
	p := &page{w: w, y: topY}
	w.AddPage()

	w.SetFontSize(20)
	w.Text(marginX, p.y, cat.ReportTitle)
	p.y += 15

	w.SetFontSize(10)
	w.Text(marginX, p.y, fmt.Sprintf("%s: %s", cat.GeneratedAt, cat.FormatDate(report.GeneratedAt)))
	p.y += 20

	w.SetFontSize(18)
	w.Text(marginX, p.y, cat.DataSection)
	p.y += 15

	for _, c := range schema.Categories {
		items := report.Data.Items(c)
		if len(items) == 0 {
			continue
		}
		w.SetFontSize(16)
		w.Text(marginX, p.y, cat.CategoryTitle(c))
		p.y += 10

		for i, item := range items {
			w.SetFontSize(12)
			p.lines(indentX, w.SplitText(itemLine(cat, i, item), itemWidth))
			p.y += lineHeight + 5
			p.breakIfBelow(itemBreakY)
		}
		p.y += 10
	}

	if len(report.Findings) == 0 {
		return
	}

	w.AddPage()
	p.y = topY

	w.SetFontSize(18)
	w.Text(marginX, p.y, cat.AnalysisSection)
	p.y += 15

	w.SetFontSize(12)
	w.Text(marginX, p.y, cat.AnalysisIntro)
	p.y += 15

	for i, f := range report.Findings {
		p.breakIfBelow(findingBreakY)

		w.SetFontSize(14)
		heading := fmt.Sprintf("%d. %s: %s", i+1, f.Label, sanitize.Line(f.Item.Text))
		p.lines(marginX, w.SplitText(heading, itemWidth))
		p.y += 8

		w.SetFontSize(10)
		w.Text(indentX, p.y, fmt.Sprintf("%s: %s", cat.PriorityField, cat.PriorityLabel(f.Item.Priority)))
		p.y += lineHeight
		if f.Item.Responsible != "" {
			w.Text(indentX, p.y, fmt.Sprintf("%s: %s", cat.ResponsibleField, sanitize.Line(f.Item.Responsible)))
			p.y += lineHeight
		}

		w.SetFontSize(11)
		p.lines(indentX, w.SplitText(fmt.Sprintf("%s: %s", cat.ImpactField, f.Impact), detailWidth))
		p.y += lineHeight + 3
		p.lines(indentX, w.SplitText(fmt.Sprintf("%s: %s", cat.Recommendation, f.Recommendation), detailWidth))
		p.y += lineHeight + 8

		w.SetDrawColor(200, 200, 200)
		w.Line(marginX, p.y, dividerEndX, p.y)
		p.y += 8
	}
}

// itemLine formats "1. text (Priority) - Responsible: name".
func itemLine(cat *locale.Catalog, i int, item schema.Item) string {
	s := fmt.Sprintf("%d. %s (%s)", i+1, sanitize.Line(item.Text), cat.PriorityLabel(item.Priority))
	if item.Responsible != "" {
		s += fmt.Sprintf(" - %s: %s", cat.ResponsibleField, sanitize.Line(item.Responsible))
	}
	return s
}
