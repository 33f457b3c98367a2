package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/dshills/swotboard/internal/analysis"
	"github.com/dshills/swotboard/internal/locale"
	"github.com/dshills/swotboard/internal/schema"
	"github.com/dshills/swotboard/internal/schema/validate"
)

func sampleSet() schema.AnalysisSet {
	set := schema.NewAnalysisSet()
	set.Strengths = []schema.Item{{ID: "s1", Text: "Loyal customers", Priority: schema.PriorityHigh, Responsible: "Ana", CreatedAt: 1}}
	set.Weaknesses = []schema.Item{{ID: "w1", Text: "Legacy *billing* system", Priority: schema.PriorityCritical, CreatedAt: 2}}
	set.Opportunities = []schema.Item{{ID: "o1", Text: "New region", Priority: schema.PriorityMedium, CreatedAt: 3}}
	set.Threats = []schema.Item{{ID: "t1", Text: "Price war", Priority: schema.PriorityLow, Responsible: "Bo", CreatedAt: 4}}
	return set
}

func sampleReport(withAnalysis bool) *Report {
	r := &Report{
		Data:        sampleSet(),
		GeneratedAt: time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC),
	}
	if withAnalysis {
		r.Findings = analysis.Analyze(r.Data, nil)
	}
	return r
}

// recorder is a DocWriter that logs every call and measures text as 2mm per rune.
type recorder struct {
	pages   int
	texts   []string
	lines   int
	fail    error
	panicOn string
}

func (r *recorder) SetFontSize(float64) {}

func (r *recorder) Text(_, _ float64, s string) {
	if r.panicOn != "" && strings.Contains(s, r.panicOn) {
		panic("font glyph missing")
	}
	r.texts = append(r.texts, s)
}

func (r *recorder) SplitText(s string, width float64) []string {
	return wrapWords(s, width, func(t string) float64 { return 2 * float64(len([]rune(t))) })
}

func (r *recorder) AddPage() { r.pages++ }

func (r *recorder) SetDrawColor(int, int, int) {}

func (r *recorder) Line(float64, float64, float64, float64) { r.lines++ }

func (r *recorder) Output(w io.Writer) error {
	if r.fail != nil {
		return r.fail
	}
	_, err := io.WriteString(w, strings.Join(r.texts, "\n"))
	return err
}

func renderWith(t *testing.T, rec *recorder, report *Report) ([]byte, error) {
	t.Helper()
	p := &pdfRenderer{newWriter: func() DocWriter { return rec }}
	return p.Render(report)
}

// --- factory ---

func TestNewRenderer_KnownFormats(t *testing.T) {
	for _, f := range []string{"json", "md", "pdf"} {
		r, err := NewRenderer(f)
		gt.NoError(t, err)
		gt.True(t, r != nil)
	}
}

func TestNewRenderer_UnknownFormat(t *testing.T) {
	_, err := NewRenderer("xml")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, ErrTagUnknownFormat))
}

func TestFileName(t *testing.T) {
	gt.Equal(t, FileName("json"), "analise-swot.json")
	gt.Equal(t, FileName("pdf"), "analise-swot-completa.pdf")
	gt.Equal(t, FileName("md"), "analise-swot.md")
}

// --- JSON ---

func TestJSON_RoundTripsThroughImport(t *testing.T) {
	r, _ := NewRenderer("json")
	out, err := r.Render(sampleReport(true))
	gt.NoError(t, err)

	raw, err := validate.DecodeJSON(string(out))
	gt.NoError(t, err)
	gt.Equal(t, validate.Normalize(raw), sampleSet())
}

func TestJSON_IgnoresFindings(t *testing.T) {
	r, _ := NewRenderer("json")
	with, err := r.Render(sampleReport(true))
	gt.NoError(t, err)
	without, err := r.Render(sampleReport(false))
	gt.NoError(t, err)
	gt.Equal(t, string(with), string(without))
}

// --- Markdown ---

func TestMarkdown_Sections(t *testing.T) {
	r, _ := NewRenderer("md")
	out, err := r.Render(sampleReport(true))
	gt.NoError(t, err)

	s := string(out)
	gt.S(t, s).Contains("# Complete SWOT Analysis")
	gt.S(t, s).Contains("10/15/2026")
	gt.S(t, s).Contains("4 items recorded")
	gt.S(t, s).Contains("### Strengths")
	gt.S(t, s).Contains("1. Loyal customers (High) - Responsible: Ana")
	gt.S(t, s).Contains(`Legacy \*billing\* system`)
	gt.S(t, s).Contains("## 2. Strategic Analysis")
	gt.S(t, s).Contains("### 1. Weakness: Legacy")
	gt.S(t, s).Contains("★★★★★")
}

func TestMarkdown_NoAnalysisSection(t *testing.T) {
	r, _ := NewRenderer("md")
	out, err := r.Render(sampleReport(false))
	gt.NoError(t, err)
	gt.False(t, strings.Contains(string(out), "Strategic Analysis"))
}

func TestMarkdown_SkipsEmptyCategories(t *testing.T) {
	report := sampleReport(false)
	report.Data.Threats = []schema.Item{}

	r, _ := NewRenderer("md")
	out, err := r.Render(report)
	gt.NoError(t, err)
	gt.False(t, strings.Contains(string(out), "### Threats"))
}

func TestFindingsMarkdown_Empty(t *testing.T) {
	out := FindingsMarkdown(&Report{Data: schema.NewAnalysisSet()})
	gt.S(t, string(out)).Contains("Add items")
}

// --- Document layout ---

func TestDocument_DataOnly_SinglePage(t *testing.T) {
	rec := &recorder{}
	_, err := renderWith(t, rec, sampleReport(false))
	gt.NoError(t, err)

	gt.Equal(t, rec.pages, 1)
	gt.Equal(t, rec.texts[0], "Complete SWOT Analysis")
	gt.Equal(t, rec.texts[1], "Generated on: 10/15/2026")
	gt.Equal(t, rec.lines, 0)
}

func TestDocument_AnalysisStartsNewPage(t *testing.T) {
	rec := &recorder{}
	_, err := renderWith(t, rec, sampleReport(true))
	gt.NoError(t, err)

	gt.Equal(t, rec.pages, 2)
	gt.Equal(t, rec.lines, 4)

	joined := strings.Join(rec.texts, "\n")
	gt.S(t, joined).Contains("1. Weakness: Legacy *billing* system")
	gt.S(t, joined).Contains("Responsible: Bo")
	gt.True(t, strings.Index(joined, "Weakness: Legacy") < strings.Index(joined, "Threat: Price war"))
}

func TestDocument_OmitsEmptyResponsible(t *testing.T) {
	rec := &recorder{}
	_, err := renderWith(t, rec, sampleReport(false))
	gt.NoError(t, err)

	for _, s := range rec.texts {
		if strings.Contains(s, "Legacy") {
			gt.False(t, strings.Contains(s, "Responsible"))
		}
	}
}

func TestDocument_Paginates(t *testing.T) {
	report := sampleReport(true)
	for i := 0; i < 60; i++ {
		report.Data.Strengths = append(report.Data.Strengths, schema.Item{
			ID: fmt.Sprintf("x%d", i), Text: fmt.Sprintf("extra %d", i), Priority: schema.PriorityMedium,
		})
	}
	report.Findings = analysis.Analyze(report.Data, nil)

	rec := &recorder{}
	_, err := renderWith(t, rec, report)
	gt.NoError(t, err)
	gt.True(t, rec.pages > 6)
}

func TestDocument_WriterPanicBecomesExportError(t *testing.T) {
	rec := &recorder{panicOn: "Price war"}
	out, err := renderWith(t, rec, sampleReport(false))

	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, ErrTagExport))
	gt.Equal(t, len(out), 0)
}

func TestDocument_OutputErrorBecomesExportError(t *testing.T) {
	rec := &recorder{fail: errors.New("disk full")}
	_, err := renderWith(t, rec, sampleReport(false))

	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, ErrTagExport))
}

func TestDocument_Localized(t *testing.T) {
	report := sampleReport(true)
	cat, err := locale.Get("pt-BR")
	gt.NoError(t, err)
	report.Catalog = cat

	rec := &recorder{}
	_, err = renderWith(t, rec, report)
	gt.NoError(t, err)

	joined := strings.Join(rec.texts, "\n")
	gt.S(t, joined).Contains("Gerado em: 15/10/2026")
	gt.S(t, joined).Contains("Forças")
	gt.S(t, joined).Contains("Prioridade: Crítica")
}

func TestPDF_RealWriterProducesReadableDocument(t *testing.T) {
	r, err := NewRenderer("pdf")
	gt.NoError(t, err)

	report := sampleReport(true)
	report.Catalog, _ = locale.Get("pt-BR")
	out, err := r.Render(report)
	gt.NoError(t, err).Required()
	gt.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	doc, err := pdf.NewReader(bytes.NewReader(out), int64(len(out)))
	gt.NoError(t, err).Required()
	gt.Equal(t, doc.NumPage(), 2)
}

// --- wrapping ---

func TestWrapWords(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }

	gt.Equal(t, wrapWords("aa bb cc dd", 5, measure), []string{"aa bb", "cc dd"})
	gt.Equal(t, wrapWords("", 5, measure), []string{""})
	gt.Equal(t, wrapWords("abcdefghij", 4, measure), []string{"abcd", "efgh", "ij"})
	gt.Equal(t, wrapWords("x abcdefghij y", 4, measure), []string{"x", "abcd", "efgh", "ij y"})
}

// --- terminal ---

func TestList_PrintsEveryCategory(t *testing.T) {
	var buf bytes.Buffer
	gt.NoError(t, List(&buf, sampleSet(), nil))

	s := buf.String()
	gt.S(t, s).Contains("4 items recorded")
	gt.S(t, s).Contains("Strengths (1)")
	gt.S(t, s).Contains("Loyal customers")
	gt.S(t, s).Contains("[t1]")
	gt.S(t, s).Contains("Responsible: Bo")
}

func TestList_Filter(t *testing.T) {
	var buf bytes.Buffer
	gt.NoError(t, List(&buf, sampleSet(), nil, schema.CategoryThreats))

	gt.False(t, strings.Contains(buf.String(), "Loyal customers"))
	gt.S(t, buf.String()).Contains("Price war")
}
