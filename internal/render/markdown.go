package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"

	"github.com/dshills/swotboard/internal/locale"
	"github.com/dshills/swotboard/internal/sanitize"
	"github.com/dshills/swotboard/internal/schema"
)

type markdownRenderer struct{}

type mdItem struct {
	Index       int
	Text        string
	Priority    string
	Responsible string
}

type mdSection struct {
	Title string
	Items []mdItem
}

type mdFinding struct {
	mdItem
	Label          string
	Impact         string
	Recommendation string
	Stars          string
}

type mdView struct {
	L         *locale.Catalog
	Generated string
	Total     string
	Sections  []mdSection
	Findings  []mdFinding
}

var mdTemplate = template.Must(template.New("report").Parse(`# {{ .L.ReportTitle }}

*{{ .L.GeneratedAt }}: {{ .Generated }}* | {{ .Total }}

## {{ .L.DataSection }}
{{ range .Sections }}
### {{ .Title }}
{{ range .Items }}
{{ .Index }}. {{ .Text }} ({{ .Priority }}){{ if .Responsible }} - {{ $.L.ResponsibleField }}: {{ .Responsible }}{{ end }}
{{- end }}
{{ end }}{{ if .Findings }}
---

## {{ .L.AnalysisSection }}

{{ .L.AnalysisIntro }}
{{ range .Findings }}
### {{ .Index }}. {{ .Label }}: {{ .Text }}
**{{ $.L.PriorityField }}:** {{ .Priority }} {{ .Stars }}{{ if .Responsible }}
**{{ $.L.ResponsibleField }}:** {{ .Responsible }}{{ end }}

**{{ $.L.ImpactField }}:** {{ .Impact }}
**{{ $.L.Recommendation }}:** {{ .Recommendation }}
{{ end }}{{ end }}`))

func (r *markdownRenderer) Render(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, newMarkdownView(report)); err != nil {
		return nil, goerr.Wrap(err, "rendering markdown", goerr.T(ErrTagExport))
	}
	return buf.Bytes(), nil
}

// FindingsMarkdown renders only the analysis section, for terminal display.
func FindingsMarkdown(report *Report) []byte {
	view := newMarkdownView(report)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", view.L.AnalysisSection))
	if len(view.Findings) == 0 {
		sb.WriteString(view.L.NoItems + "\n")
		return []byte(sb.String())
	}
	for _, f := range view.Findings {
		sb.WriteString(fmt.Sprintf("## %d. %s: %s\n\n", f.Index, f.Label, f.Text))
		sb.WriteString(fmt.Sprintf("**%s:** %s %s", view.L.PriorityField, f.Priority, f.Stars))
		if f.Responsible != "" {
			sb.WriteString(fmt.Sprintf("  \n**%s:** %s", view.L.ResponsibleField, f.Responsible))
		}
		sb.WriteString(fmt.Sprintf("\n\n**%s:** %s  \n**%s:** %s\n\n", view.L.ImpactField, f.Impact, view.L.Recommendation, f.Recommendation))
	}
	return []byte(sb.String())
}

func newMarkdownView(report *Report) mdView {
	cat := report.catalog()
	view := mdView{
		L:         cat,
		Generated: cat.FormatDate(report.GeneratedAt),
		Total:     fmt.Sprintf(cat.ItemsTotal, report.Data.Len()),
	}
	for _, c := range schema.Categories {
		items := report.Data.Items(c)
		if len(items) == 0 {
			continue
		}
		section := mdSection{Title: cat.CategoryTitle(c)}
		for i, item := range items {
			section.Items = append(section.Items, newMarkdownItem(cat, i, item))
		}
		view.Sections = append(view.Sections, section)
	}
	for i, f := range report.Findings {
		view.Findings = append(view.Findings, mdFinding{
			mdItem:         newMarkdownItem(cat, i, f.Item),
			Label:          f.Label,
			Impact:         f.Impact,
			Recommendation: f.Recommendation,
			Stars:          strings.Repeat("★", f.Urgency),
		})
	}
	return view
}

func newMarkdownItem(cat *locale.Catalog, i int, item schema.Item) mdItem {
	return mdItem{
		Index:       i + 1,
		Text:        sanitize.Markdown(item.Text),
		Priority:    cat.PriorityLabel(item.Priority),
		Responsible: sanitize.Markdown(item.Responsible),
	}
}
