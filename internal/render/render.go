package render

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/dshills/swotboard/internal/locale"
	"github.com/dshills/swotboard/internal/schema"
)

// Default export filenames.
const (
	JSONFileName     = "analise-swot.json"
	DocumentFileName = "analise-swot-completa.pdf"
	MarkdownFileName = "analise-swot.md"
)

// ErrTagExport marks failures while building an export artifact.
var ErrTagExport = goerr.NewTag("export_failure")

// ErrTagUnknownFormat marks a format with no renderer.
var ErrTagUnknownFormat = goerr.NewTag("unknown_format")

// Report is everything an artifact is built from. Findings is nil when no analysis
// has been generated; renderers then emit the data section only.
type Report struct {
	Data        schema.AnalysisSet
	Findings    []schema.Finding
	GeneratedAt time.Time
	Catalog     *locale.Catalog
}

func (r *Report) catalog() *locale.Catalog {
	if r.Catalog == nil {
		return locale.Default()
	}
	return r.Catalog
}

// Renderer formats a Report into bytes for output.
type Renderer interface {
	Render(report *Report) ([]byte, error)
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json", "md", "pdf".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	case "pdf":
		return &pdfRenderer{newWriter: NewFPDFWriter}, nil
	default:
		return nil, goerr.New("unknown format, supported formats are json, md, pdf",
			goerr.V("format", format), goerr.T(ErrTagUnknownFormat))
	}
}

// FileName returns the default export filename for format.
func FileName(format string) string {
	switch format {
	case "pdf":
		return DocumentFileName
	case "md":
		return MarkdownFileName
	default:
		return JSONFileName
	}
}
