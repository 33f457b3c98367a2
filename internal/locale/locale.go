package locale

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/dshills/swotboard/internal/schema"
)

// Catalog holds every user-facing string for one language. All maps are indexed by the
// fixed Category/Priority variants and are never mutated after construction.
type Catalog struct {
	Tag string

	CategoryTitles  map[schema.Category]string
	FindingLabels   map[schema.Category]string
	Impacts         map[schema.Category]string
	Recommendations map[schema.Category]string
	PriorityLabels  map[schema.Priority]string

	ReportTitle      string
	GeneratedAt      string // label preceding the generation date
	DataSection      string
	AnalysisSection  string
	AnalysisIntro    string
	PriorityField    string
	ResponsibleField string
	ImpactField      string
	Recommendation   string
	NoItems          string
	ItemsTotal       string // fmt pattern taking the item count
	DateLayout       string
}

// ErrTagUnknownLocale marks a locale with no built-in catalog.
var ErrTagUnknownLocale = goerr.NewTag("unknown_locale")

// Get returns the built-in catalog for tag.
func Get(tag string) (*Catalog, error) {
	switch tag {
	case "en", "en-US", "":
		return english(), nil
	case "pt-BR", "pt":
		return portuguese(), nil
	default:
		return nil, goerr.New("unknown locale, valid locales are en, pt-BR",
			goerr.V("locale", tag), goerr.T(ErrTagUnknownLocale))
	}
}

// Default is the English catalog.
func Default() *Catalog {
	return english()
}

// CategoryTitle returns the display title, e.g. "Strengths".
func (c *Catalog) CategoryTitle(cat schema.Category) string {
	if t, ok := c.CategoryTitles[cat]; ok {
		return t
	}
	return string(cat)
}

// PriorityLabel returns the formatted priority, e.g. "Critical".
func (c *Catalog) PriorityLabel(p schema.Priority) string {
	if l, ok := c.PriorityLabels[p]; ok {
		return l
	}
	return string(p)
}

// FormatDate renders t in the catalog's date layout.
func (c *Catalog) FormatDate(t time.Time) string {
	return t.Format(c.DateLayout)
}
