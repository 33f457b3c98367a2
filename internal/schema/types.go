package schema

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrTagInvalidPriority = goerr.NewTag("invalid_priority")
	ErrTagUnknownCategory = goerr.NewTag("unknown_category")
)

// Priority is the severity assigned to an item.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists every priority in ascending severity.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// legacyPriorities maps the values written by earlier exports to the current vocabulary.
var legacyPriorities = map[string]Priority{
	"baixa":   PriorityLow,
	"media":   PriorityMedium,
	"alta":    PriorityHigh,
	"critica": PriorityCritical,
}

// PriorityOrdinal returns the numeric ordering for a priority.
// low(0) < medium(1) < high(2) < critical(3). Returns -1 for an unrecognised priority.
func PriorityOrdinal(p Priority) int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityCritical:
		return 3
	default:
		return -1
	}
}

// IsValidPriority reports whether p is one of the four priorities.
func IsValidPriority(p Priority) bool {
	return PriorityOrdinal(p) >= 0
}

// ParsePriority converts user input to a Priority. Matching is case-insensitive.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if IsValidPriority(p) {
		return p, nil
	}
	return "", goerr.New("unknown priority, valid priorities are low, medium, high, critical",
		goerr.V("priority", s), goerr.T(ErrTagInvalidPriority))
}

// CoercePriority maps an arbitrary decoded value to a Priority, falling back to medium.
func CoercePriority(v any) Priority {
	s, ok := v.(string)
	if !ok {
		return PriorityMedium
	}
	if p := Priority(s); IsValidPriority(p) {
		return p
	}
	if p, ok := legacyPriorities[s]; ok {
		return p
	}
	return PriorityMedium
}

// Category is one of the four fixed SWOT buckets.
type Category string

const (
	CategoryStrengths     Category = "strengths"
	CategoryWeaknesses    Category = "weaknesses"
	CategoryOpportunities Category = "opportunities"
	CategoryThreats       Category = "threats"
)

// Categories is the fixed traversal and display order.
var Categories = []Category{
	CategoryStrengths,
	CategoryWeaknesses,
	CategoryOpportunities,
	CategoryThreats,
}

// IsValidCategory reports whether c is one of the four categories.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryStrengths, CategoryWeaknesses, CategoryOpportunities, CategoryThreats:
		return true
	}
	return false
}

// ParseCategory converts user input to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if IsValidCategory(c) {
		return c, nil
	}
	return "", goerr.New("unknown category, valid categories are strengths, weaknesses, opportunities, threats",
		goerr.V("category", s), goerr.T(ErrTagUnknownCategory))
}

// Item is one recorded observation.
// Field order here is the export order.
type Item struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Priority    Priority `json:"priority"`
	Responsible string   `json:"responsible"`
	CreatedAt   int64    `json:"createdAt"` // epoch milliseconds
}

// AnalysisSet is the full state. All four categories are always present.
type AnalysisSet struct {
	Strengths     []Item `json:"strengths"`
	Weaknesses    []Item `json:"weaknesses"`
	Opportunities []Item `json:"opportunities"`
	Threats       []Item `json:"threats"`
}

// NewAnalysisSet returns a set with four empty, non-nil sequences.
func NewAnalysisSet() AnalysisSet {
	return AnalysisSet{
		Strengths:     []Item{},
		Weaknesses:    []Item{},
		Opportunities: []Item{},
		Threats:       []Item{},
	}
}

// Items returns the sequence bound to c, or nil for an unknown category.
func (s AnalysisSet) Items(c Category) []Item {
	switch c {
	case CategoryStrengths:
		return s.Strengths
	case CategoryWeaknesses:
		return s.Weaknesses
	case CategoryOpportunities:
		return s.Opportunities
	case CategoryThreats:
		return s.Threats
	}
	return nil
}

// SetItems binds items to c. Unknown categories are ignored.
func (s *AnalysisSet) SetItems(c Category, items []Item) {
	if items == nil {
		items = []Item{}
	}
	switch c {
	case CategoryStrengths:
		s.Strengths = items
	case CategoryWeaknesses:
		s.Weaknesses = items
	case CategoryOpportunities:
		s.Opportunities = items
	case CategoryThreats:
		s.Threats = items
	}
}

// Clone returns a deep copy with every category bound to a non-nil slice.
func (s AnalysisSet) Clone() AnalysisSet {
	out := NewAnalysisSet()
	for _, c := range Categories {
		src := s.Items(c)
		dst := make([]Item, len(src))
		copy(dst, src)
		out.SetItems(c, dst)
	}
	return out
}

// Len returns the total number of items across all categories.
func (s AnalysisSet) Len() int {
	return len(s.Strengths) + len(s.Weaknesses) + len(s.Opportunities) + len(s.Threats)
}

// Finding is a derived, non-persisted recommendation for one item.
type Finding struct {
	Category       Category `json:"category"`
	Label          string   `json:"label"`
	Item           Item     `json:"item"`
	Impact         string   `json:"impact"`
	Recommendation string   `json:"recommendation"`
	Urgency        int      `json:"urgency"`
}
