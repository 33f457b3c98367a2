package analysis

import (
	"sort"

	"github.com/dshills/swotboard/internal/locale"
	"github.com/dshills/swotboard/internal/schema"
)

// Analyze emits one finding per item, sorted by urgency descending.
// Ties keep traversal order: category order, then insertion order within a category.
// The result depends only on set and cat, so repeated calls are identical.
// A nil catalog selects the English narratives.
func Analyze(set schema.AnalysisSet, cat *locale.Catalog) []schema.Finding {
	if cat == nil {
		cat = locale.Default()
	}

	findings := make([]schema.Finding, 0, set.Len())
	for _, c := range schema.Categories {
		for _, item := range set.Items(c) {
			findings = append(findings, schema.Finding{
				Category:       c,
				Label:          cat.FindingLabels[c],
				Item:           item,
				Impact:         cat.Impacts[c],
				Recommendation: cat.Recommendations[c],
				Urgency:        schema.UrgencyOf(item.Priority),
			})
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Urgency > findings[j].Urgency
	})
	return findings
}

// Summary counts items per category and per priority.
type Summary struct {
	Total      int                     `json:"total"`
	ByCategory map[schema.Category]int `json:"by_category"`
	ByPriority map[schema.Priority]int `json:"by_priority"`
}

// Summarize returns the item counts for set.
func Summarize(set schema.AnalysisSet) Summary {
	s := Summary{
		ByCategory: make(map[schema.Category]int, len(schema.Categories)),
		ByPriority: make(map[schema.Priority]int, len(schema.Priorities)),
	}
	for _, c := range schema.Categories {
		items := set.Items(c)
		s.ByCategory[c] = len(items)
		s.Total += len(items)
		for _, item := range items {
			s.ByPriority[item.Priority]++
		}
	}
	return s
}

// FilterByUrgency returns only findings whose item priority is at or above threshold.
// Order is preserved.
func FilterByUrgency(findings []schema.Finding, threshold schema.Priority) []schema.Finding {
	if threshold == schema.PriorityLow || threshold == "" {
		return findings
	}
	floor := schema.UrgencyOf(threshold)
	out := make([]schema.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Urgency >= floor {
			out = append(out, f)
		}
	}
	return out
}
