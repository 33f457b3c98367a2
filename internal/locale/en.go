package locale

import "github.com/dshills/swotboard/internal/schema"

func english() *Catalog {
	return &Catalog{
		Tag: "en",
		CategoryTitles: map[schema.Category]string{
			schema.CategoryStrengths:     "Strengths",
			schema.CategoryWeaknesses:    "Weaknesses",
			schema.CategoryOpportunities: "Opportunities",
			schema.CategoryThreats:       "Threats",
		},
		FindingLabels: map[schema.Category]string{
			schema.CategoryStrengths:     "Strength",
			schema.CategoryWeaknesses:    "Weakness",
			schema.CategoryOpportunities: "Opportunity",
			schema.CategoryThreats:       "Threat",
		},
		Impacts: map[schema.Category]string{
			schema.CategoryStrengths:     "Boosts competitiveness and market differentiation",
			schema.CategoryWeaknesses:    "Reduces operational efficiency and competitiveness",
			schema.CategoryOpportunities: "Potential for growth and market expansion",
			schema.CategoryThreats:       "Risk of market loss and revenue reduction",
		},
		Recommendations: map[schema.Category]string{
			schema.CategoryStrengths:     "Maximize this strength through strategic investment and effective communication",
			schema.CategoryWeaknesses:    "Build an immediate action plan to mitigate this weakness",
			schema.CategoryOpportunities: "Assess feasibility and develop a strategy to capture it",
			schema.CategoryThreats:       "Put preventive measures and contingency plans in place",
		},
		PriorityLabels: map[schema.Priority]string{
			schema.PriorityLow:      "Low",
			schema.PriorityMedium:   "Medium",
			schema.PriorityHigh:     "High",
			schema.PriorityCritical: "Critical",
		},
		ReportTitle:      "Complete SWOT Analysis",
		GeneratedAt:      "Generated on",
		DataSection:      "1. SWOT Data",
		AnalysisSection:  "2. Strategic Analysis",
		AnalysisIntro:    "Results prioritized by criticality:",
		PriorityField:    "Priority",
		ResponsibleField: "Responsible",
		ImpactField:      "Impact",
		Recommendation:   "Recommendation",
		NoItems:          "Add items to the SWOT matrix to generate an analysis.",
		ItemsTotal:       "%d items recorded",
		DateLayout:       "1/2/2006",
	}
}
