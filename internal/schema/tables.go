package schema

// Urgency maps each priority to its fixed score. No priority maps below 2.
var Urgency = map[Priority]int{
	PriorityCritical: 5,
	PriorityHigh:     4,
	PriorityMedium:   3,
	PriorityLow:      2,
}

// PriorityColor is the display color (hex) for each priority.
var PriorityColor = map[Priority]string{
	PriorityLow:      "#16a34a",
	PriorityMedium:   "#ca8a04",
	PriorityHigh:     "#ea580c",
	PriorityCritical: "#dc2626",
}

// CategoryColor is the accent color (hex) for each category.
var CategoryColor = map[Category]string{
	CategoryStrengths:     "#16a34a",
	CategoryWeaknesses:    "#dc2626",
	CategoryOpportunities: "#2563eb",
	CategoryThreats:       "#ea580c",
}

// UrgencyOf returns the urgency for p, treating unknown priorities as medium.
func UrgencyOf(p Priority) int {
	if u, ok := Urgency[p]; ok {
		return u
	}
	return Urgency[PriorityMedium]
}
