package locale

import "github.com/dshills/swotboard/internal/schema"

func portuguese() *Catalog {
	return &Catalog{
		Tag: "pt-BR",
		CategoryTitles: map[schema.Category]string{
			schema.CategoryStrengths:     "Forças",
			schema.CategoryWeaknesses:    "Fraquezas",
			schema.CategoryOpportunities: "Oportunidades",
			schema.CategoryThreats:       "Ameaças",
		},
		FindingLabels: map[schema.Category]string{
			schema.CategoryStrengths:     "Força",
			schema.CategoryWeaknesses:    "Fraqueza",
			schema.CategoryOpportunities: "Oportunidade",
			schema.CategoryThreats:       "Ameaça",
		},
		Impacts: map[schema.Category]string{
			schema.CategoryStrengths:     "Potencializa competitividade e diferenciação no mercado",
			schema.CategoryWeaknesses:    "Reduz eficiência operacional e competitividade",
			schema.CategoryOpportunities: "Potencial de crescimento e expansão de mercado",
			schema.CategoryThreats:       "Risco de perda de mercado e redução de receita",
		},
		Recommendations: map[schema.Category]string{
			schema.CategoryStrengths:     "Maximize esta força através de investimentos estratégicos e comunicação efetiva",
			schema.CategoryWeaknesses:    "Desenvolva plano de ação imediato para mitigar esta fraqueza",
			schema.CategoryOpportunities: "Avalie viabilidade e desenvolva estratégia de aproveitamento",
			schema.CategoryThreats:       "Implemente medidas preventivas e planos de contingência",
		},
		PriorityLabels: map[schema.Priority]string{
			schema.PriorityLow:      "Baixa",
			schema.PriorityMedium:   "Média",
			schema.PriorityHigh:     "Alta",
			schema.PriorityCritical: "Crítica",
		},
		ReportTitle:      "Análise SWOT Completa",
		GeneratedAt:      "Gerado em",
		DataSection:      "1. Dados SWOT",
		AnalysisSection:  "2. Análise Estratégica",
		AnalysisIntro:    "Resultados priorizados por criticidade:",
		PriorityField:    "Prioridade",
		ResponsibleField: "Responsável",
		ImpactField:      "Impacto",
		Recommendation:   "Recomendação",
		NoItems:          "Adicione itens à matriz SWOT para gerar uma análise.",
		ItemsTotal:       "%d itens cadastrados",
		DateLayout:       "02/01/2006",
	}
}
