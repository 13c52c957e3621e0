package usecase

import (
	"sort"
	"strings"
)

// categoryKeywords maps each known assessment category to the terms that
// signal it. Keys are the canonical stored category values (lowercased
// "<code>_<section>" derived from the source folder layout, e.g. 1_HEA).
var categoryKeywords = map[string][]string{
	"hea_1": {
		"health", "environmental", "assessment", "impact", "risk", "safety",
		"hazard", "exposure", "contamination", "air quality", "noise",
	},
	"ene_2": {
		"energy", "efficiency", "consumption", "power", "electricity", "heating",
		"cooling", "hvac", "renewable", "solar", "thermal", "insulation",
	},
	"tra_3": {
		"transport", "transportation", "accessibility", "traffic", "mobility",
		"parking", "public transport", "cycling", "walking", "infrastructure",
	},
	"wat_4": {
		"water", "drainage", "plumbing", "sanitary", "sewage", "stormwater",
		"consumption", "supply", "treatment", "quality", "management",
	},
	"rsc_5": {
		"resource", "scarcity", "management", "materials", "waste", "recycling",
		"circular economy", "consumption", "availability", "supply",
	},
	"rsl_6": {
		"resilience", "sustainability", "sustainable", "climate", "adaptation",
		"mitigation", "future", "long-term", "durable", "robust",
	},
	"lue_7": {
		"land use", "environment", "landscape", "green space", "biodiversity",
		"ecology", "vegetation", "soil", "site", "planning",
	},
	"pol_8": {
		"pollution", "environmental impact", "emissions", "carbon", "co2",
		"waste", "contamination", "environmental", "impact assessment",
	},
}

// detectCategories scores each known category by summed word-count-weighted
// keyword hits in the lowercased query, keeps categories within 70% of the
// top score, and normalizes confidence as min(top/3, 1).
func detectCategories(query string) ([]string, float64) {
	lower := strings.ToLower(query)

	scores := make(map[string]int, len(categoryKeywords))
	top := 0
	for category, keywords := range categoryKeywords {
		score := 0
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				// Multi-word keywords weigh more than single words.
				score += len(strings.Fields(keyword))
			}
		}
		if score > 0 {
			scores[category] = score
			if score > top {
				top = score
			}
		}
	}

	if top == 0 {
		return nil, 0
	}

	threshold := float64(top) * 0.7
	relevant := make([]string, 0, len(scores))
	for category, score := range scores {
		if float64(score) >= threshold {
			relevant = append(relevant, category)
		}
	}
	sort.Slice(relevant, func(i, j int) bool {
		if scores[relevant[i]] != scores[relevant[j]] {
			return scores[relevant[i]] > scores[relevant[j]]
		}
		return relevant[i] < relevant[j]
	})

	confidence := float64(top) / 3.0
	if confidence > 1.0 {
		confidence = 1.0
	}
	return relevant, confidence
}
