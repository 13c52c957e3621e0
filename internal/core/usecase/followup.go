package usecase

import (
	"fmt"
	"strings"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

const maxFollowUps = 4

var followUpTemplates = map[string][]string{
	"general": {
		"What additional information can you provide about this topic?",
		"Are there any related documents I should be aware of?",
		"What are the key points to understand about this subject?",
		"Can you explain how this information is typically applied?",
	},
	"energy": {
		"What are the specific energy efficiency targets mentioned?",
		"How is energy performance calculated or measured?",
		"What energy standards or regulations apply?",
		"Are there any energy consumption limits specified?",
	},
	"regulatory": {
		"What specific standards or regulations are referenced?",
		"What are the compliance verification procedures?",
		"Are there any exceptions or special conditions mentioned?",
		"What documentation is required for compliance?",
	},
	"technical": {
		"What calculation methodologies are used?",
		"What are the key technical parameters or assumptions?",
		"How are the results validated or verified?",
		"What technical standards guide these procedures?",
	},
	"water": {
		"What are the water consumption requirements?",
		"How is water system performance evaluated?",
		"What water quality standards apply?",
		"Are there water efficiency targets specified?",
	},
	"transport": {
		"What accessibility requirements are specified?",
		"How is transport impact assessed?",
		"What parking or access standards apply?",
		"Are there mobility or circulation requirements?",
	},
}

// generateFollowUps suggests up to four related questions: one dynamic
// same-domain exploration, up to two domain templates, and a cross-category
// comparison when the context spanned multiple categories.
func generateFollowUps(intent domain.Intent, info domain.ContextInfo) []domain.FollowUp {
	domainName := intent.Domain
	templates, ok := followUpTemplates[domainName]
	if !ok {
		domainName = "general"
		templates = followUpTemplates["general"]
	}

	followUps := []domain.FollowUp{{
		Question:  fmt.Sprintf("What additional details are available about %s aspects in these documents?", domainName),
		Reasoning: "Explore additional information in the same domain",
	}}

	if len(templates) >= 2 {
		followUps = append(followUps,
			domain.FollowUp{Question: templates[0], Reasoning: "Domain-specific inquiry"},
			domain.FollowUp{Question: templates[1], Reasoning: "Further domain exploration"},
		)
	}

	if len(info.CategoriesCovered) > 1 {
		followUps = append(followUps, domain.FollowUp{
			Question: fmt.Sprintf("How do the requirements compare across different categories (%s)?",
				strings.Join(info.CategoriesCovered, ", ")),
			Reasoning: "Cross-category comparison",
		})
	}

	if len(followUps) > maxFollowUps {
		followUps = followUps[:maxFollowUps]
	}
	return followUps
}
