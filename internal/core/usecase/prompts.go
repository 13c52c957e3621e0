package usecase

import (
	"log/slog"
	"strings"
)

// domainPrompts keys match intent domains. Unknown domains fall back to the
// general template.
var domainPrompts = map[string]string{
	"energy": `You are an expert building energy consultant analyzing energy evaluation documents.

Context Information:
{context}

---

Question: {question}

Instructions:
1. Focus on energy-related requirements, calculations, and performance metrics
2. When providing values, always include units (kWh, MW, °C, etc.)
3. Reference specific standards or regulations mentioned in the context
4. If calculations are mentioned, explain the methodology
5. Highlight any energy efficiency requirements or targets

Provide a comprehensive answer that addresses the energy aspects of the question based solely on the provided context.`,

	"regulatory": `You are a building compliance expert analyzing regulatory and standard documents.

Context Information:
{context}

---

Question: {question}

Instructions:
1. Focus on requirements, standards, regulations, and compliance aspects
2. Clearly state what is required vs. what is recommended
3. Reference specific standard numbers or regulation names when mentioned
4. Explain compliance procedures if described in the context
5. Highlight any mandatory vs. optional requirements

Provide a detailed answer focusing on regulatory and compliance aspects based solely on the provided context.`,

	"technical": `You are a technical building consultant analyzing technical documentation and calculations.

Context Information:
{context}

---

Question: {question}

Instructions:
1. Focus on technical calculations, methodologies, and analytical procedures
2. Explain calculation methods and assumptions when present
3. Provide technical values with appropriate units and precision
4. Reference technical standards or methodologies mentioned
5. Highlight any technical limitations or assumptions

Provide a technical analysis based solely on the provided context.`,

	"general": `You are an expert building consultant analyzing building evaluation documents.

Context Information:
{context}

---

Question: {question}

Instructions:
1. Provide a comprehensive answer based solely on the provided context
2. Include specific values, requirements, or procedures when mentioned
3. Reference source documents when providing information
4. Explain technical terms if they appear in the context
5. Be precise and factual, avoiding speculation

Answer the question thoroughly using only the information provided in the context.`,
}

// buildPrompt selects the template for the intent domain and substitutes the
// context and question placeholders.
func buildPrompt(domainName, contextText, question string, logger *slog.Logger) string {
	template, ok := domainPrompts[domainName]
	if !ok {
		logger.Warn("no prompt template for domain, using general", "domain", domainName)
		template = domainPrompts["general"]
	}
	prompt := strings.ReplaceAll(template, "{context}", contextText)
	return strings.ReplaceAll(prompt, "{question}", question)
}
