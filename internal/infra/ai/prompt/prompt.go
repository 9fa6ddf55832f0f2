// Package prompt holds the instruction templates sent to LLM providers and
// the excerpt budgets that keep prompts inside provider input limits.
package prompt

import "fmt"

// Excerpt budgets. These are tied to provider token limits and are meant to
// be tuned per provider through config, not edited here.
const (
	DefaultAnalyzeExcerpt = 1200
	DefaultAnswerExcerpt  = 1500
	DefaultSummaryExcerpt = 500
)

// Excerpt bounds s to at most n bytes, appending an ellipsis marker when
// the text was cut.
func Excerpt(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// AnalyzeUser builds the free-text analysis prompt around a bounded
// document excerpt.
func AnalyzeUser(filename, excerpt string) string {
	return fmt.Sprintf(`Analyze this Indian legal document in simple language:

%s: %s

Find:
1. Main issues that could cause problems
2. Money-related risks (excessive fees, unfair deposits)
3. Legal requirements missing (registration, compliance)
4. Terms that need explanation
5. Document type

Focus on: unfair clauses, excessive costs, registration needs, consumer protection violations.`, filename, excerpt)
}

// AnswerUser builds the free-text question prompt. existingSummary may be
// empty; when present it is already excerpt-bounded by the caller.
func AnswerUser(docExcerpt, existingSummary, question string) string {
	prior := ""
	if existingSummary != "" {
		prior = fmt.Sprintf("What we found earlier: %s\n\n", existingSummary)
	}
	return fmt.Sprintf(`Answer this question about an Indian legal document using simple, everyday language.

Document: %s

%sQuestion: %s

Rules for answering:
- Use simple words that anyone can understand
- Explain WHY something is important or risky
- Give practical steps the person can take
- If unsure, say so clearly
- Keep answer under 150 words`, docExcerpt, prior, question)
}

// JSONSystem provides strict directions and the result schema for
// JSON-mode providers.
func JSONSystem() string {
	return "You are an expert legal analyst specializing in Indian law. Analyze documents thoroughly and provide clear, actionable insights for non-legal professionals. Respond with one valid JSON object only."
}

// JSONUser builds the JSON-mode analysis prompt with the full schema
// spelled out, so permissive parsing on our side stays honest.
func JSONUser(content string) string {
	return fmt.Sprintf(`Analyze this Indian legal document and provide a comprehensive analysis in JSON format.

Document content:
%s

Please analyze this document focusing on Indian law and provide:
1. A clear summary in plain English
2. Risk assessment with specific risks categorized as high/medium/low
3. Legal terms with definitions in Indian context
4. Document type identification
5. Key provisions summary

Response format:
{
  "summary": "Plain English summary of the document",
  "risks": [
    {
      "id": "risk_1",
      "type": "high|medium|low",
      "title": "Risk title",
      "description": "Detailed description of the risk",
      "section": "Document section reference",
      "recommendation": "What the user should do"
    }
  ],
  "legalTerms": [
    {
      "term": "Legal term",
      "definition": "Plain English definition",
      "context": "How it applies in Indian law"
    }
  ],
  "documentType": "Type of document (e.g., rental agreement, employment contract)",
  "keyProvisions": ["List of key provisions found in the document"]
}

Focus on Indian legal context, common issues in Indian contracts, and provide actionable recommendations.`, content)
}

// AnswerSystem is the system message for plain-chat question answering.
func AnswerSystem() string {
	return "You are a legal expert specializing in Indian law. Answer questions about legal documents in clear, plain English that non-lawyers can understand."
}

// AnswerUserPlain builds the non-JSON question prompt used by chat
// completion providers.
func AnswerUserPlain(content, existingSummary, question string) string {
	prior := ""
	if existingSummary != "" {
		prior = fmt.Sprintf("Previous analysis: %s\n\n", existingSummary)
	}
	return fmt.Sprintf(`Based on this Indian legal document, answer the user's question in plain English.

Document content:
%s

%sUser question: %s

Provide a clear, helpful answer focusing on Indian law context. If the question cannot be answered from the document, explain what information is missing.`, content, prior, question)
}

// AnswerFallback is the terminal canned reply used when every provider
// failed. It must reference the literal question text.
func AnswerFallback(question string) string {
	return fmt.Sprintf(`I'm currently unable to analyze your question about "%s" due to API limitations. However, based on the document type, I recommend consulting with a legal professional who specializes in Indian law for specific legal advice.`, question)
}
