// Package intent applies a lexical heuristic to guess what a catalog question
// is after: an exact title lookup, a request for recommendations, or a general
// inquiry. It is deliberately not a trained classifier; ties and false
// positives are acceptable.
package intent

import "strings"

// Intent is the classified purpose of a user question.
type Intent string

const (
	ExactMatch     Intent = "exact_match"
	Recommendation Intent = "recommendation"
	GeneralQuery   Intent = "general_query"
)

// Candidate is the slice of a retrieved document the classifier looks at.
type Candidate struct {
	Title string
	Score float64
}

// a candidate only counts as an exact match above this similarity score
const exactMatchScore = 0.8

// question tokens this short are too noisy to match against titles
const minTokenLength = 3

// words that signal the user wants alternatives rather than one specific book;
// the catalog serves a bilingual audience, so both Spanish and English forms
// are listed
var recommendationKeywords = []string{
	"recomienda",
	"recommend",
	"similar",
	"parecido",
	"como",
	"like",
	"tipo",
	"type",
}

// Classify inspects the question against the retrieved candidates, in
// retrieval order. A candidate whose title lexically overlaps the question and
// whose score clears the exact-match bar wins immediately; otherwise the
// recommendation keywords decide between a recommendation and a general query.
// The result depends only on the inputs, never on external state.
func Classify(question string, candidates []Candidate) (Intent, bool) {
	questionLower := strings.ToLower(question)

	for _, candidate := range candidates {
		titleLower := strings.ToLower(candidate.Title)

		if lexicalMatch(questionLower, titleLower) && candidate.Score > exactMatchScore {
			// first match wins
			return ExactMatch, true
		}
	}

	for _, keyword := range recommendationKeywords {
		if strings.Contains(questionLower, keyword) {
			return Recommendation, false
		}
	}

	return GeneralQuery, false
}

// true when the title appears inside the question, or any sufficiently long
// question token appears inside the title
func lexicalMatch(questionLower, titleLower string) bool {
	if strings.Contains(questionLower, titleLower) {
		return true
	}

	for _, token := range strings.Fields(questionLower) {
		if len([]rune(token)) > minTokenLength && strings.Contains(titleLower, token) {
			return true
		}
	}

	return false
}
