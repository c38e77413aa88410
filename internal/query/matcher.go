package query

import (
	"math"
	"strings"

	"github.com/sahilm/fuzzy"
)

// MaxFuzzyScore is the score of a candidate that matches every query term
// as well as the term matches itself.
const MaxFuzzyScore = 100

// Matcher scores how well candidate matches query. Zero means no match;
// any match scores at least 1.
type Matcher interface {
	Score(query, candidate string) int
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(query, candidate string) int

func (f MatcherFunc) Score(query, candidate string) int {
	return f(query, candidate)
}

// FuzzyMatcher is a case-insensitive subsequence matcher. Whitespace
// separates terms and every term must match. The result is the mean of
// the per-term scores, each in 1..MaxFuzzyScore.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Score(query, candidate string) int {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return 0
	}

	total := 0
	for _, term := range terms {
		score := termScore(term, candidate)
		if score == 0 {
			return 0
		}
		total += score
	}
	return total / len(terms)
}

// termScore maps the raw fuzzy score of term against candidate onto
// 1..MaxFuzzyScore, relative to term matched against itself. Raw scores
// grow exponentially with runs of adjacent matches, so the ratio is taken
// on a log scale.
func termScore(term, candidate string) int {
	matches := fuzzy.Find(term, []string{candidate})
	if len(matches) == 0 {
		return 0
	}

	raw := matches[0].Score
	if raw < 1 {
		return 1
	}

	self := fuzzy.Find(term, []string{term})
	if len(self) == 0 || self[0].Score < 1 {
		return MaxFuzzyScore
	}
	ratio := math.Log1p(float64(raw)) / math.Log1p(float64(self[0].Score))
	score := int(math.Round(ratio * MaxFuzzyScore))
	return min(max(score, 1), MaxFuzzyScore)
}
