package registry

import (
	"fmt"
	"strings"

	"companyscout/internal/namekey"
)

// Policy selects how a candidate is chosen among search results.
type Policy string

const (
	// PolicyFirst keeps the first result the API returns.
	PolicyFirst Policy = "first"
	// PolicySimilarity keeps the result whose strict name key is most similar
	// to the query's, provided it reaches the matcher's MinScore.
	PolicySimilarity Policy = "similarity"
)

// ParsePolicy parses a policy name, case-insensitively.
func ParsePolicy(value string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(value))); p {
	case PolicyFirst, PolicySimilarity:
		return p, nil
	case "":
		return PolicyFirst, nil
	default:
		return "", fmt.Errorf("unknown match policy %q", value)
	}
}

// Match is the candidate picked for a query.
type Match struct {
	Result Result
	// Index is the candidate's position in the API response.
	Index int
	// Score is the strict-key similarity between query and candidate name.
	Score float64
}

// Matcher picks a registry candidate for a company name.
type Matcher struct {
	Policy     Policy
	MinScore   float64
	Normalizer namekey.Normalizer
}

// Pick returns the chosen candidate, or false when none qualifies.
//
// Under PolicyFirst the first result always wins and Score is informational.
// Under PolicySimilarity the highest score wins, ties keep API order, and a
// candidate needs a positive score of at least MinScore. A query whose strict
// key is empty never matches under PolicySimilarity.
func (m Matcher) Pick(query string, results []Result) (Match, bool) {
	if len(results) == 0 {
		return Match{}, false
	}
	queryKey := m.Normalizer.NormalizeStrict(query)

	if m.Policy != PolicySimilarity {
		return Match{Result: results[0], Index: 0, Score: m.score(queryKey, results[0])}, true
	}

	if queryKey == "" {
		return Match{}, false
	}
	best := Match{Index: -1, Score: -1}
	for i, candidate := range results {
		score := m.score(queryKey, candidate)
		if score > best.Score {
			best = Match{Result: candidate, Index: i, Score: score}
		}
	}
	if best.Score <= 0 || best.Score < m.MinScore {
		return Match{}, false
	}
	return best, true
}

func (m Matcher) score(queryKey string, candidate Result) float64 {
	return namekey.Similarity(queryKey, m.Normalizer.NormalizeStrict(candidate.Name()))
}
