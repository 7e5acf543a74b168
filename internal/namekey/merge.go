package namekey

import "unicode/utf8"

// MergeRule recombines tokens that upstream markup split apart: a token of
// exactly OrphanLen characters is glued to a following token of at most
// MaxNextLen characters.
//
// The rule is a narrow heuristic. It over-merges genuine standalone initials
// ("J BOND" becomes "JBOND") and ignores every other split pattern. A rule with
// OrphanLen <= 0 never merges.
type MergeRule struct {
	OrphanLen  int
	MaxNextLen int
}

// DefaultMergeRule glues a single letter to a following token of up to four
// characters.
var DefaultMergeRule = MergeRule{OrphanLen: 1, MaxNextLen: 4}

// Merge applies DefaultMergeRule to tokens.
func Merge(tokens []string) []string {
	return DefaultMergeRule.Apply(tokens)
}

// Apply scans tokens left to right and returns a new slice; tokens itself is
// not modified.
func (r MergeRule) Apply(tokens []string) []string {
	merged := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if r.OrphanLen > 0 && i+1 < len(tokens) &&
			utf8.RuneCountInString(tokens[i]) == r.OrphanLen &&
			utf8.RuneCountInString(tokens[i+1]) <= r.MaxNextLen {
			merged = append(merged, tokens[i]+tokens[i+1])
			i++
			continue
		}
		merged = append(merged, tokens[i])
	}
	return merged
}
