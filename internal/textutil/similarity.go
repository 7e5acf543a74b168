package textutil

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Block is a run of Size runes that appears at A in the first string and at B
// in the second.
type Block struct {
	A    int
	B    int
	Size int
}

// MatchingBlocks returns the non-overlapping common runs of a and b, ordered
// by position. The longest common substring is taken first (earliest in a,
// then earliest in b, on ties) and the regions to its left and right are
// searched recursively. Adjacent blocks are collapsed.
func MatchingBlocks(a, b string) []Block {
	matches := runeMatcher(a, b).GetMatchingBlocks()
	blocks := make([]Block, 0, len(matches))
	for _, m := range matches {
		if m.Size == 0 {
			continue
		}
		blocks = append(blocks, Block{A: m.A, B: m.B, Size: m.Size})
	}
	return blocks
}

// Ratio returns 2*M/T where M is the number of runes in matching blocks and T
// the combined rune length of both strings. Two empty strings score 1.
//
// Greedy block selection can depend on argument order, so the pair is scored
// in lexical order to keep Ratio(a, b) == Ratio(b, a).
func Ratio(a, b string) float64 {
	if b < a {
		a, b = b, a
	}
	return runeMatcher(a, b).Ratio()
}

// runeMatcher compares a and b rune by rune with the popularity heuristic off,
// so frequent runes in long names still count as matches.
func runeMatcher(a, b string) *difflib.SequenceMatcher {
	return difflib.NewMatcherWithJunk(runeStrings(a), runeStrings(b), false, nil)
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
