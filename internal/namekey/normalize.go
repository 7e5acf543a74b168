package namekey

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks left behind by canonical decomposition.
// runes.Remove holds no state, so the shared value is safe across goroutines.
var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Normalizer produces canonical keys. The zero value never merges tokens;
// use DefaultNormalizer or set Merge explicitly.
type Normalizer struct {
	Merge MergeRule
}

// DefaultNormalizer applies DefaultMergeRule in the strict variant.
var DefaultNormalizer = Normalizer{Merge: DefaultMergeRule}

// Normalize returns the plain key for raw using DefaultNormalizer.
func Normalize(raw string) string {
	return DefaultNormalizer.Normalize(raw)
}

// NormalizeStrict returns the deduplication key for raw using DefaultNormalizer.
func NormalizeStrict(raw string) string {
	return DefaultNormalizer.NormalizeStrict(raw)
}

// Normalize upper-cases, folds accents, strips punctuation, and drops
// legal-form tokens. Noise words are kept, which makes the result suitable for
// previews and exploratory similarity.
func (n Normalizer) Normalize(raw string) string {
	tokens := Tokens(raw)
	kept := tokens[:0]
	for _, token := range tokens {
		if IsLegalForm(token) {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// NormalizeStrict drops legal-form and noise tokens, then applies the merge
// rule. Merged tokens that form a vocabulary word ("S A" -> "SA") are dropped
// as well so the key is stable under re-normalization.
func (n Normalizer) NormalizeStrict(raw string) string {
	merged := n.Merge.Apply(filterStrict(Tokens(raw)))
	return strings.Join(filterStrict(merged), " ")
}

// Tokens segments raw into upper-case ASCII letter/digit runs without any
// vocabulary filtering. Blank input yields no tokens.
func Tokens(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	upper := cases.Upper(language.Und).String(raw)
	folded, _, err := transform.String(stripMarks, norm.NFKD.String(upper))
	if err != nil {
		folded = upper
	}
	return strings.FieldsFunc(folded, isSeparator)
}

func isSeparator(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return false
	case r >= '0' && r <= '9':
		return false
	default:
		return true
	}
}

func filterStrict(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if IsLegalForm(token) || IsNoise(token) {
			continue
		}
		kept = append(kept, token)
	}
	return kept
}
