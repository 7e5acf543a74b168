package namekey

import (
	"maps"
	"slices"
)

// legalForms lists corporate legal-structure abbreviations across French and
// English conventions.
var legalForms = newTokenSet(
	"SAS", "SASU", "SARL", "SA", "SNC", "EURL", "GIE",
	"LTD", "LIMITED", "INC", "CORP", "CORPORATION",
	"BV", "GMBH", "SPA", "SRL",
)

// noiseTokens lists generic corporate words, country qualifiers, and
// connectors that carry no identity on their own.
var noiseTokens = newTokenSet(
	"GROUPE", "GROUP", "HOLDING", "FRANCE", "INTERNATIONAL", "INTL",
	"COMPANY", "CO", "SOC", "SOCIETE", "ET", "ETABLISSEMENTS",
)

type tokenSet map[string]struct{}

func newTokenSet(tokens ...string) tokenSet {
	set := make(tokenSet, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

func (s tokenSet) has(token string) bool {
	_, ok := s[token]
	return ok
}

// IsLegalForm reports whether token is a legal-form abbreviation. Tokens are
// compared exactly, so callers should pass upper-case ASCII tokens.
func IsLegalForm(token string) bool {
	return legalForms.has(token)
}

// IsNoise reports whether token is a generic corporate boilerplate word.
func IsNoise(token string) bool {
	return noiseTokens.has(token)
}

// LegalForms returns the legal-form vocabulary in sorted order.
func LegalForms() []string {
	return legalForms.list()
}

// NoiseTokens returns the boilerplate vocabulary in sorted order.
func NoiseTokens() []string {
	return noiseTokens.list()
}

func (s tokenSet) list() []string {
	return slices.Sorted(maps.Keys(s))
}
