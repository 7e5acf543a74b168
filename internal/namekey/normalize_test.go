package namekey_test

import (
	"reflect"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"companyscout/internal/namekey"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"accents and case", "Société Générale", "SOCIETE GENERALE"},
		{"cedilla", "Façade Énergie", "FACADE ENERGIE"},
		{"legal form suffix", "Acme SAS", "ACME"},
		{"legal form with dots", "Acme S.A.R.L.", "ACME S A R L"},
		{"punctuation collapses", "  Sun--Partner / Technologies!! ", "SUN PARTNER TECHNOLOGIES"},
		{"keeps noise words", "Acme Group International", "ACME GROUP INTERNATIONAL"},
		{"digits kept", "3D-Print Lab GmbH", "3D PRINT LAB"},
		{"only legal forms", "SAS SARL", ""},
		{"sharp s expands", "Straße", "STRASSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := namekey.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeStrict(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"legal form", "Acme SAS", "ACME"},
		{"noise tokens", "Acme Group International", "ACME"},
		{"country qualifier", "Naval Energies France", "NAVAL ENERGIES"},
		{"connector", "Dupont et Fils", "DUPONT FILS"},
		{"orphan merged", "S'Tile", "STILE"},
		{"orphan before long token kept", "A Longername", "A LONGERNAME"},
		{"merged legal form dropped", "Acme S.A.", "ACME"},
		{"merged noise dropped", "Acme C.O.", "ACME"},
		{"only boilerplate", "Groupe Holding SAS", ""},
		{"accents", "Énergie Solaire", "ENERGIE SOLAIRE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := namekey.NormalizeStrict(tt.input); got != tt.want {
				t.Errorf("NormalizeStrict(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCaseAndAccentInvariance(t *testing.T) {
	a := namekey.Normalize("Société Générale")
	b := namekey.Normalize("SOCIETE GENERALE")
	if a != b {
		t.Fatalf("Normalize mismatch: %q vs %q", a, b)
	}
}

func TestStrictStripsLegalAndNoise(t *testing.T) {
	base := namekey.NormalizeStrict("Acme")
	for _, input := range []string{"Acme SAS", "ACME Group International", "acme, inc.", "Acme Holding Ltd"} {
		if got := namekey.NormalizeStrict(input); got != base {
			t.Errorf("NormalizeStrict(%q) = %q, want %q", input, got, base)
		}
	}
}

func TestNormalizeStrictIdempotent(t *testing.T) {
	inputs := []string{
		"S TILE",
		"A B CDE",
		"Acme S.A.",
		"X Y Z W",
		"Q LONGERWORD R",
		"É Co Énergies",
	}
	faker := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		inputs = append(inputs, faker.Company(), faker.Company()+" "+faker.CompanySuffix())
	}

	for _, input := range inputs {
		once := namekey.NormalizeStrict(input)
		twice := namekey.NormalizeStrict(once)
		if once != twice {
			t.Errorf("NormalizeStrict not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	faker := gofakeit.New(7)
	for i := 0; i < 200; i++ {
		input := faker.Company()
		once := namekey.Normalize(input)
		if twice := namekey.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestTokens(t *testing.T) {
	got := namekey.Tokens("  l'Énergie  du-Futur SAS ")
	want := []string{"L", "ENERGIE", "DU", "FUTUR", "SAS"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokens = %v, want %v", got, want)
	}
	if got := namekey.Tokens("   "); len(got) != 0 {
		t.Fatalf("Tokens(blank) = %v, want empty", got)
	}
}

func TestNormalizerCustomMergeRule(t *testing.T) {
	n := namekey.Normalizer{Merge: namekey.MergeRule{OrphanLen: 1, MaxNextLen: 6}}
	if got := n.NormalizeStrict("S Panels"); got != "SPANELS" {
		t.Fatalf("custom rule NormalizeStrict = %q, want SPANELS", got)
	}
	if got := namekey.NormalizeStrict("S Panels"); got != "S PANELS" {
		t.Fatalf("default rule NormalizeStrict = %q, want %q", got, "S PANELS")
	}

	var noMerge namekey.Normalizer
	if got := noMerge.NormalizeStrict("S Tile"); got != "S TILE" {
		t.Fatalf("zero Normalizer NormalizeStrict = %q, want %q", got, "S TILE")
	}
}

func TestVocabularies(t *testing.T) {
	for _, token := range []string{"SAS", "SARL", "GMBH", "LTD", "CORPORATION"} {
		if !namekey.IsLegalForm(token) {
			t.Errorf("expected %q to be a legal form", token)
		}
	}
	for _, token := range []string{"GROUP", "HOLDING", "FRANCE", "ET"} {
		if !namekey.IsNoise(token) {
			t.Errorf("expected %q to be noise", token)
		}
	}
	if namekey.IsLegalForm("sas") {
		t.Error("membership must be exact")
	}

	forms := namekey.LegalForms()
	forms[0] = "MUTATED"
	if namekey.IsLegalForm("MUTATED") {
		t.Fatal("LegalForms must return a copy")
	}
}
