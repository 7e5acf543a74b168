package namekey_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"companyscout/internal/namekey"
)

func TestSimilarityBoundaries(t *testing.T) {
	if got := namekey.Similarity("", "ACME"); got != 0 {
		t.Errorf("Similarity(\"\", ACME) = %v, want 0", got)
	}
	if got := namekey.Similarity("ACME", ""); got != 0 {
		t.Errorf("Similarity(ACME, \"\") = %v, want 0", got)
	}
	if got := namekey.Similarity("", ""); got != 0 {
		t.Errorf("Similarity(\"\", \"\") = %v, want 0", got)
	}
	if got := namekey.Similarity("ACME", "ACME"); got != 1 {
		t.Errorf("Similarity(ACME, ACME) = %v, want 1", got)
	}
}

func TestSimilarityOrdersCandidates(t *testing.T) {
	query := namekey.NormalizeStrict("Sunpartner Technologies SAS")
	near := namekey.NormalizeStrict("SUNPARTNER TECHNOLOGIES")
	far := namekey.NormalizeStrict("Boulangerie Martin")

	if namekey.Similarity(query, near) <= namekey.Similarity(query, far) {
		t.Fatalf("expected %q to score above %q for %q", near, far, query)
	}
}

func TestSimilaritySymmetricAndBounded(t *testing.T) {
	faker := gofakeit.New(1234)
	for i := 0; i < 300; i++ {
		a := namekey.NormalizeStrict(faker.Company())
		b := namekey.NormalizeStrict(faker.Company())
		ab := namekey.Similarity(a, b)
		ba := namekey.Similarity(b, a)
		if ab != ba {
			t.Fatalf("Similarity(%q, %q) = %v but reversed = %v", a, b, ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Fatalf("Similarity(%q, %q) = %v out of [0,1]", a, b, ab)
		}
	}
}
