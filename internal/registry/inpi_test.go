package registry_test

import (
	"testing"

	"companyscout/internal/company"
	"companyscout/internal/registry"
)

func TestINPISearchURL(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"  Société Générale ", "https://data.inpi.fr/search?q=Soci%C3%A9t%C3%A9+G%C3%A9n%C3%A9rale"},
		{"A&B", "https://data.inpi.fr/search?q=A%26B"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := registry.INPISearchURL(registry.DefaultINPIBaseURL, tt.name); got != tt.want {
			t.Errorf("INPISearchURL(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
	if got := registry.INPISearchURL("", "Acme"); got != "https://data.inpi.fr/search?q=Acme" {
		t.Errorf("blank base should fall back to default, got %q", got)
	}
}

func TestWithINPILinks(t *testing.T) {
	in := []company.Record{{Name: "Acme SAS"}, {Name: ""}}
	out := registry.WithINPILinks("https://example.test/search", in)
	if out[0].INPIURL != "https://example.test/search?q=Acme+SAS" || out[1].INPIURL != "" {
		t.Fatalf("unexpected links: %+v", out)
	}
	if in[0].INPIURL != "" {
		t.Fatal("input must not be mutated")
	}
}
