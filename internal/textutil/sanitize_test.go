package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"energy-efficiency", "energy-efficiency"},
		{"  Smart Grid ", "smart_grid"},
		{"../etc/passwd", "etc_passwd"},
		{"", "unknown"},
		{"???", "unknown"},
		{"Mobilité", "mobilite"},
		{"Énergie & Eau", "energie_eau"},
		{"127.0.0.1", "127_0_0_1"},
		{"smart_grid", "smart_grid"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.in); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
