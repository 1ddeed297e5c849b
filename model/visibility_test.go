package model

import "testing"

func TestNormalizeVisibility(t *testing.T) {
	tests := []struct {
		raw  string
		want Visibility
	}{
		{"pub", Public},
		{"public", Public},
		{"export", Public},
		{"priv", Private},
		{"private", Private},
		{"protected", Protected},
		{"internal", Internal},
		{"package", Package},
		{"pub(crate)", Crate},
		{"module", ModuleVis},
		{"", Unspecified},
		{"whatever-this-is", Unspecified},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeVisibility(tt.raw); got != tt.want {
				t.Errorf("NormalizeVisibility(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeVisibilityIdempotent(t *testing.T) {
	for v := range knownVisibilities {
		if got := NormalizeVisibility(string(v)); got != v {
			t.Errorf("NormalizeVisibility(%q) = %q, want idempotent %q", v, got, v)
		}
	}
}

func TestIdentifierVisibility(t *testing.T) {
	tests := []struct {
		name string
		want Visibility
	}{
		{"Start", Public},
		{"start", Package},
		{"_private", Package},
		{"", Package},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IdentifierVisibility(tt.name); got != tt.want {
				t.Errorf("IdentifierVisibility(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
