package units

import (
	"math"
	"testing"

	"golang.org/x/text/language"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"3.50", 3.5, false},
		{"3,50", 3.5, false},
		{" 12 ", 12, false},
		{"0", 0, false},
		{"-2,5", -2.5, false},
		{"", 0, true},
		{"abc", 0, true},
		{"3,5,0", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, err := ParseDecimal(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", value)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(value-tt.expected) > 1e-10 {
				t.Errorf("expected %v, got %v", tt.expected, value)
			}
		})
	}
}

func TestFormatterBrazilian(t *testing.T) {
	f := NewFormatter(language.BrazilianPortuguese)

	if got := f.Meters(3.5); got != "3,50 m" {
		t.Errorf("Meters: got %q", got)
	}
	if got := f.SquareMeters(12); got != "12,00 m²" {
		t.Errorf("SquareMeters: got %q", got)
	}
	if got := f.Count(4); got != "4 un" {
		t.Errorf("Count: got %q", got)
	}
}

func TestFormatterEnglish(t *testing.T) {
	f := NewFormatter(language.AmericanEnglish)

	if got := f.Meters(3.5); got != "3.50 m" {
		t.Errorf("Meters: got %q", got)
	}
}

func TestParseLocaleFallback(t *testing.T) {
	if tag := ParseLocale("").Locale(); tag != DefaultLocale {
		t.Errorf("empty locale: got %v", tag)
	}
	if tag := ParseLocale("not a locale!").Locale(); tag != DefaultLocale {
		t.Errorf("invalid locale: got %v", tag)
	}
	if tag := ParseLocale("en-US").Locale(); tag != language.AmericanEnglish {
		t.Errorf("en-US: got %v", tag)
	}
}
