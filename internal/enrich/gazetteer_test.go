package enrich

import (
	"testing"
)

func TestLocationFinder_Extract(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCity    string
		wantState   string
		wantTrimmed string
	}{
		{
			name:        "city and state suffix",
			input:       "UBER EATS SAN FRANCISCO CA",
			wantCity:    "SAN FRANCISCO",
			wantState:   "CA",
			wantTrimmed: "UBER EATS",
		},
		{
			name:        "bare state code",
			input:       "TRADER JOES ACTON MA",
			wantCity:    "",
			wantState:   "MA",
			wantTrimmed: "TRADER JOES ACTON",
		},
		{
			name:        "longest suffix wins over bare state",
			input:       "PARKING NEW YORK NY",
			wantCity:    "NEW YORK",
			wantState:   "NY",
			wantTrimmed: "PARKING",
		},
		{
			name:        "no match",
			input:       "NETFLIX COM",
			wantCity:    "",
			wantState:   "",
			wantTrimmed: "NETFLIX COM",
		},
		{
			name:        "location mid-string ignored",
			input:       "BOSTON MA PARKING GARAGE",
			wantCity:    "",
			wantState:   "",
			wantTrimmed: "BOSTON MA PARKING GARAGE",
		},
	}

	finder := NewLocationFinder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, state, trimmed := finder.Extract(tt.input)
			if city != tt.wantCity || state != tt.wantState {
				t.Errorf("Extract(%q) = (%q, %q), want (%q, %q)", tt.input, city, state, tt.wantCity, tt.wantState)
			}
			if trimmed != tt.wantTrimmed {
				t.Errorf("Extract(%q) trimmed = %q, want %q", tt.input, trimmed, tt.wantTrimmed)
			}
		})
	}
}

func TestLocationFinder_TrimsByKeyLength(t *testing.T) {
	finder := NewLocationFinder()

	// "VI" is a two-letter key that expands to a longer structured location;
	// only the two matched characters may be trimmed.
	_, state, trimmed := finder.Extract("ISLAND TOURS VI")
	if state != "USVI" {
		t.Fatalf("Expected USVI for VI suffix, got %q", state)
	}
	if trimmed != "ISLAND TOURS" {
		t.Errorf("Expected trim of exactly the matched key, got %q", trimmed)
	}
}
