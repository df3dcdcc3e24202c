package enrich

import (
	"reflect"
	"testing"
)

func TestPaymentProviderFinder_Identify(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantProviders []string
		wantCleaned   string
	}{
		{
			name:          "square marker",
			input:         "SQ *COFFEE SHOP",
			wantProviders: []string{"SQUARE"},
			wantCleaned:   "*COFFEE SHOP",
		},
		{
			name:          "toast marker",
			input:         "TST* PIZZERIA NAPOLI",
			wantProviders: []string{"TOAST"},
			wantCleaned:   "PIZZERIA NAPOLI",
		},
		{
			name:          "paypal with clearable tokens",
			input:         "PAYPAL INST XFER SPOTIFY",
			wantProviders: []string{"PAYPAL"},
			wantCleaned:   "SPOTIFY",
		},
		{
			name:          "venmo plain word",
			input:         "VENMO CASHOUT",
			wantProviders: []string{"VENMO"},
			wantCleaned:   "CASHOUT",
		},
		{
			name:          "no match returns input unchanged",
			input:         "NETFLIX COM",
			wantProviders: nil,
			wantCleaned:   "NETFLIX COM",
		},
		{
			name:          "case sensitive matching",
			input:         "sq *coffee shop",
			wantProviders: nil,
			wantCleaned:   "sq *coffee shop",
		},
	}

	finder := NewPaymentProviderFinder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers, cleaned := finder.Identify(tt.input)
			if !reflect.DeepEqual(providers, tt.wantProviders) {
				t.Errorf("Identify(%q) providers = %v, want %v", tt.input, providers, tt.wantProviders)
			}
			if cleaned != tt.wantCleaned {
				t.Errorf("Identify(%q) cleaned = %q, want %q", tt.input, cleaned, tt.wantCleaned)
			}
		})
	}
}

func TestPaymentProviderFinder_MultipleMatches(t *testing.T) {
	finder := NewPaymentProviderFinder()

	providers, _ := finder.Identify("SQ *VENMO TOPUP")
	if len(providers) != 2 {
		t.Fatalf("Expected 2 providers, got %v", providers)
	}
	if providers[0] != "SQUARE" || providers[1] != "VENMO" {
		t.Errorf("Expected rule-table order [SQUARE VENMO], got %v", providers)
	}
}
