package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      *Transaction
		wantErr bool
	}{
		{
			name: "valid transaction",
			tx: NewTransaction(
				time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				"NETFLIX.COM", decimal.NewFromFloat(-15.49), "debit", "Entertainment", "Checking"),
			wantErr: false,
		},
		{
			name: "empty description",
			tx: NewTransaction(
				time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				"   ", decimal.NewFromFloat(-15.49), "debit", "Entertainment", "Checking"),
			wantErr: true,
		},
		{
			name:    "zero date",
			tx:      NewTransaction(time.Time{}, "NETFLIX.COM", decimal.NewFromFloat(-15.49), "debit", "Entertainment", "Checking"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransaction_DayNumber(t *testing.T) {
	a := NewTransaction(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "A", decimal.NewFromInt(1), "credit", "", "")
	b := NewTransaction(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC), "B", decimal.NewFromInt(1), "credit", "", "")

	if diff := b.DayNumber() - a.DayNumber(); diff != 30 {
		t.Errorf("Expected 30 day difference, got %d", diff)
	}
}

func TestTransaction_DebitCredit(t *testing.T) {
	debit := NewTransaction(time.Now(), "STORE", decimal.NewFromFloat(-20.00), "debit", "", "")
	credit := NewTransaction(time.Now(), "PAYROLL", decimal.NewFromFloat(1500.00), "credit", "", "")

	if !debit.IsDebit() || debit.IsCredit() {
		t.Error("Expected negative amount to be a debit")
	}
	if !credit.IsCredit() || credit.IsDebit() {
		t.Error("Expected positive amount to be a credit")
	}
}

func TestEnrichedTransaction_CopySemantics(t *testing.T) {
	tx := NewTransaction(time.Now(), "SQ *COFFEE SHOP", decimal.NewFromFloat(-4.50), "debit", "Food", "Checking")
	original := NewEnrichedTransaction(tx)

	modified := original.WithNormalizedDescription("SQ COFFEE SHOP")
	if original.NormalizedDescription != "SQ *COFFEE SHOP" {
		t.Error("Expected original to be unchanged after WithNormalizedDescription")
	}
	if modified.NormalizedDescription != "SQ COFFEE SHOP" {
		t.Errorf("Expected modified description, got '%s'", modified.NormalizedDescription)
	}

	withLoc := modified.WithLocation("SEATTLE", "WA", "SQ COFFEE")
	if modified.City != "" {
		t.Error("Expected WithLocation to not mutate the receiver")
	}
	if withLoc.City != "SEATTLE" || withLoc.StateProvince != "WA" {
		t.Errorf("Expected location fields set, got city='%s' state='%s'", withLoc.City, withLoc.StateProvince)
	}

	withProviders := withLoc.WithProviders([]string{"SQUARE"}, "COFFEE")
	if len(withLoc.Providers) != 0 {
		t.Error("Expected WithProviders to not mutate the receiver")
	}
	if len(withProviders.Providers) != 1 || withProviders.Providers[0] != "SQUARE" {
		t.Errorf("Expected SQUARE provider, got %v", withProviders.Providers)
	}
}

func TestRecurringPattern_Score(t *testing.T) {
	pattern := &RecurringPattern{
		IntervalConsistency: 0.9,
		AmountConsistency:   0.8,
	}

	score := pattern.Score()
	if score < 0.719 || score > 0.721 {
		t.Errorf("Expected score 0.72, got %f", score)
	}
}

func TestRecurringPattern_MeanIntervalDays(t *testing.T) {
	pattern := &RecurringPattern{MeanInterval: 30 * 24 * time.Hour}
	if days := pattern.MeanIntervalDays(); days != 30 {
		t.Errorf("Expected 30 days, got %f", days)
	}
}

func TestDistinctDescriptions(t *testing.T) {
	txns := []*Transaction{
		{Description: "Netflix.com"},
		{Description: "NETFLIX.COM"},
		{Description: "AMAZON PRIME"},
		{Description: "netflix.com"},
	}

	variants := DistinctDescriptions(txns)
	if len(variants) != 2 {
		t.Fatalf("Expected 2 distinct descriptions, got %d: %v", len(variants), variants)
	}
	if variants[0] != "AMAZON PRIME" {
		t.Errorf("Expected case-insensitive sort with AMAZON PRIME first, got %v", variants)
	}
}

func TestParseDecimalFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"100.50", "100.5", false},
		{"$1,234.56", "1234.56", false},
		{"  42  ", "42", false},
		{"", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDecimalFromString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDecimalFromString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && d.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, d.String())
			}
		})
	}
}

func TestSignAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		debitCredit string
		expected    string
	}{
		{"debit becomes negative", decimal.NewFromFloat(50.00), "debit", "-50"},
		{"debit flag case-insensitive", decimal.NewFromFloat(50.00), "DEBIT", "-50"},
		{"credit stays positive", decimal.NewFromFloat(50.00), "credit", "50"},
		{"already-negative debit keeps magnitude", decimal.NewFromFloat(-50.00), "debit", "-50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed := SignAmount(tt.amount, tt.debitCredit)
			if signed.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, signed.String())
			}
		})
	}
}

func TestParseDateWithFormats(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2024-01-15", false},
		{"01/15/2024", false},
		{"Jan 15, 2024", false},
		{"", true},
		{"not a date", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDateWithFormats(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateWithFormats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr {
				if d.Hour() != 0 || d.Minute() != 0 {
					t.Error("Expected parsed date to be normalized to midnight")
				}
				if d.Location() != time.UTC {
					t.Error("Expected parsed date in UTC")
				}
			}
		})
	}
}
