// Package models defines the core records flowing through the recurrence
// pipeline: raw transactions, their enriched counterparts, and the recurring
// patterns the detector emits.
package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single parsed transaction row. It is created once
// at ingestion and never mutated; debits carry negative amounts, credits
// positive.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DebitCredit string          `json:"debitCredit"`
	Category    string          `json:"category"`
	Account     string          `json:"account"`
	Labels      string          `json:"labels,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// NewTransaction creates a new Transaction instance
func NewTransaction(date time.Time, description string, amount decimal.Decimal, debitCredit, category, account string) *Transaction {
	return &Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		DebitCredit: debitCredit,
		Category:    category,
		Account:     account,
	}
}

// Validate performs basic validation on the Transaction
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("transaction description cannot be empty")
	}

	if t.Date.IsZero() {
		return fmt.Errorf("transaction date cannot be zero")
	}

	return nil
}

// DayNumber returns the number of whole days since the Unix epoch for the
// transaction's calendar date, ignoring any time-of-day component.
func (t *Transaction) DayNumber() int {
	year, month, day := t.Date.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return int(midnight.Unix() / 86400)
}

// IsDebit returns true if the transaction amount is negative
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// IsCredit returns true if the transaction amount is positive
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// String returns a short, single-line representation of the Transaction
func (t *Transaction) String() string {
	desc := t.Description
	if len(desc) > 16 {
		desc = desc[:16]
	}
	return fmt.Sprintf("%s - $%s - %s (%s)",
		t.Date.Format("2006-01-02"), t.Amount.StringFixed(2), desc, t.Category)
}

// EnrichedTransaction wraps a Transaction with derived fields produced by the
// enrichment stages. Each stage returns a new value rather than mutating in
// place, so partially-enriched values can be shared freely.
type EnrichedTransaction struct {
	Transaction           *Transaction `json:"transaction"`
	NormalizedDescription string       `json:"normalizedDescription"`
	City                  string       `json:"city,omitempty"`
	StateProvince         string       `json:"stateProvince,omitempty"`
	Providers             []string     `json:"providers,omitempty"`
}

// NewEnrichedTransaction wraps a raw transaction with an empty set of derived
// fields; the enrichment stages fill them in.
func NewEnrichedTransaction(t *Transaction) EnrichedTransaction {
	return EnrichedTransaction{
		Transaction:           t,
		NormalizedDescription: t.Description,
	}
}

// WithNormalizedDescription returns a copy with the normalized description replaced
func (et EnrichedTransaction) WithNormalizedDescription(desc string) EnrichedTransaction {
	et.NormalizedDescription = desc
	return et
}

// WithLocation returns a copy with city/state set and the description trimmed
func (et EnrichedTransaction) WithLocation(city, state, trimmedDesc string) EnrichedTransaction {
	et.City = city
	et.StateProvince = state
	et.NormalizedDescription = trimmedDesc
	return et
}

// WithProviders returns a copy with matched payment providers recorded and the
// cleaned description applied
func (et EnrichedTransaction) WithProviders(providers []string, cleanedDesc string) EnrichedTransaction {
	et.Providers = providers
	et.NormalizedDescription = cleanedDesc
	return et
}

// RecurringPattern describes a group of transactions repeating at a
// consistent interval and amount. Instances are created only by the
// recurrence calculator and are immutable once built.
type RecurringPattern struct {
	CanonicalDescription string          `json:"canonicalDescription"`
	DescriptionVariants  []string        `json:"descriptionVariants"`
	MeanInterval         time.Duration   `json:"meanInterval"`
	MeanAmount           decimal.Decimal `json:"meanAmount"`
	Transactions         []*Transaction  `json:"transactions"`

	// IntervalConsistency is in [0,1]; closer to 1 is more consistent
	IntervalConsistency float64 `json:"intervalConsistency"`

	// AmountConsistency is in [0,1]; closer to 1 is more consistent
	AmountConsistency float64 `json:"amountConsistency"`
}

// Score returns the combined consistency score used to rank patterns
func (rp *RecurringPattern) Score() float64 {
	return rp.IntervalConsistency * rp.AmountConsistency
}

// MeanIntervalDays returns the mean interval expressed in days
func (rp *RecurringPattern) MeanIntervalDays() float64 {
	return rp.MeanInterval.Hours() / 24
}

// String returns a short summary of the pattern
func (rp *RecurringPattern) String() string {
	return fmt.Sprintf("RecurringPattern{%s, every %.1f days, $%s, %d members}",
		rp.CanonicalDescription, rp.MeanIntervalDays(), rp.MeanAmount.StringFixed(2), len(rp.Transactions))
}

// DistinctDescriptions returns the deduplicated, case-insensitively sorted
// raw descriptions of the supplied transactions.
func DistinctDescriptions(transactions []*Transaction) []string {
	seen := make(map[string]string, len(transactions))
	for _, t := range transactions {
		key := strings.ToUpper(t.Description)
		if _, ok := seen[key]; !ok {
			seen[key] = t.Description
		}
	}

	variants := make([]string, 0, len(seen))
	for _, v := range seen {
		variants = append(variants, v)
	}
	sort.Slice(variants, func(i, j int) bool {
		return strings.ToUpper(variants[i]) < strings.ToUpper(variants[j])
	})
	return variants
}

// ParseDecimalFromString parses a decimal value from string with validation
func ParseDecimalFromString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount string cannot be empty")
	}

	// Remove common currency symbols and thousand separators
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal format '%s': %w", s, err)
	}

	return d, nil
}

// SignAmount applies the debit/credit flag convention: debits become
// negative, credits stay positive. The magnitude of amount is preserved.
func SignAmount(amount decimal.Decimal, debitCredit string) decimal.Decimal {
	if strings.EqualFold(strings.TrimSpace(debitCredit), "debit") {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// ParseDateWithFormats attempts to parse a calendar date using common formats
func ParseDateWithFormats(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date string cannot be empty")
	}

	formats := []string{
		"2006-01-02",
		"01/02/2006",
		"2006/01/02",
		"02-01-2006",
		"Jan 2, 2006",
		"January 2, 2006",
		time.RFC3339,
	}

	var lastErr error
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			// Normalize to midnight UTC; the pipeline works in calendar days
			year, month, day := t.Date()
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
		} else {
			lastErr = err
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date '%s': %w", s, lastErr)
}
