package parsers

import (
	"fmt"
)

// TransactionParserConfig controls how transaction CSV exports are read.
// Columns are positional because personal-finance exports rarely agree on
// header names; the defaults match the common
// date,description,amount,flag,category,account,labels,notes layout.
type TransactionParserConfig struct {
	// HasHeader indicates whether the first row is a header to skip
	HasHeader bool `json:"has_header"`

	// Delimiter is the field separator character
	Delimiter rune `json:"delimiter"`

	// SkipInvalidRows continues past unparseable rows instead of failing;
	// skipped rows are counted in ParseStats
	SkipInvalidRows bool `json:"skip_invalid_rows"`

	// Column positions (zero-based)
	DateColumn        int `json:"date_column"`
	DescriptionColumn int `json:"description_column"`
	AmountColumn      int `json:"amount_column"`
	DebitCreditColumn int `json:"debit_credit_column"`
	CategoryColumn    int `json:"category_column"`
	AccountColumn     int `json:"account_column"`

	// Optional columns; -1 disables
	LabelsColumn int `json:"labels_column"`
	NotesColumn  int `json:"notes_column"`
}

// DefaultTransactionParserConfig returns a configuration matching the common
// export layout
func DefaultTransactionParserConfig() *TransactionParserConfig {
	return &TransactionParserConfig{
		HasHeader:         true,
		Delimiter:         ',',
		SkipInvalidRows:   false,
		DateColumn:        0,
		DescriptionColumn: 1,
		AmountColumn:      2,
		DebitCreditColumn: 3,
		CategoryColumn:    4,
		AccountColumn:     5,
		LabelsColumn:      6,
		NotesColumn:       7,
	}
}

// Validate checks the parser configuration for conflicts
func (c *TransactionParserConfig) Validate() error {
	if c.Delimiter == 0 {
		return fmt.Errorf("delimiter cannot be empty")
	}

	required := map[string]int{
		"date":         c.DateColumn,
		"description":  c.DescriptionColumn,
		"amount":       c.AmountColumn,
		"debit_credit": c.DebitCreditColumn,
		"category":     c.CategoryColumn,
		"account":      c.AccountColumn,
	}

	positions := make(map[int]string, len(required))
	for name, col := range required {
		if col < 0 {
			return fmt.Errorf("%s column position cannot be negative: %d", name, col)
		}
		if other, taken := positions[col]; taken {
			return fmt.Errorf("%s and %s columns cannot share position %d", name, other, col)
		}
		positions[col] = name
	}

	return nil
}

// MinFieldCount returns the minimum number of fields a row must have to
// cover all required columns
func (c *TransactionParserConfig) MinFieldCount() int {
	max := c.DateColumn
	for _, col := range []int{c.DescriptionColumn, c.AmountColumn, c.DebitCreditColumn, c.CategoryColumn, c.AccountColumn} {
		if col > max {
			max = col
		}
	}
	return max + 1
}

// ParseStats tracks the outcome of a parsing run
type ParseStats struct {
	TotalRows   int `json:"total_rows"`
	ParsedRows  int `json:"parsed_rows"`
	SkippedRows int `json:"skipped_rows"`
	EmptyRows   int `json:"empty_rows"`
}
