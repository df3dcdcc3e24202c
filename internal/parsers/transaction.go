// Package parsers reads personal-finance transaction exports into model
// records. Parsing is quote-aware: embedded commas and escaped quotes inside
// quoted fields are preserved, not treated as delimiters. Signed amounts are
// derived from the amount column plus a debit/credit flag column.
package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang-recurrence-finder/internal/models"
	"golang-recurrence-finder/pkg/errors"
	"golang-recurrence-finder/pkg/logger"
)

// TransactionParser handles parsing of transaction CSV exports
type TransactionParser struct {
	config *TransactionParserConfig
	logger logger.Logger
}

// NewTransactionParser creates a new TransactionParser with the given configuration
func NewTransactionParser(config *TransactionParserConfig) (*TransactionParser, error) {
	if config == nil {
		config = DefaultTransactionParserConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError(
			errors.CodeInvalidConfig,
			"transaction_parser_config",
			config,
			err,
		).WithSuggestion("Check the transaction parser column positions and delimiter")
	}

	return &TransactionParser{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("transaction_parser"),
	}, nil
}

// ParseFile parses a CSV file containing transactions
func (tp *TransactionParser) ParseFile(filePath string) ([]*models.Transaction, *ParseStats, error) {
	tp.logger.WithField("file_path", filePath).Info("Parsing transaction file")

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.FileError(errors.CodeFileNotFound, filePath, err)
		}
		return nil, nil, errors.FileError(errors.CodeFilePermission, filePath, err)
	}
	defer file.Close()

	transactions, stats, err := tp.Parse(file)
	if err != nil {
		return nil, stats, errors.WrapIfNeeded(err, errors.CategoryParse, errors.CodeInvalidFormat,
			fmt.Sprintf("failed to parse %s", filePath))
	}

	tp.logger.WithFields(logger.Fields{
		"total_rows":  stats.TotalRows,
		"parsed_rows": stats.ParsedRows,
		"skipped":     stats.SkippedRows,
	}).Info("Finished parsing transaction file")

	return transactions, stats, nil
}

// Parse reads transaction rows from r until EOF
func (tp *TransactionParser) Parse(r io.Reader) ([]*models.Transaction, *ParseStats, error) {
	reader := csv.NewReader(r)
	reader.Comma = tp.config.Delimiter
	reader.TrimLeadingSpace = true
	// Rows may carry optional trailing labels/notes fields
	reader.FieldsPerRecord = -1

	stats := &ParseStats{}
	var transactions []*models.Transaction
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++

		if err != nil {
			if tp.config.SkipInvalidRows {
				tp.logger.WithError(err).WithField("line", line).Warn("Skipping malformed row")
				stats.TotalRows++
				stats.SkippedRows++
				continue
			}
			return nil, stats, errors.ParseError(errors.CodeInvalidFormat, "input", line, "", "", err)
		}

		if line == 1 && tp.config.HasHeader {
			continue
		}

		stats.TotalRows++

		if isEmptyRecord(record) {
			stats.EmptyRows++
			continue
		}

		tx, err := tp.parseRecord(record, line)
		if err != nil {
			if tp.config.SkipInvalidRows {
				tp.logger.WithError(err).WithField("line", line).Warn("Skipping invalid row")
				stats.SkippedRows++
				continue
			}
			return nil, stats, err
		}

		transactions = append(transactions, tx)
		stats.ParsedRows++
	}

	return transactions, stats, nil
}

// parseRecord converts one CSV record into a Transaction
func (tp *TransactionParser) parseRecord(record []string, line int) (*models.Transaction, error) {
	if len(record) < tp.config.MinFieldCount() {
		return nil, errors.ParseError(errors.CodeMissingField, "input", line, "",
			fmt.Sprintf("%d fields", len(record)),
			fmt.Errorf("expected at least %d fields", tp.config.MinFieldCount()))
	}

	date, err := models.ParseDateWithFormats(record[tp.config.DateColumn])
	if err != nil {
		return nil, errors.ParseError(errors.CodeInvalidData, "input", line, "date",
			record[tp.config.DateColumn], err)
	}

	amount, err := models.ParseDecimalFromString(record[tp.config.AmountColumn])
	if err != nil {
		return nil, errors.ParseError(errors.CodeInvalidData, "input", line, "amount",
			record[tp.config.AmountColumn], err)
	}

	debitCredit := strings.TrimSpace(record[tp.config.DebitCreditColumn])

	tx := models.NewTransaction(
		date,
		strings.TrimSpace(record[tp.config.DescriptionColumn]),
		models.SignAmount(amount, debitCredit),
		debitCredit,
		strings.TrimSpace(record[tp.config.CategoryColumn]),
		strings.TrimSpace(record[tp.config.AccountColumn]),
	)

	if tp.config.LabelsColumn >= 0 && len(record) > tp.config.LabelsColumn {
		tx.Labels = strings.TrimSpace(record[tp.config.LabelsColumn])
	}
	if tp.config.NotesColumn >= 0 && len(record) > tp.config.NotesColumn {
		tx.Notes = strings.TrimSpace(record[tp.config.NotesColumn])
	}

	if err := tx.Validate(); err != nil {
		return nil, errors.DataError(errors.CodeInvalidData, "transaction", tx, err).
			WithContext("line", line)
	}

	return tx, nil
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
