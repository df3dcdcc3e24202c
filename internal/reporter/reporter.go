// Package reporter renders recurrence detection results for people and
// programs.
//
// Supported output formats:
//   - Console: human-readable summary and pattern table for terminal display
//   - JSON: structured data for programmatic consumption
//   - CSV: flat rows for spreadsheet applications
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"golang-recurrence-finder/internal/detector"
	"golang-recurrence-finder/internal/models"
)

// OutputFormat represents the supported report output formats
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// ReportConfig holds configuration options for report generation
type ReportConfig struct {
	// Format selects the output encoding
	Format OutputFormat `json:"format"`

	// IncludeMembers adds the per-transaction detail under each pattern
	IncludeMembers bool `json:"include_members"`

	// UseColors enables ANSI colors in console output
	UseColors bool `json:"use_colors"`

	// MaxPatterns caps the number of patterns rendered; 0 means all
	MaxPatterns int `json:"max_patterns"`

	// CSV options
	CSVDelimiter rune `json:"csv_delimiter"`
	CSVHeaders   bool `json:"csv_headers"`
}

// DefaultReportConfig returns a default report configuration
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:         FormatConsole,
		IncludeMembers: false,
		UseColors:      true,
		MaxPatterns:    0,
		CSVDelimiter:   ',',
		CSVHeaders:     true,
	}
}

// Validate validates the report configuration
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	if c.MaxPatterns < 0 {
		return fmt.Errorf("max patterns cannot be negative: %d", c.MaxPatterns)
	}
	if c.CSVDelimiter == 0 {
		return fmt.Errorf("csv delimiter cannot be empty")
	}
	return nil
}

// PatternReporter renders detection results in the configured format
type PatternReporter struct {
	config *ReportConfig
}

// NewPatternReporter creates a PatternReporter with the given configuration
func NewPatternReporter(config *ReportConfig) (*PatternReporter, error) {
	if config == nil {
		config = DefaultReportConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &PatternReporter{config: config}, nil
}

// Generate writes the report for a detection result to w
func (r *PatternReporter) Generate(result *detector.Result, w io.Writer) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	switch r.config.Format {
	case FormatJSON:
		return r.generateJSON(result, w)
	case FormatCSV:
		return r.generateCSV(result, w)
	default:
		return r.generateConsole(result, w)
	}
}

// patterns applies the MaxPatterns cap
func (r *PatternReporter) patterns(result *detector.Result) []*models.RecurringPattern {
	patterns := result.Patterns
	if r.config.MaxPatterns > 0 && len(patterns) > r.config.MaxPatterns {
		patterns = patterns[:r.config.MaxPatterns]
	}
	return patterns
}

func (r *PatternReporter) generateConsole(result *detector.Result, w io.Writer) error {
	colorize := func(c text.Color, s string) string {
		if r.config.UseColors {
			return c.Sprint(s)
		}
		return s
	}

	fmt.Fprintln(w, "RECURRING PAYMENT REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Transactions analyzed: %d\n", result.Summary.TotalTransactions)
	fmt.Fprintf(w, "Description clusters:  %d\n", result.Summary.Clusters)
	fmt.Fprintf(w, "Patterns detected:     %d (%d filtered out)\n",
		result.Summary.PatternsDetected, result.Summary.PatternsFiltered)
	fmt.Fprintf(w, "Processing time:       %v\n\n", result.Summary.ProcessingTime.Round(time.Millisecond))

	patterns := r.patterns(result)
	if len(patterns) == 0 {
		fmt.Fprintln(w, "No recurring patterns found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Description", "Cadence", "Mean Amount", "Members", "Interval", "Amount", "Score"})

	for _, p := range patterns {
		score := fmt.Sprintf("%.3f", p.Score())
		switch {
		case p.Score() >= 0.9:
			score = colorize(text.FgGreen, score)
		case p.Score() < 0.5:
			score = colorize(text.FgRed, score)
		}

		t.AppendRow(table.Row{
			p.CanonicalDescription,
			CadenceLabel(p.MeanIntervalDays()),
			"$" + p.MeanAmount.StringFixed(2),
			len(p.Transactions),
			fmt.Sprintf("%.3f", p.IntervalConsistency),
			fmt.Sprintf("%.3f", p.AmountConsistency),
			score,
		})
	}
	t.Render()

	if r.config.IncludeMembers {
		for _, p := range patterns {
			fmt.Fprintf(w, "\n%s (%s)\n", p.CanonicalDescription, CadenceLabel(p.MeanIntervalDays()))
			if len(p.DescriptionVariants) > 1 {
				fmt.Fprintf(w, "  variants: %s\n", strings.Join(p.DescriptionVariants, " | "))
			}
			for _, tx := range p.Transactions {
				fmt.Fprintf(w, "  %s  $%s  %s\n",
					tx.Date.Format("2006-01-02"), tx.Amount.StringFixed(2), tx.Description)
			}
		}
	}

	return nil
}

// jsonReport is the envelope for JSON output
type jsonReport struct {
	GeneratedAt time.Time                  `json:"generated_at"`
	Summary     detector.Summary           `json:"summary"`
	Patterns    []*models.RecurringPattern `json:"patterns"`
}

func (r *PatternReporter) generateJSON(result *detector.Result, w io.Writer) error {
	report := jsonReport{
		GeneratedAt: time.Now().UTC(),
		Summary:     result.Summary,
		Patterns:    r.patterns(result),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (r *PatternReporter) generateCSV(result *detector.Result, w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = r.config.CSVDelimiter
	defer writer.Flush()

	if r.config.CSVHeaders {
		header := []string{
			"description", "cadence", "mean_interval_days", "mean_amount",
			"members", "interval_consistency", "amount_consistency", "score",
			"first_date", "last_date",
		}
		if err := writer.Write(header); err != nil {
			return err
		}
	}

	for _, p := range r.patterns(result) {
		row := []string{
			p.CanonicalDescription,
			CadenceLabel(p.MeanIntervalDays()),
			strconv.FormatFloat(p.MeanIntervalDays(), 'f', 2, 64),
			p.MeanAmount.StringFixed(2),
			strconv.Itoa(len(p.Transactions)),
			strconv.FormatFloat(p.IntervalConsistency, 'f', 4, 64),
			strconv.FormatFloat(p.AmountConsistency, 'f', 4, 64),
			strconv.FormatFloat(p.Score(), 'f', 4, 64),
			p.Transactions[0].Date.Format("2006-01-02"),
			p.Transactions[len(p.Transactions)-1].Date.Format("2006-01-02"),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

// CadenceLabel names an interval in days with the closest human label
func CadenceLabel(days float64) string {
	switch {
	case days >= 6 && days <= 8:
		return "Weekly"
	case days >= 13 && days <= 15:
		return "Bi-weekly"
	case days >= 28 && days <= 32:
		return "Monthly"
	case days >= 88 && days <= 95:
		return "Quarterly"
	case days >= 175 && days <= 190:
		return "Semi-annual"
	case days >= 355 && days <= 375:
		return "Annual"
	default:
		return fmt.Sprintf("Every %.0f days", days)
	}
}
