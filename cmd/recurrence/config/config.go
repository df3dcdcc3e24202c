// Package config assembles component configurations from CLI flag values.
package config

import (
	"golang-recurrence-finder/internal/cluster"
	"golang-recurrence-finder/internal/detector"
	"golang-recurrence-finder/internal/enrich"
	"golang-recurrence-finder/internal/parsers"
	"golang-recurrence-finder/internal/recurrence"
	"golang-recurrence-finder/internal/reporter"
	"golang-recurrence-finder/internal/similarity"
)

// DetectorFlags carries the CLI overrides for the detection pipeline
type DetectorFlags struct {
	MatchThreshold         int
	DeviationCeiling       float64
	SimilarityThreshold    float64
	LevenshteinWeight      float64
	WordWeight             float64
	NgramWeight            float64
	NgramLength            int
	KeepTrailingDigits     bool
	Workers                int
	MinIntervalConsistency float64
	MinAmountConsistency   float64
}

// CreateParserConfig creates a transaction parser configuration
func CreateParserConfig(noHeader, skipInvalid bool) *parsers.TransactionParserConfig {
	config := parsers.DefaultTransactionParserConfig()
	config.HasHeader = !noHeader
	config.SkipInvalidRows = skipInvalid
	return config
}

// CreateDetectorConfig creates a detector configuration from CLI flags
func CreateDetectorConfig(flags DetectorFlags) *detector.Config {
	config := detector.DefaultConfig()

	config.Enrich = &enrich.Config{
		Normalizer: &enrich.NormalizerConfig{
			KeepTrailingDigits: flags.KeepTrailingDigits,
		},
		Workers: flags.Workers,
	}
	if config.Enrich.Workers < 1 {
		config.Enrich.Workers = enrich.DefaultConfig().Workers
	}

	config.Cluster = &cluster.Config{
		SimilarityThreshold: flags.SimilarityThreshold,
		Ensemble: &similarity.EnsembleConfig{
			LevenshteinWeight: flags.LevenshteinWeight,
			WordWeight:        flags.WordWeight,
			NgramWeight:       flags.NgramWeight,
			NgramLength:       flags.NgramLength,
		},
	}

	config.Recurrence = &recurrence.Config{
		MatchThreshold:   flags.MatchThreshold,
		DeviationCeiling: flags.DeviationCeiling,
	}

	config.MinIntervalConsistency = flags.MinIntervalConsistency
	config.MinAmountConsistency = flags.MinAmountConsistency

	return config
}

// CreateReportConfig creates a report configuration for the specified output
// format
func CreateReportConfig(format string, includeMembers bool, maxPatterns int) *reporter.ReportConfig {
	config := reporter.DefaultReportConfig()
	config.IncludeMembers = includeMembers
	config.MaxPatterns = maxPatterns

	switch format {
	case "json":
		config.Format = reporter.FormatJSON
	case "csv":
		config.Format = reporter.FormatCSV
		config.CSVHeaders = true
		config.CSVDelimiter = ','
	default:
		config.Format = reporter.FormatConsole
		config.UseColors = true
	}

	return config
}
