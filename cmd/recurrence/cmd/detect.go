package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"golang-recurrence-finder/cmd/recurrence/config"
	"golang-recurrence-finder/internal/detector"
	"golang-recurrence-finder/internal/parsers"
	"golang-recurrence-finder/internal/reporter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the detect command
var (
	inputFile    string
	outputFormat string
	outputFile   string

	noHeader    bool
	skipInvalid bool

	matchThreshold      int
	deviationCeiling    float64
	similarityThreshold float64
	levenshteinWeight   float64
	wordWeight          float64
	ngramWeight         float64
	ngramLength         int
	keepTrailingDigits  bool
	workers             int

	minIntervalConsistency float64
	minAmountConsistency   float64
	includeMembers         bool
	maxPatterns            int
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect recurring payments in a transaction history",
	Long: `Detect reads a transaction CSV, enriches and clusters the merchant
descriptions, and reports the recurring payment patterns it finds.

The input CSV columns are: date, description, amount, debit/credit flag,
category, account, and optional labels and notes.

Examples:
  # Basic detection with console output
  recurrence detect --input transactions.csv

  # JSON report written to a file
  recurrence detect --input transactions.csv --output-format json --output-file patterns.json

  # Only high-confidence patterns, with member detail
  recurrence detect --input transactions.csv \
    --min-interval-consistency 0.8 --min-amount-consistency 0.8 --members

  # Tighter clustering and a stricter member count
  recurrence detect --input transactions.csv --similarity-threshold 0.9 --match-threshold 4`,

	PreRunE: validateDetectFlags,
	RunE:    runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	// Required flags
	detectCmd.Flags().StringVarP(&inputFile, "input", "i", "", "path to transaction CSV file (required)")

	// Output flags
	detectCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv")
	detectCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	// Input format flags
	detectCmd.Flags().BoolVar(&noHeader, "no-header", false, "input file has no header row")
	detectCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "skip unparseable rows instead of failing")

	// Detection configuration flags
	detectCmd.Flags().IntVar(&matchThreshold, "match-threshold", 3, "minimum transactions per pattern")
	detectCmd.Flags().Float64Var(&deviationCeiling, "deviation-ceiling", 0.2, "max mean relative deviation to accept a canonical interval")
	detectCmd.Flags().Float64Var(&similarityThreshold, "similarity-threshold", 0.8, "clustering similarity cutoff")
	detectCmd.Flags().Float64Var(&levenshteinWeight, "levenshtein-weight", 0.4, "edit-distance weight in the similarity ensemble")
	detectCmd.Flags().Float64Var(&wordWeight, "word-weight", 0.4, "token Jaccard weight in the similarity ensemble")
	detectCmd.Flags().Float64Var(&ngramWeight, "ngram-weight", 0.2, "character n-gram weight in the similarity ensemble")
	detectCmd.Flags().IntVar(&ngramLength, "ngram-length", 3, "character n-gram size")
	detectCmd.Flags().BoolVar(&keepTrailingDigits, "keep-trailing-digits", true, "retain a trailing run of up to 4 digits in descriptions")
	detectCmd.Flags().IntVar(&workers, "workers", 0, "enrichment worker count (0 = number of CPUs)")

	// Result filtering and presentation flags
	detectCmd.Flags().Float64Var(&minIntervalConsistency, "min-interval-consistency", 0, "drop patterns below this interval consistency")
	detectCmd.Flags().Float64Var(&minAmountConsistency, "min-amount-consistency", 0, "drop patterns below this amount consistency")
	detectCmd.Flags().BoolVar(&includeMembers, "members", false, "include member transactions in the report")
	detectCmd.Flags().IntVar(&maxPatterns, "max-patterns", 0, "cap the number of reported patterns (0 = all)")

	detectCmd.MarkFlagRequired("input")

	// Bind flags to viper
	viper.BindPFlag("input", detectCmd.Flags().Lookup("input"))
	viper.BindPFlag("output-format", detectCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", detectCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("match-threshold", detectCmd.Flags().Lookup("match-threshold"))
	viper.BindPFlag("deviation-ceiling", detectCmd.Flags().Lookup("deviation-ceiling"))
	viper.BindPFlag("similarity-threshold", detectCmd.Flags().Lookup("similarity-threshold"))
	viper.BindPFlag("workers", detectCmd.Flags().Lookup("workers"))
}

func validateDetectFlags(cmd *cobra.Command, args []string) error {
	// Viper values win so the config file and environment can override
	inputFile = viper.GetString("input")
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")
	matchThreshold = viper.GetInt("match-threshold")
	deviationCeiling = viper.GetFloat64("deviation-ceiling")
	similarityThreshold = viper.GetFloat64("similarity-threshold")
	workers = viper.GetInt("workers")

	if inputFile == "" {
		return fmt.Errorf("input is required")
	}
	if err := validateFileExists(inputFile, "transaction file"); err != nil {
		return err
	}

	validFormats := map[string]bool{"console": true, "json": true, "csv": true}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json, csv", outputFormat)
	}

	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runDetect(cmd *cobra.Command, args []string) error {
	handler := NewCLIErrorHandler()

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting recurrence detection...\n")
		fmt.Fprintf(os.Stderr, "Input file: %s\n", inputFile)
		fmt.Fprintf(os.Stderr, "Output format: %s\n", outputFormat)
		if outputFile != "" {
			fmt.Fprintf(os.Stderr, "Output file: %s\n", outputFile)
		}
	}

	// Parse the transaction batch
	parser, err := parsers.NewTransactionParser(config.CreateParserConfig(noHeader, skipInvalid))
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	transactions, stats, err := parser.ParseFile(inputFile)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Parsed %d transactions (%d rows skipped, %d empty)\n",
			stats.ParsedRows, stats.SkippedRows, stats.EmptyRows)
	}

	// Build and run the detection pipeline
	detectorConfig := config.CreateDetectorConfig(config.DetectorFlags{
		MatchThreshold:         matchThreshold,
		DeviationCeiling:       deviationCeiling,
		SimilarityThreshold:    similarityThreshold,
		LevenshteinWeight:      levenshteinWeight,
		WordWeight:             wordWeight,
		NgramWeight:            ngramWeight,
		NgramLength:            ngramLength,
		KeepTrailingDigits:     keepTrailingDigits,
		Workers:                workers,
		MinIntervalConsistency: minIntervalConsistency,
		MinAmountConsistency:   minAmountConsistency,
	})

	d, err := detector.NewDetector(detectorConfig)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	result, err := d.Detect(transactions)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	// Render the report
	reportConfig := config.CreateReportConfig(outputFormat, includeMembers, maxPatterns)
	patternReporter, err := reporter.NewPatternReporter(reportConfig)
	if err != nil {
		os.Exit(handler.HandleError(err))
	}

	var output *os.File
	if outputFile != "" {
		output, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer output.Close()
	} else {
		output = os.Stdout
	}

	if err := patternReporter.Generate(result, output); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "\nDetection completed successfully.\n")
		fmt.Fprintf(os.Stderr, "Found %d patterns across %d clusters in %v.\n",
			len(result.Patterns), result.Summary.Clusters, result.Summary.ProcessingTime)
	}

	return nil
}
