package cmd

import (
	"fmt"
	"os"
	"strings"

	"golang-recurrence-finder/pkg/errors"
	"golang-recurrence-finder/pkg/logger"

	"github.com/spf13/viper"
)

// CLIErrorHandler provides user-friendly error handling for CLI operations
type CLIErrorHandler struct {
	logger  logger.Logger
	verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler() *CLIErrorHandler {
	return &CLIErrorHandler{
		logger:  logger.GetGlobalLogger().WithComponent("cli"),
		verbose: viper.GetBool("verbose"),
	}
}

// HandleError handles errors and returns the process exit code
func (h *CLIErrorHandler) HandleError(err error) int {
	if err == nil {
		return 0
	}

	h.logger.WithError(err).Error("Command failed")

	if finderErr, ok := errors.AsFinderError(err); ok {
		return h.handleFinderError(finderErr)
	}

	return h.handleGenericError(err)
}

// handleFinderError handles FinderError with detailed context
func (h *CLIErrorHandler) handleFinderError(err *errors.FinderError) int {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Message)

	if len(err.Context) > 0 {
		fmt.Fprintf(os.Stderr, "\nContext:\n")
		for key, value := range err.Context {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", key, value)
		}
	}

	if err.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "\nSuggestion: %s\n", err.Suggestion)
	}

	fmt.Fprintf(os.Stderr, "\n%s\n", h.getCategoryHelp(err.Category))

	if h.verbose && err.Cause != nil {
		fmt.Fprintf(os.Stderr, "\nUnderlying error: %v\n", err.Cause)
	}

	return err.GetExitCode()
}

// handleGenericError handles non-FinderError types
func (h *CLIErrorHandler) handleGenericError(err error) int {
	if h.isFileNotFoundError(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found\n")
		fmt.Fprintf(os.Stderr, "Suggestion: Check if the file path is correct and the file exists\n")
		return 2
	}

	if h.isPermissionError(err) {
		fmt.Fprintf(os.Stderr, "Error: Permission denied\n")
		fmt.Fprintf(os.Stderr, "Suggestion: Check file permissions and ensure you have read access\n")
		return 2
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	if !h.verbose {
		fmt.Fprintf(os.Stderr, "\nFor more details, run with the --verbose flag\n")
	}

	return 1
}

// getCategoryHelp returns category-specific help text
func (h *CLIErrorHandler) getCategoryHelp(category errors.ErrorCategory) string {
	switch category {
	case errors.CategoryFile:
		return `File error help:
• Check if the file exists and is readable
• Verify the file path is correct (use absolute paths if needed)
• Ensure you have proper permissions to access the file`

	case errors.CategoryParse:
		return `Parse error help:
• Verify the CSV file format and column order
• Check dates use a supported format (YYYY-MM-DD, MM/DD/YYYY)
• Ensure amounts are decimal numbers without currency symbols
• Use --skip-invalid to skip unparseable rows
• Use 'recurrence detect --help' for the expected column layout`

	case errors.CategoryData:
		return `Data error help:
• Check that every transaction has a non-empty description
• Verify dates and amounts are present on every row
• Remove or correct malformed entries in the input file`

	case errors.CategoryConfiguration:
		return `Configuration error help:
• Check your command-line flags and arguments
• Ensemble weights must sum to 1.0 (--levenshtein-weight, --word-weight, --ngram-weight)
• Verify configuration file syntax if using --config
• Use 'recurrence detect --help' to see all available options`

	case errors.CategoryDetection:
		return `Detection error help:
• Check data quality in the input file
• Try adjusting --similarity-threshold or --deviation-ceiling
• Lower --match-threshold if patterns have few occurrences`

	default:
		return `For more help:
• Use 'recurrence --help' for general help
• Use 'recurrence detect --help' for command-specific help`
	}
}

// Error detection helpers

func (h *CLIErrorHandler) isFileNotFoundError(err error) bool {
	return os.IsNotExist(err) || strings.Contains(err.Error(), "no such file or directory")
}

func (h *CLIErrorHandler) isPermissionError(err error) bool {
	return os.IsPermission(err) ||
		strings.Contains(err.Error(), "permission denied") ||
		strings.Contains(err.Error(), "access denied")
}
