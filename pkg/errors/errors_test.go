package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CategoryConfiguration, CodeInvalidConfig, "bad setting")

	if err.Category != CategoryConfiguration {
		t.Errorf("Expected category %s, got %s", CategoryConfiguration, err.Category)
	}
	if err.Code != CodeInvalidConfig {
		t.Errorf("Expected code %s, got %s", CodeInvalidConfig, err.Code)
	}
	if err.Error() != "bad setting" {
		t.Errorf("Expected message 'bad setting', got '%s'", err.Error())
	}
}

func TestFinderError_WithSuggestion(t *testing.T) {
	err := New(CategoryData, CodeEmptyDescription, "description missing").
		WithSuggestion("Provide a non-empty description")

	if !strings.Contains(err.Error(), "suggestion:") {
		t.Errorf("Expected suggestion in error string, got '%s'", err.Error())
	}
}

func TestFinderError_WithContext(t *testing.T) {
	err := New(CategoryParse, CodeInvalidData, "bad row").
		WithContext("line", 42).
		WithContext("field", "amount")

	if err.Context["line"] != 42 {
		t.Errorf("Expected line context 42, got %v", err.Context["line"])
	}
	if err.Context["field"] != "amount" {
		t.Errorf("Expected field context 'amount', got %v", err.Context["field"])
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(cause, CategoryInternal, CodeUnexpectedError, "wrapped")

	if err.Unwrap() != cause {
		t.Error("Expected Unwrap to return the original cause")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		expected int
	}{
		{CategoryFile, 2},
		{CategoryParse, 3},
		{CategoryData, 3},
		{CategoryConfiguration, 4},
		{CategoryDetection, 5},
		{CategoryInternal, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			err := New(tt.category, CodeUnexpectedError, "test")
			if code := err.GetExitCode(); code != tt.expected {
				t.Errorf("Expected exit code %d for %s, got %d", tt.expected, tt.category, code)
			}
		})
	}
}

func TestConfigurationError_WeightsSuggestion(t *testing.T) {
	err := ConfigurationError(CodeInvalidWeights, "ensemble_weights", 0.9, nil)

	if err.Suggestion == "" {
		t.Error("Expected weights error to carry a suggestion")
	}
	if err.Context["setting"] != "ensemble_weights" {
		t.Errorf("Expected setting context, got %v", err.Context["setting"])
	}
}

func TestAsFinderError(t *testing.T) {
	inner := DataError(CodeInvalidAmount, "amount", "abc", nil)
	wrapped := fmt.Errorf("outer: %w", inner)

	found, ok := AsFinderError(wrapped)
	if !ok {
		t.Fatal("Expected to find FinderError in chain")
	}
	if found.Code != CodeInvalidAmount {
		t.Errorf("Expected code %s, got %s", CodeInvalidAmount, found.Code)
	}

	if _, ok := AsFinderError(fmt.Errorf("plain")); ok {
		t.Error("Expected plain error to not be a FinderError")
	}
}

func TestWrapIfNeeded(t *testing.T) {
	original := ConfigurationError(CodeInvalidConfig, "threshold", -1, nil)

	rewrapped := WrapIfNeeded(original, CategoryInternal, CodeUnexpectedError, "should not replace")
	if rewrapped.Code != CodeInvalidConfig {
		t.Errorf("Expected existing FinderError to be preserved, got code %s", rewrapped.Code)
	}

	fresh := WrapIfNeeded(fmt.Errorf("plain"), CategoryInternal, CodeUnexpectedError, "wrapped plain")
	if fresh.Category != CategoryInternal {
		t.Errorf("Expected plain error to be wrapped as internal, got %s", fresh.Category)
	}
}
