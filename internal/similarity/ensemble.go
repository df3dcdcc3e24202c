package similarity

import (
	"fmt"
	"math"

	"golang-recurrence-finder/pkg/errors"
)

// EnsembleConfig holds the weights and n-gram length for the ensemble
// matcher. The three weights must sum to 1.0 within 1e-10.
type EnsembleConfig struct {
	// LevenshteinWeight scales the edit-distance similarity component
	LevenshteinWeight float64 `json:"levenshtein_weight"`

	// WordWeight scales the token-set Jaccard component
	WordWeight float64 `json:"word_weight"`

	// NgramWeight scales the character n-gram Jaccard component
	NgramWeight float64 `json:"ngram_weight"`

	// NgramLength is the character n-gram size
	NgramLength int `json:"ngram_length"`
}

// DefaultEnsembleConfig returns the default ensemble configuration
func DefaultEnsembleConfig() *EnsembleConfig {
	return &EnsembleConfig{
		LevenshteinWeight: 0.4,
		WordWeight:        0.4,
		NgramWeight:       0.2,
		NgramLength:       3,
	}
}

// Validate checks weight normalization and n-gram length
func (c *EnsembleConfig) Validate() error {
	sum := c.LevenshteinWeight + c.WordWeight + c.NgramWeight
	if math.Abs(sum-1.0) > 1e-10 {
		return fmt.Errorf("weights must sum to 1.0: %g + %g + %g = %g",
			c.LevenshteinWeight, c.WordWeight, c.NgramWeight, sum)
	}
	if c.LevenshteinWeight < 0 || c.WordWeight < 0 || c.NgramWeight < 0 {
		return fmt.Errorf("weights must be non-negative: %g/%g/%g",
			c.LevenshteinWeight, c.WordWeight, c.NgramWeight)
	}
	if c.NgramLength < 1 {
		return fmt.Errorf("ngram length must be at least 1: %d", c.NgramLength)
	}
	return nil
}

// EnsembleMatcher combines edit-distance, token, and n-gram similarity into
// a single weighted score in [0,1]. Inputs are expected to be normalized
// descriptions; the matcher does no normalization of its own.
type EnsembleMatcher struct {
	config *EnsembleConfig
	calc   *Calculator
}

// NewEnsembleMatcher creates an EnsembleMatcher, failing fast on invalid
// weights
func NewEnsembleMatcher(config *EnsembleConfig) (*EnsembleMatcher, error) {
	if config == nil {
		config = DefaultEnsembleConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidWeights, "ensemble_weights", config, err)
	}

	return &EnsembleMatcher{
		config: config,
		calc:   NewCalculator(),
	}, nil
}

// Similarity returns the weighted ensemble score for two descriptions.
// Symmetric: Similarity(a, b) == Similarity(b, a).
func (m *EnsembleMatcher) Similarity(left, right string) float64 {
	levenScore := m.levenshteinSimilarity(left, right)
	wordScore := m.calc.TokenJaccard(left, right)
	ngramScore := m.calc.NgramJaccard(left, right, m.config.NgramLength)

	return m.config.LevenshteinWeight*levenScore +
		m.config.WordWeight*wordScore +
		m.config.NgramWeight*ngramScore
}

// levenshteinSimilarity maps edit distance into [0,1]; two empty strings
// are identical.
func (m *EnsembleMatcher) levenshteinSimilarity(left, right string) float64 {
	maxLength := len([]rune(left))
	if r := len([]rune(right)); r > maxLength {
		maxLength = r
	}
	if maxLength == 0 {
		return 1
	}

	distance := m.calc.DamerauLevenshteinDistance(left, right, maxLength)
	return 1 - float64(distance)/float64(maxLength)
}
