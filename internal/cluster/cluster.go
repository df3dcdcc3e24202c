package cluster

import (
	"fmt"

	"golang-recurrence-finder/internal/models"
	"golang-recurrence-finder/internal/similarity"
	"golang-recurrence-finder/pkg/errors"
	"golang-recurrence-finder/pkg/logger"
)

// Config controls clustering
type Config struct {
	// SimilarityThreshold is the minimum ensemble score for a transaction to
	// join a cluster
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// Ensemble configures the similarity matcher
	Ensemble *similarity.EnsembleConfig `json:"ensemble"`
}

// DefaultConfig returns the default clustering configuration
func DefaultConfig() *Config {
	return &Config{
		SimilarityThreshold: 0.8,
		Ensemble:            similarity.DefaultEnsembleConfig(),
	}
}

// Validate checks the clustering configuration
func (c *Config) Validate() error {
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be in (0,1]: %g", c.SimilarityThreshold)
	}
	if c.Ensemble != nil {
		if err := c.Ensemble.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Cluster is one equivalence class of transactions whose normalized
// descriptions scored at or above the threshold against the seed.
type Cluster struct {
	// CanonicalDescription is the normalized description of the seed
	// transaction
	CanonicalDescription string

	// Transactions holds the members in original batch order; the seed is
	// always first
	Transactions []models.EnrichedTransaction
}

// Clusterer groups a batch of enriched transactions by description
// similarity. Single-pass greedy: transactions are taken in input order, each
// unassigned one seeds a new cluster and absorbs every later unassigned
// transaction scoring at or above the threshold against the seed. Later
// members are compared only to the seed, never to each other, so the
// partition depends on input order.
type Clusterer struct {
	config  *Config
	matcher *similarity.EnsembleMatcher
	logger  logger.Logger
}

// NewClusterer creates a Clusterer with the given configuration
func NewClusterer(config *Config) (*Clusterer, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "cluster_config", config, err)
	}

	matcher, err := similarity.NewEnsembleMatcher(config.Ensemble)
	if err != nil {
		return nil, err
	}

	return &Clusterer{
		config:  config,
		matcher: matcher,
		logger:  logger.GetGlobalLogger().WithComponent("clusterer"),
	}, nil
}

// Cluster partitions the batch into equivalence classes. The input is never
// mutated; assignment is tracked in a mask over the immutable batch.
func (c *Clusterer) Cluster(batch []models.EnrichedTransaction) []Cluster {
	assigned := make([]bool, len(batch))
	var clusters []Cluster

	for i := range batch {
		if assigned[i] {
			continue
		}
		assigned[i] = true

		seed := batch[i].NormalizedDescription
		current := Cluster{
			CanonicalDescription: seed,
			Transactions:         []models.EnrichedTransaction{batch[i]},
		}

		for j := i + 1; j < len(batch); j++ {
			if assigned[j] {
				continue
			}
			if c.matcher.Similarity(seed, batch[j].NormalizedDescription) >= c.config.SimilarityThreshold {
				assigned[j] = true
				current.Transactions = append(current.Transactions, batch[j])
			}
		}

		clusters = append(clusters, current)
	}

	c.logger.WithFields(logger.Fields{
		"transactions": len(batch),
		"clusters":     len(clusters),
	}).Debug("Clustering complete")

	return clusters
}
