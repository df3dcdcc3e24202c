package detector

import (
	"fmt"
	"time"

	"golang-recurrence-finder/internal/cluster"
	"golang-recurrence-finder/internal/enrich"
	"golang-recurrence-finder/internal/models"
	"golang-recurrence-finder/internal/recurrence"
	"golang-recurrence-finder/pkg/errors"
	"golang-recurrence-finder/pkg/logger"
)

// Config aggregates the configuration of every pipeline stage plus the
// output filters applied to detected patterns.
type Config struct {
	Enrich     *enrich.Config     `json:"enrich"`
	Cluster    *cluster.Config    `json:"cluster"`
	Recurrence *recurrence.Config `json:"recurrence"`

	// MinIntervalConsistency drops patterns scoring below it; 0 disables
	MinIntervalConsistency float64 `json:"min_interval_consistency"`

	// MinAmountConsistency drops patterns scoring below it; 0 disables
	MinAmountConsistency float64 `json:"min_amount_consistency"`
}

// DefaultConfig returns the default pipeline configuration
func DefaultConfig() *Config {
	return &Config{
		Enrich:     enrich.DefaultConfig(),
		Cluster:    cluster.DefaultConfig(),
		Recurrence: recurrence.DefaultConfig(),
	}
}

// Validate checks every stage configuration and the output filters
func (c *Config) Validate() error {
	if c.Enrich != nil {
		if err := c.Enrich.Validate(); err != nil {
			return err
		}
	}
	if c.Cluster != nil {
		if err := c.Cluster.Validate(); err != nil {
			return err
		}
	}
	if c.Recurrence != nil {
		if err := c.Recurrence.Validate(); err != nil {
			return err
		}
	}
	if c.MinIntervalConsistency < 0 || c.MinIntervalConsistency > 1 {
		return fmt.Errorf("min interval consistency must be in [0,1]: %g", c.MinIntervalConsistency)
	}
	if c.MinAmountConsistency < 0 || c.MinAmountConsistency > 1 {
		return fmt.Errorf("min amount consistency must be in [0,1]: %g", c.MinAmountConsistency)
	}
	return nil
}

// Result carries the detected patterns and run statistics
type Result struct {
	// Patterns is sorted descending by combined consistency score
	Patterns []*models.RecurringPattern `json:"patterns"`

	// Summary describes the run
	Summary Summary `json:"summary"`
}

// Summary holds counts and timing for one detection run
type Summary struct {
	TotalTransactions int           `json:"total_transactions"`
	Clusters          int           `json:"clusters"`
	PatternsDetected  int           `json:"patterns_detected"`
	PatternsFiltered  int           `json:"patterns_filtered"`
	ProcessingTime    time.Duration `json:"processing_time"`
}

// Detector wires the pipeline: per-transaction enrichment, similarity
// clustering across the batch, recurrence detection per cluster.
type Detector struct {
	config     *Config
	enricher   *enrich.Enricher
	clusterer  *cluster.Clusterer
	calculator *recurrence.Calculator
	logger     logger.Logger
}

// NewDetector creates a Detector, constructing every stage eagerly so that
// configuration errors surface before any processing
func NewDetector(config *Config) (*Detector, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "detector_config", config, err)
	}

	enricher, err := enrich.NewEnricher(config.Enrich)
	if err != nil {
		return nil, err
	}

	clusterer, err := cluster.NewClusterer(config.Cluster)
	if err != nil {
		return nil, err
	}

	calculator, err := recurrence.NewCalculator(config.Recurrence)
	if err != nil {
		return nil, err
	}

	return &Detector{
		config:     config,
		enricher:   enricher,
		clusterer:  clusterer,
		calculator: calculator,
		logger:     logger.GetGlobalLogger().WithComponent("detector"),
	}, nil
}

// Detect runs the full pipeline over a materialized transaction batch and
// returns the recurring patterns sorted by combined consistency score.
func (d *Detector) Detect(transactions []*models.Transaction) (*Result, error) {
	start := time.Now()

	d.logger.WithField("transactions", len(transactions)).Info("Starting recurrence detection")

	enriched, err := d.enricher.EnrichAll(transactions)
	if err != nil {
		return nil, errors.WrapIfNeeded(err, errors.CategoryDetection, errors.CodeProcessingError, "enrichment failed")
	}

	clusters := d.clusterer.Cluster(enriched)

	var patterns []*models.RecurringPattern
	for _, cl := range clusters {
		members := make([]*models.Transaction, len(cl.Transactions))
		for i, et := range cl.Transactions {
			members[i] = et.Transaction
		}
		patterns = append(patterns, d.calculator.AnalyzeCluster(cl.CanonicalDescription, members)...)
	}

	detected := len(patterns)
	patterns = d.filterPatterns(patterns)
	recurrence.SortPatterns(patterns)

	result := &Result{
		Patterns: patterns,
		Summary: Summary{
			TotalTransactions: len(transactions),
			Clusters:          len(clusters),
			PatternsDetected:  detected,
			PatternsFiltered:  detected - len(patterns),
			ProcessingTime:    time.Since(start),
		},
	}

	d.logger.WithFields(logger.Fields{
		"clusters":        result.Summary.Clusters,
		"patterns":        len(result.Patterns),
		"filtered":        result.Summary.PatternsFiltered,
		"processing_time": result.Summary.ProcessingTime,
	}).Info("Recurrence detection complete")

	return result, nil
}

// filterPatterns applies the minimum-consistency output filters
func (d *Detector) filterPatterns(patterns []*models.RecurringPattern) []*models.RecurringPattern {
	if d.config.MinIntervalConsistency == 0 && d.config.MinAmountConsistency == 0 {
		return patterns
	}

	kept := patterns[:0]
	for _, p := range patterns {
		if p.IntervalConsistency < d.config.MinIntervalConsistency {
			continue
		}
		if p.AmountConsistency < d.config.MinAmountConsistency {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
