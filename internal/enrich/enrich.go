package enrich

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"golang-recurrence-finder/internal/models"
	"golang-recurrence-finder/pkg/errors"
	"golang-recurrence-finder/pkg/logger"
)

// Config controls the enrichment phase
type Config struct {
	// Normalizer holds the text normalization policy
	Normalizer *NormalizerConfig `json:"normalizer"`

	// Workers is the number of concurrent enrichment workers; each worker
	// gets its own normalizer cache. 1 disables parallelism.
	Workers int `json:"workers"`
}

// DefaultConfig returns the default enrichment configuration
func DefaultConfig() *Config {
	return &Config{
		Normalizer: DefaultNormalizerConfig(),
		Workers:    runtime.NumCPU(),
	}
}

// Validate checks the enrichment configuration
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1: %d", c.Workers)
	}
	return nil
}

// Enricher applies the per-transaction enrichment stages. Providers and
// locations are identified on a case-folded copy of the raw description
// first, because processor markers ("SQ *") and trailing city/state suffixes
// live in text that normalization destroys; normalization and noise
// attenuation then produce the canonical description used for clustering.
type Enricher struct {
	config     *Config
	providers  *PaymentProviderFinder
	locations  *LocationFinder
	attenuator *NoiseAttenuator
	logger     logger.Logger
}

// NewEnricher creates an Enricher with the given configuration
func NewEnricher(config *Config) (*Enricher, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "enrich_config", config, err)
	}

	return &Enricher{
		config:     config,
		providers:  NewPaymentProviderFinder(),
		locations:  NewLocationFinder(),
		attenuator: NewNoiseAttenuator(),
		logger:     logger.GetGlobalLogger().WithComponent("enricher"),
	}, nil
}

// EnrichAll enriches the whole batch, preserving input order. With more than
// one worker the batch is processed concurrently; each worker owns a private
// normalizer cache, so no cache lock is contended across workers.
func (e *Enricher) EnrichAll(transactions []*models.Transaction) ([]models.EnrichedTransaction, error) {
	e.logger.WithFields(logger.Fields{
		"transactions": len(transactions),
		"workers":      e.config.Workers,
	}).Info("Starting enrichment")

	results := make([]models.EnrichedTransaction, len(transactions))

	workers := e.config.Workers
	if workers > len(transactions) {
		workers = len(transactions)
	}
	if workers <= 1 {
		normalizer := NewTextNormalizer(e.config.Normalizer, NewNormalizerCache())
		for i, tx := range transactions {
			enriched, err := e.enrichOne(normalizer, tx)
			if err != nil {
				return nil, err
			}
			results[i] = enriched
		}
		return results, nil
	}

	indexes := make(chan int)
	errOnce := sync.Once{}
	var firstErr error
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			normalizer := NewTextNormalizer(e.config.Normalizer, NewNormalizerCache())
			for i := range indexes {
				enriched, err := e.enrichOne(normalizer, transactions[i])
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				results[i] = enriched
			}
		}()
	}

	for i := range transactions {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return results, nil
}

// enrichOne runs the stages for a single transaction
func (e *Enricher) enrichOne(normalizer *TextNormalizer, tx *models.Transaction) (models.EnrichedTransaction, error) {
	if tx == nil {
		return models.EnrichedTransaction{}, errors.DataError(errors.CodeInvalidData, "transaction", nil,
			fmt.Errorf("transaction cannot be nil"))
	}
	if strings.TrimSpace(tx.Description) == "" {
		return models.EnrichedTransaction{}, errors.DataError(errors.CodeEmptyDescription, "description", tx.Description,
			fmt.Errorf("description cannot be empty"))
	}

	et := models.NewEnrichedTransaction(tx)

	// Marker and gazetteer tables are uppercase; fold case before the lookups
	et = et.WithNormalizedDescription(strings.ToUpper(tx.Description))

	providers, cleaned := e.providers.Identify(et.NormalizedDescription)
	if len(providers) > 0 {
		et = et.WithProviders(providers, cleaned)
	}

	city, state, trimmed := e.locations.Extract(et.NormalizedDescription)
	if state != "" {
		et = et.WithLocation(city, state, trimmed)
	}

	normalized := normalizer.Normalize(et.NormalizedDescription)
	attenuated := e.attenuator.Attenuate(normalized)
	et = et.WithNormalizedDescription(attenuated)

	return et, nil
}
