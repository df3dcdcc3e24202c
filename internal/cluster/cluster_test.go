package cluster

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"golang-recurrence-finder/internal/models"
	"golang-recurrence-finder/internal/similarity"
)

func enriched(normalizedDesc string) models.EnrichedTransaction {
	tx := &models.Transaction{
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Description: normalizedDesc,
		Amount:      decimal.NewFromInt(-10),
		DebitCredit: "debit",
	}
	et := models.NewEnrichedTransaction(tx)
	return et.WithNormalizedDescription(normalizedDesc)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"zero threshold", &Config{SimilarityThreshold: 0}, true},
		{"threshold above one", &Config{SimilarityThreshold: 1.5}, true},
		{"bad ensemble weights", &Config{
			SimilarityThreshold: 0.8,
			Ensemble:            &similarity.EnsembleConfig{LevenshteinWeight: 0.9, NgramLength: 3},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClusterer_GroupsNearDuplicates(t *testing.T) {
	clusterer, err := NewClusterer(nil)
	if err != nil {
		t.Fatalf("NewClusterer failed: %v", err)
	}

	batch := []models.EnrichedTransaction{
		enriched("NETFLIX COM"),
		enriched("VERIZON WIRELESS"),
		enriched("NETFLIX COM"),
		enriched("UBER EATS SAN FRANCISCO CA"),
		enriched("VERIZON WIRELESS"),
		enriched("UBER EATS SAN FRANSISCO CA"), // one-letter typo, still above threshold
	}

	clusters := clusterer.Cluster(batch)
	if len(clusters) != 3 {
		t.Fatalf("Expected 3 clusters, got %d: %+v", len(clusters), clusters)
	}

	if clusters[0].CanonicalDescription != "NETFLIX COM" {
		t.Errorf("Expected first cluster seeded by NETFLIX COM, got %q", clusters[0].CanonicalDescription)
	}
	for i, want := range []int{2, 2, 2} {
		if len(clusters[i].Transactions) != want {
			t.Errorf("Cluster %d: expected %d members, got %d", i, want, len(clusters[i].Transactions))
		}
	}
}

func TestClusterer_EachTransactionAssignedOnce(t *testing.T) {
	clusterer, err := NewClusterer(nil)
	if err != nil {
		t.Fatalf("NewClusterer failed: %v", err)
	}

	batch := []models.EnrichedTransaction{
		enriched("SPOTIFY USA"),
		enriched("SPOTIFY USA"),
		enriched("AMAZON PRIME"),
		enriched("SPOTIFY USA"),
	}

	clusters := clusterer.Cluster(batch)

	total := 0
	for _, cl := range clusters {
		total += len(cl.Transactions)
	}
	if total != len(batch) {
		t.Errorf("Expected every transaction in exactly one cluster: %d != %d", total, len(batch))
	}
}

func TestClusterer_EmptyBatch(t *testing.T) {
	clusterer, err := NewClusterer(nil)
	if err != nil {
		t.Fatalf("NewClusterer failed: %v", err)
	}

	if clusters := clusterer.Cluster(nil); len(clusters) != 0 {
		t.Errorf("Expected no clusters for empty batch, got %d", len(clusters))
	}
}
