package similarity

import (
	"math"
	"testing"

	"golang-recurrence-finder/pkg/errors"
)

func TestEnsembleConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *EnsembleConfig
		wantErr bool
	}{
		{"defaults", DefaultEnsembleConfig(), false},
		{"alternate valid weights", &EnsembleConfig{0.5, 0.3, 0.2, 3}, false},
		{"weights sum below one", &EnsembleConfig{0.4, 0.4, 0.1, 3}, true},
		{"weights sum above one", &EnsembleConfig{0.5, 0.4, 0.2, 3}, true},
		{"negative weight", &EnsembleConfig{1.2, 0.4, -0.6, 3}, true},
		{"zero ngram length", &EnsembleConfig{0.4, 0.4, 0.2, 0}, true},
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

func TestNewEnsembleMatcher_InvalidWeights(t *testing.T) {
	_, err := NewEnsembleMatcher(&EnsembleConfig{0.4, 0.4, 0.1, 3})
	if err == nil {
		t.Fatal("Expected configuration error for weights summing to 0.9")
	}

	fe, ok := errors.AsFinderError(err)
	if !ok || fe.Code != errors.CodeInvalidWeights {
		t.Errorf("Expected CodeInvalidWeights, got %v", err)
	}
}

func TestEnsembleMatcher_Similarity(t *testing.T) {
	matcher, err := NewEnsembleMatcher(nil)
	if err != nil {
		t.Fatalf("NewEnsembleMatcher failed: %v", err)
	}

	t.Run("identity", func(t *testing.T) {
		for _, s := range []string{"NETFLIX COM", "SQ COFFEE SHOP", "UBER"} {
			if got := matcher.Similarity(s, s); math.Abs(got-1.0) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
			}
		}
	})

	t.Run("symmetry", func(t *testing.T) {
		pairs := [][2]string{
			{"NETFLIX COM", "NETFLIX"},
			{"UBER EATS", "UBER TRIP"},
			{"SPOTIFY", "AMAZON PRIME"},
		}
		for _, p := range pairs {
			ab := matcher.Similarity(p[0], p[1])
			ba := matcher.Similarity(p[1], p[0])
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
			}
		}
	})

	t.Run("bounded", func(t *testing.T) {
		pairs := [][2]string{
			{"NETFLIX COM", "NETFLIX"},
			{"SPOTIFY", "AMAZON PRIME"},
			{"", "NETFLIX"},
			{"", ""},
		}
		for _, p := range pairs {
			got := matcher.Similarity(p[0], p[1])
			if got < 0 || got > 1 {
				t.Errorf("Similarity(%q, %q) = %v, outside [0,1]", p[0], p[1], got)
			}
		}
	})

	t.Run("empty against nonempty scores zero", func(t *testing.T) {
		if got := matcher.Similarity("", "NETFLIX"); got != 0 {
			t.Errorf("Similarity(\"\", %q) = %v, want 0", "NETFLIX", got)
		}
	})

	t.Run("near duplicates score high", func(t *testing.T) {
		if got := matcher.Similarity("NETFLIX COM", "NETFLIX"); got <= 0.5 {
			t.Errorf("Expected near-duplicate score above 0.5, got %v", got)
		}
		if got := matcher.Similarity("NETFLIX COM", "VERIZON WIRELESS"); got >= 0.5 {
			t.Errorf("Expected unrelated score below 0.5, got %v", got)
		}
	})
}
